package application

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

var DefaultCategories = []string{"Batik", "Keramik", "Tenun", "Ukir Kayu", "Anyaman", "Wayang", "Perak", "Gamelan"}

type CategoryService struct {
	repo   ports.CategoryRepository
	logger ports.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger ports.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, name string) (domain.HeritageCategory, error) {
	name = strings.TrimSpace(name)
	if !lengthBetween(name, 2, 60) {
		return domain.HeritageCategory{}, domain.ErrInvalidInput
	}
	category := domain.HeritageCategory{ID: uuid.NewString(), Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return domain.HeritageCategory{}, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.HeritageCategory, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

// Seed creates the named categories, skipping those that already exist.
func (s *CategoryService) Seed(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, name := range names {
		if _, err := s.Create(ctx, name); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return created, err
		}
		created++
	}
	if created > 0 {
		s.logger.Info(ctx, "heritage categories seeded", "created", created)
	}
	return created, nil
}
