package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

const maxMediaURLs = 20

type ProgramInput struct {
	Title       string
	Description string
	Duration    string
	Location    string
	Criteria    string
	CategoryID  string
	StartDate   *time.Time
	EndDate     *time.Time
	IsOpen      *bool
	MediaURLs   []string
}

type ProgramFilter struct {
	Query      string
	CategoryID string
}

type ProgramService struct {
	programs   ports.ProgramRepository
	categories ports.CategoryRepository
	logger     ports.Logger
}

func NewProgramService(programs ports.ProgramRepository, categories ports.CategoryRepository, logger ports.Logger) *ProgramService {
	return &ProgramService{programs: programs, categories: categories, logger: logger}
}

func (s *ProgramService) validate(ctx context.Context, in ProgramInput) error {
	if !lengthBetween(in.Title, 1, 200) || !lengthBetween(in.Description, 1, 10000) {
		return domain.ErrInvalidInput
	}
	if in.CategoryID == "" || len(in.MediaURLs) > maxMediaURLs {
		return domain.ErrInvalidInput
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return domain.ErrInvalidInput
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (s *ProgramService) Create(ctx context.Context, actor Actor, in ProgramInput) (domain.Program, error) {
	if err := requireRole(actor, domain.RoleArtisan); err != nil {
		return domain.Program{}, err
	}
	if err := s.validate(ctx, in); err != nil {
		return domain.Program{}, err
	}
	ts := now()
	program := domain.Program{
		ID:        uuid.NewString(),
		ArtisanID: actor.UserID,
		IsOpen:    true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	applyProgramInput(&program, in)
	if err := s.programs.Create(ctx, program); err != nil {
		return domain.Program{}, err
	}
	s.logger.Info(ctx, "program created", "program_id", program.ID, "artisan_id", actor.UserID)
	return program, nil
}

func applyProgramInput(p *domain.Program, in ProgramInput) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.Duration = in.Duration
	p.Location = in.Location
	p.Criteria = in.Criteria
	p.CategoryID = in.CategoryID
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.MediaURLs = in.MediaURLs
	if in.IsOpen != nil {
		p.IsOpen = *in.IsOpen
	}
}

// owned loads a program and checks that actor is the artisan who published it.
func (s *ProgramService) owned(ctx context.Context, actor Actor, programID string) (domain.Program, error) {
	if err := requireRole(actor, domain.RoleArtisan); err != nil {
		return domain.Program{}, err
	}
	if programID == "" {
		return domain.Program{}, domain.ErrInvalidInput
	}
	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return domain.Program{}, err
	}
	if program.ArtisanID != actor.UserID {
		return domain.Program{}, domain.ErrPermissionDeny
	}
	return program, nil
}

func (s *ProgramService) Update(ctx context.Context, actor Actor, programID string, in ProgramInput) (domain.Program, error) {
	program, err := s.owned(ctx, actor, programID)
	if err != nil {
		return domain.Program{}, err
	}
	if err := s.validate(ctx, in); err != nil {
		return domain.Program{}, err
	}
	prev := program.UpdatedAt
	applyProgramInput(&program, in)
	program.UpdatedAt = now()
	if err := s.programs.Update(ctx, program, prev); err != nil {
		return domain.Program{}, err
	}
	return program, nil
}

func (s *ProgramService) SetOpen(ctx context.Context, actor Actor, programID string, open bool) (domain.Program, error) {
	program, err := s.owned(ctx, actor, programID)
	if err != nil {
		return domain.Program{}, err
	}
	if program.IsOpen == open {
		return program, nil
	}
	prev := program.UpdatedAt
	program.IsOpen = open
	program.UpdatedAt = now()
	if err := s.programs.Update(ctx, program, prev); err != nil {
		return domain.Program{}, err
	}
	s.logger.Info(ctx, "program availability changed", "program_id", program.ID, "is_open", open)
	return program, nil
}

func (s *ProgramService) Get(ctx context.Context, programID string) (domain.Program, error) {
	if programID == "" {
		return domain.Program{}, domain.ErrInvalidInput
	}
	return s.programs.GetByID(ctx, programID)
}

// ListOpen returns the programs still accepting applications, newest first.
func (s *ProgramService) ListOpen(ctx context.Context, filter ProgramFilter) ([]domain.Program, error) {
	all, err := s.programs.List(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]domain.Program, 0, len(all))
	for _, p := range all {
		if !p.IsOpen {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) && !strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *ProgramService) ListByArtisan(ctx context.Context, artisanID string) ([]domain.Program, error) {
	if artisanID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.programs.ListByArtisan(ctx, artisanID)
}
