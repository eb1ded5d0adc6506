package application

import (
	"context"
	"errors"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

const maxWorks = 20

type ArtisanProfileInput struct {
	Story     string
	Expertise string
	Location  string
	ImageURL  string
	Works     []string
}

type ApplicantProfileInput struct {
	Background   string
	Interests    string
	PortfolioURL string
}

// ArtisanPage is the public view of an artisan.
type ArtisanPage struct {
	User     domain.PublicUser     `json:"user"`
	Profile  domain.ArtisanProfile `json:"profile"`
	Programs []domain.Program      `json:"programs"`
}

type ProfileService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	programs ports.ProgramRepository
	apps     ports.ApplicationRepository
	logger   ports.Logger
}

func NewProfileService(users ports.UserRepository, profiles ports.ProfileRepository, programs ports.ProgramRepository, apps ports.ApplicationRepository, logger ports.Logger) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, programs: programs, apps: apps, logger: logger}
}

func (s *ProfileService) UpsertArtisan(ctx context.Context, actor Actor, in ArtisanProfileInput) (domain.ArtisanProfile, error) {
	if err := requireRole(actor, domain.RoleArtisan); err != nil {
		return domain.ArtisanProfile{}, err
	}
	if len(in.Works) > maxWorks || !lengthBetween(in.Story, 0, 10000) ||
		!lengthBetween(in.Expertise, 0, 500) || !lengthBetween(in.Location, 0, 200) {
		return domain.ArtisanProfile{}, domain.ErrInvalidInput
	}
	profile := domain.ArtisanProfile{
		UserID:    actor.UserID,
		Story:     in.Story,
		Expertise: in.Expertise,
		Location:  in.Location,
		ImageURL:  in.ImageURL,
		Works:     in.Works,
		UpdatedAt: now(),
	}
	if profile.Works == nil {
		profile.Works = []string{}
	}
	if err := s.profiles.PutArtisanProfile(ctx, profile); err != nil {
		return domain.ArtisanProfile{}, err
	}
	return profile, nil
}

func (s *ProfileService) GetArtisan(ctx context.Context, userID string) (ArtisanPage, error) {
	if userID == "" {
		return ArtisanPage{}, domain.ErrInvalidInput
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ArtisanPage{}, err
	}
	if user.Role != domain.RoleArtisan {
		return ArtisanPage{}, domain.ErrNotFound
	}
	profile, err := s.profiles.GetArtisanProfile(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return ArtisanPage{}, err
	}
	profile.UserID = userID
	programs, err := s.programs.ListByArtisan(ctx, userID)
	if err != nil {
		return ArtisanPage{}, err
	}
	open := make([]domain.Program, 0, len(programs))
	for _, p := range programs {
		if p.IsOpen {
			open = append(open, p)
		}
	}
	return ArtisanPage{User: user.Public(), Profile: profile, Programs: open}, nil
}

func (s *ProfileService) UpsertApplicant(ctx context.Context, actor Actor, in ApplicantProfileInput) (domain.ApplicantProfile, error) {
	if err := requireRole(actor, domain.RoleApplicant); err != nil {
		return domain.ApplicantProfile{}, err
	}
	if !lengthBetween(in.Background, 0, 5000) || !lengthBetween(in.Interests, 0, 2000) {
		return domain.ApplicantProfile{}, domain.ErrInvalidInput
	}
	profile := domain.ApplicantProfile{
		UserID:       actor.UserID,
		Background:   in.Background,
		Interests:    in.Interests,
		PortfolioURL: in.PortfolioURL,
		UpdatedAt:    now(),
	}
	if err := s.profiles.PutApplicantProfile(ctx, profile); err != nil {
		return domain.ApplicantProfile{}, err
	}
	s.logger.Info(ctx, "applicant profile saved", "user_id", actor.UserID)
	return profile, nil
}

// GetApplicant exposes an applicant profile to its owner and to artisans
// reviewing one of the applicant's applications.
func (s *ProfileService) GetApplicant(ctx context.Context, actor Actor, userID string) (domain.ApplicantProfile, error) {
	if actor.UserID == "" {
		return domain.ApplicantProfile{}, domain.ErrUnauthenticated
	}
	if userID == "" {
		return domain.ApplicantProfile{}, domain.ErrInvalidInput
	}
	if actor.UserID != userID {
		allowed, err := s.reviews(ctx, actor, userID)
		if err != nil {
			return domain.ApplicantProfile{}, err
		}
		if !allowed {
			return domain.ApplicantProfile{}, domain.ErrPermissionDeny
		}
	}
	return s.profiles.GetApplicantProfile(ctx, userID)
}

func (s *ProfileService) reviews(ctx context.Context, actor Actor, applicantID string) (bool, error) {
	if actor.Role != domain.RoleArtisan {
		return false, nil
	}
	apps, err := s.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return false, err
	}
	for _, app := range apps {
		program, err := s.programs.GetByID(ctx, app.ProgramID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return false, err
		}
		if program.ArtisanID == actor.UserID {
			return true, nil
		}
	}
	return false, nil
}
