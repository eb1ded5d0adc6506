package ports

import (
	"context"
	"time"

	"warisin/internal/domain"
)

type UserRepository interface {
	// Create stores the user together with its authId mapping; ErrConflict if the authId is taken.
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, userID string) (domain.User, error)
	GetByAuthID(ctx context.Context, authID string) (domain.User, error)
}

type ProfileRepository interface {
	PutArtisanProfile(ctx context.Context, profile domain.ArtisanProfile) error
	GetArtisanProfile(ctx context.Context, userID string) (domain.ArtisanProfile, error)
	PutApplicantProfile(ctx context.Context, profile domain.ApplicantProfile) error
	GetApplicantProfile(ctx context.Context, userID string) (domain.ApplicantProfile, error)
}

type CategoryRepository interface {
	// Create fails with ErrConflict when a category with the same name exists.
	Create(ctx context.Context, category domain.HeritageCategory) error
	GetByID(ctx context.Context, categoryID string) (domain.HeritageCategory, error)
	List(ctx context.Context) ([]domain.HeritageCategory, error)
}

type ProgramRepository interface {
	Create(ctx context.Context, program domain.Program) error
	// Update overwrites the program only if its stored UpdatedAt still equals
	// prevUpdatedAt; ErrConflict otherwise.
	Update(ctx context.Context, program domain.Program, prevUpdatedAt time.Time) error
	GetByID(ctx context.Context, programID string) (domain.Program, error)
	// List returns every program, newest first.
	List(ctx context.Context) ([]domain.Program, error)
	ListByArtisan(ctx context.Context, artisanID string) ([]domain.Program, error)
}

type ApplicationRepository interface {
	// Create inserts the application atomically with its (program, applicant)
	// guard, failing with ErrDuplicateApplication, ErrNotAcceptingApplications
	// or ErrNotFound.
	Create(ctx context.Context, app domain.Application) error
	GetByID(ctx context.Context, appID string) (domain.Application, error)
	FindByProgramAndApplicant(ctx context.Context, programID, applicantID string) (domain.Application, error)
	ListByProgram(ctx context.Context, programID string) ([]domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error)
	// UpdateStatus writes app.Status only if the stored status still equals from; ErrConflict otherwise.
	UpdateStatus(ctx context.Context, app domain.Application, from domain.ApplicationStatus) error
}
