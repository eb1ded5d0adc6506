package http

import (
	"context"
	"io"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"warisin/internal/adapters/http/middleware"
	"warisin/internal/application"
	"warisin/internal/domain"
)

// The handlers depend on these narrow views of the application services.

type AuthService interface {
	Login(ctx context.Context, idToken string, role domain.Role) (domain.User, domain.Session, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, actor application.Actor) (domain.User, error)
	Update(ctx context.Context, actor application.Actor, in application.UserUpdate) (domain.User, error)
}

type ProfileService interface {
	UpsertArtisan(ctx context.Context, actor application.Actor, in application.ArtisanProfileInput) (domain.ArtisanProfile, error)
	GetArtisan(ctx context.Context, userID string) (application.ArtisanPage, error)
	UpsertApplicant(ctx context.Context, actor application.Actor, in application.ApplicantProfileInput) (domain.ApplicantProfile, error)
	GetApplicant(ctx context.Context, actor application.Actor, userID string) (domain.ApplicantProfile, error)
}

type CategoryService interface {
	Create(ctx context.Context, name string) (domain.HeritageCategory, error)
	List(ctx context.Context) ([]domain.HeritageCategory, error)
}

type ProgramService interface {
	Create(ctx context.Context, actor application.Actor, in application.ProgramInput) (domain.Program, error)
	Update(ctx context.Context, actor application.Actor, programID string, in application.ProgramInput) (domain.Program, error)
	SetOpen(ctx context.Context, actor application.Actor, programID string, open bool) (domain.Program, error)
	Get(ctx context.Context, programID string) (domain.Program, error)
	ListOpen(ctx context.Context, filter application.ProgramFilter) ([]domain.Program, error)
	ListByArtisan(ctx context.Context, artisanID string) ([]domain.Program, error)
}

type ApplicationService interface {
	CanApply(ctx context.Context, actor application.Actor, programID string) error
	Apply(ctx context.Context, actor application.Actor, in application.ApplyInput) (domain.Application, error)
	SetStatus(ctx context.Context, actor application.Actor, appID string, next domain.ApplicationStatus) (domain.Application, error)
	Get(ctx context.Context, actor application.Actor, appID string) (domain.Application, error)
	ListByProgram(ctx context.Context, actor application.Actor, programID string) ([]domain.Application, error)
	ListByApplicant(ctx context.Context, actor application.Actor) ([]application.ApplicationView, error)
}

type DashboardService interface {
	Artisan(ctx context.Context, actor application.Actor) (domain.ArtisanDashboard, error)
	Applicant(ctx context.Context, actor application.Actor) (domain.ApplicantDashboard, error)
}

type UploadService interface {
	Upload(ctx context.Context, actor application.Actor, kind application.UploadKind, filename string, body io.Reader) (domain.StoredFile, error)
	Delete(ctx context.Context, actor application.Actor, path string) error
}

type DescriptionService interface {
	Draft(ctx context.Context, actor application.Actor, in application.DraftInput) (application.Draft, error)
}

func actor(c echo.Context) application.Actor {
	sess, _ := middleware.CurrentSession(c)
	return application.ActorFromSession(sess)
}

// parseDate accepts either a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	t = t.UTC()
	return &t, nil
}

func health(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{"status": "ok"})
}
