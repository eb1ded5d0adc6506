package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

type ApplyInput struct {
	ProgramID  string
	Message    string
	Motivation string
	CVURL      string
}

// ApplicationView pairs an application with the program it targets.
type ApplicationView struct {
	domain.Application
	ProgramTitle string `json:"program_title"`
}

type ApplicationService struct {
	apps     ports.ApplicationRepository
	programs ports.ProgramRepository
	metrics  ports.Metrics
	logger   ports.Logger
}

func NewApplicationService(apps ports.ApplicationRepository, programs ports.ProgramRepository, metrics ports.Metrics, logger ports.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, programs: programs, metrics: metricsOrNop(metrics), logger: logger}
}

// CanApply reports whether the applicant may submit an application to the program.
func (s *ApplicationService) CanApply(ctx context.Context, actor Actor, programID string) error {
	if err := requireRole(actor, domain.RoleApplicant); err != nil {
		return err
	}
	if programID == "" {
		return domain.ErrInvalidInput
	}
	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return err
	}
	if !program.IsOpen {
		return domain.ErrNotAcceptingApplications
	}
	_, err = s.apps.FindByProgramAndApplicant(ctx, programID, actor.UserID)
	switch {
	case err == nil:
		return domain.ErrDuplicateApplication
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Apply creates a PENDING application. The repository enforces uniqueness and
// the open-program condition atomically; CanApply only yields early errors.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, in ApplyInput) (domain.Application, error) {
	if err := requireRole(actor, domain.RoleApplicant); err != nil {
		return domain.Application{}, err
	}
	if !lengthBetween(in.Message, 1, 2000) || !lengthBetween(in.Motivation, 0, 4000) {
		return domain.Application{}, domain.ErrInvalidInput
	}
	if err := s.CanApply(ctx, actor, in.ProgramID); err != nil {
		return domain.Application{}, err
	}
	ts := now()
	app := domain.Application{
		ID:          uuid.NewString(),
		ProgramID:   in.ProgramID,
		ApplicantID: actor.UserID,
		Message:     strings.TrimSpace(in.Message),
		Motivation:  strings.TrimSpace(in.Motivation),
		CVURL:       in.CVURL,
		Status:      domain.StatusPending,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return domain.Application{}, err
	}
	s.metrics.ApplicationCreated()
	s.logger.Info(ctx, "application submitted", "application_id", app.ID, "program_id", app.ProgramID, "applicant_id", app.ApplicantID)
	return app, nil
}

// SetStatus moves an application along the review workflow on behalf of the
// artisan who owns its program.
func (s *ApplicationService) SetStatus(ctx context.Context, actor Actor, appID string, next domain.ApplicationStatus) (domain.Application, error) {
	if err := requireRole(actor, domain.RoleArtisan); err != nil {
		return domain.Application{}, err
	}
	if appID == "" || !next.Valid() {
		return domain.Application{}, domain.ErrInvalidInput
	}
	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		return domain.Application{}, err
	}
	program, err := s.programs.GetByID(ctx, app.ProgramID)
	if err != nil {
		return domain.Application{}, err
	}
	if program.ArtisanID != actor.UserID {
		return domain.Application{}, domain.ErrPermissionDeny
	}
	from := app.Status
	if !from.CanTransitionTo(next) {
		return domain.Application{}, domain.ErrInvalidTransition
	}
	app.Status = next
	app.UpdatedAt = now()
	if err := s.apps.UpdateStatus(ctx, app, from); err != nil {
		return domain.Application{}, err
	}
	s.metrics.ApplicationTransitioned(from, next)
	s.logger.Info(ctx, "application status changed", "application_id", app.ID, "from", from, "to", next)
	return app, nil
}

func (s *ApplicationService) Approve(ctx context.Context, actor Actor, appID string) (domain.Application, error) {
	return s.SetStatus(ctx, actor, appID, domain.StatusApproved)
}

func (s *ApplicationService) Reject(ctx context.Context, actor Actor, appID string) (domain.Application, error) {
	return s.SetStatus(ctx, actor, appID, domain.StatusRejected)
}

func (s *ApplicationService) Complete(ctx context.Context, actor Actor, appID string) (domain.Application, error) {
	return s.SetStatus(ctx, actor, appID, domain.StatusCompleted)
}

// Get returns an application to its applicant or to the owner of its program.
func (s *ApplicationService) Get(ctx context.Context, actor Actor, appID string) (domain.Application, error) {
	if actor.UserID == "" {
		return domain.Application{}, domain.ErrUnauthenticated
	}
	if appID == "" {
		return domain.Application{}, domain.ErrInvalidInput
	}
	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		return domain.Application{}, err
	}
	if app.ApplicantID == actor.UserID {
		return app, nil
	}
	program, err := s.programs.GetByID(ctx, app.ProgramID)
	if err != nil {
		return domain.Application{}, err
	}
	if program.ArtisanID != actor.UserID {
		return domain.Application{}, domain.ErrPermissionDeny
	}
	return app, nil
}

func (s *ApplicationService) ListByProgram(ctx context.Context, actor Actor, programID string) ([]domain.Application, error) {
	if err := requireRole(actor, domain.RoleArtisan); err != nil {
		return nil, err
	}
	if programID == "" {
		return nil, domain.ErrInvalidInput
	}
	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.ArtisanID != actor.UserID {
		return nil, domain.ErrPermissionDeny
	}
	return s.apps.ListByProgram(ctx, programID)
}

func (s *ApplicationService) ListByApplicant(ctx context.Context, actor Actor) ([]ApplicationView, error) {
	if err := requireRole(actor, domain.RoleApplicant); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByApplicant(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	titles := map[string]string{}
	out := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		title, ok := titles[app.ProgramID]
		if !ok {
			program, err := s.programs.GetByID(ctx, app.ProgramID)
			switch {
			case err == nil:
				title = program.Title
			case !errors.Is(err, domain.ErrNotFound):
				return nil, err
			}
			titles[app.ProgramID] = title
		}
		out = append(out, ApplicationView{Application: app, ProgramTitle: title})
	}
	return out, nil
}
