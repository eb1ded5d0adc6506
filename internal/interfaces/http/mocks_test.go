package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"warisin/internal/application"
	"warisin/internal/domain"
)

type authServiceMock struct{ mock.Mock }

func (m *authServiceMock) Login(ctx context.Context, idToken string, role domain.Role) (domain.User, domain.Session, error) {
	args := m.Called(ctx, idToken, role)
	return args.Get(0).(domain.User), args.Get(1).(domain.Session), args.Error(2)
}

func (m *authServiceMock) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *authServiceMock) Me(ctx context.Context, actor application.Actor) (domain.User, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) Update(ctx context.Context, actor application.Actor, in application.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(domain.User), args.Error(1)
}

type profileServiceMock struct{ mock.Mock }

func (m *profileServiceMock) UpsertArtisan(ctx context.Context, actor application.Actor, in application.ArtisanProfileInput) (domain.ArtisanProfile, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(domain.ArtisanProfile), args.Error(1)
}

func (m *profileServiceMock) GetArtisan(ctx context.Context, userID string) (application.ArtisanPage, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(application.ArtisanPage), args.Error(1)
}

func (m *profileServiceMock) UpsertApplicant(ctx context.Context, actor application.Actor, in application.ApplicantProfileInput) (domain.ApplicantProfile, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(domain.ApplicantProfile), args.Error(1)
}

func (m *profileServiceMock) GetApplicant(ctx context.Context, actor application.Actor, userID string) (domain.ApplicantProfile, error) {
	args := m.Called(ctx, actor, userID)
	return args.Get(0).(domain.ApplicantProfile), args.Error(1)
}

type categoryServiceMock struct{ mock.Mock }

func (m *categoryServiceMock) Create(ctx context.Context, name string) (domain.HeritageCategory, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.HeritageCategory), args.Error(1)
}

func (m *categoryServiceMock) List(ctx context.Context) ([]domain.HeritageCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.HeritageCategory), args.Error(1)
}

type programServiceMock struct{ mock.Mock }

func (m *programServiceMock) Create(ctx context.Context, actor application.Actor, in application.ProgramInput) (domain.Program, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(domain.Program), args.Error(1)
}

func (m *programServiceMock) Update(ctx context.Context, actor application.Actor, programID string, in application.ProgramInput) (domain.Program, error) {
	args := m.Called(ctx, actor, programID, in)
	return args.Get(0).(domain.Program), args.Error(1)
}

func (m *programServiceMock) SetOpen(ctx context.Context, actor application.Actor, programID string, open bool) (domain.Program, error) {
	args := m.Called(ctx, actor, programID, open)
	return args.Get(0).(domain.Program), args.Error(1)
}

func (m *programServiceMock) Get(ctx context.Context, programID string) (domain.Program, error) {
	args := m.Called(ctx, programID)
	return args.Get(0).(domain.Program), args.Error(1)
}

func (m *programServiceMock) ListOpen(ctx context.Context, filter application.ProgramFilter) ([]domain.Program, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Program), args.Error(1)
}

func (m *programServiceMock) ListByArtisan(ctx context.Context, artisanID string) ([]domain.Program, error) {
	args := m.Called(ctx, artisanID)
	return args.Get(0).([]domain.Program), args.Error(1)
}

type applicationServiceMock struct{ mock.Mock }

func (m *applicationServiceMock) CanApply(ctx context.Context, actor application.Actor, programID string) error {
	return m.Called(ctx, actor, programID).Error(0)
}

func (m *applicationServiceMock) Apply(ctx context.Context, actor application.Actor, in application.ApplyInput) (domain.Application, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *applicationServiceMock) SetStatus(ctx context.Context, actor application.Actor, appID string, next domain.ApplicationStatus) (domain.Application, error) {
	args := m.Called(ctx, actor, appID, next)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *applicationServiceMock) Get(ctx context.Context, actor application.Actor, appID string) (domain.Application, error) {
	args := m.Called(ctx, actor, appID)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *applicationServiceMock) ListByProgram(ctx context.Context, actor application.Actor, programID string) ([]domain.Application, error) {
	args := m.Called(ctx, actor, programID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *applicationServiceMock) ListByApplicant(ctx context.Context, actor application.Actor) ([]application.ApplicationView, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]application.ApplicationView), args.Error(1)
}

type dashboardServiceMock struct{ mock.Mock }

func (m *dashboardServiceMock) Artisan(ctx context.Context, actor application.Actor) (domain.ArtisanDashboard, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.ArtisanDashboard), args.Error(1)
}

func (m *dashboardServiceMock) Applicant(ctx context.Context, actor application.Actor) (domain.ApplicantDashboard, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.ApplicantDashboard), args.Error(1)
}

type uploadServiceMock struct{ mock.Mock }

func (m *uploadServiceMock) Upload(ctx context.Context, actor application.Actor, kind application.UploadKind, filename string, body io.Reader) (domain.StoredFile, error) {
	data, _ := io.ReadAll(body)
	args := m.Called(ctx, actor, kind, filename, string(data))
	return args.Get(0).(domain.StoredFile), args.Error(1)
}

func (m *uploadServiceMock) Delete(ctx context.Context, actor application.Actor, path string) error {
	return m.Called(ctx, actor, path).Error(0)
}

type descriptionServiceMock struct{ mock.Mock }

func (m *descriptionServiceMock) Draft(ctx context.Context, actor application.Actor, in application.DraftInput) (application.Draft, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(application.Draft), args.Error(1)
}
