package application

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"warisin/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Debug(context.Context, string, ...any) {}

var (
	artisan   = Actor{UserID: "artisan-1", Role: domain.RoleArtisan}
	applicant = Actor{UserID: "applicant-1", Role: domain.RoleApplicant}
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) Update(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, userID string) (domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepoMock) GetByAuthID(ctx context.Context, authID string) (domain.User, error) {
	args := m.Called(ctx, authID)
	return args.Get(0).(domain.User), args.Error(1)
}

type profileRepoMock struct{ mock.Mock }

func (m *profileRepoMock) PutArtisanProfile(ctx context.Context, profile domain.ArtisanProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *profileRepoMock) GetArtisanProfile(ctx context.Context, userID string) (domain.ArtisanProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.ArtisanProfile), args.Error(1)
}

func (m *profileRepoMock) PutApplicantProfile(ctx context.Context, profile domain.ApplicantProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *profileRepoMock) GetApplicantProfile(ctx context.Context, userID string) (domain.ApplicantProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.ApplicantProfile), args.Error(1)
}

type categoryRepoMock struct{ mock.Mock }

func (m *categoryRepoMock) Create(ctx context.Context, category domain.HeritageCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *categoryRepoMock) GetByID(ctx context.Context, categoryID string) (domain.HeritageCategory, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(domain.HeritageCategory), args.Error(1)
}

func (m *categoryRepoMock) List(ctx context.Context) ([]domain.HeritageCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.HeritageCategory), args.Error(1)
}

type programRepoMock struct{ mock.Mock }

func (m *programRepoMock) Create(ctx context.Context, program domain.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *programRepoMock) Update(ctx context.Context, program domain.Program, prev time.Time) error {
	args := m.Called(ctx, program, prev)
	return args.Error(0)
}

func (m *programRepoMock) GetByID(ctx context.Context, programID string) (domain.Program, error) {
	args := m.Called(ctx, programID)
	return args.Get(0).(domain.Program), args.Error(1)
}

func (m *programRepoMock) List(ctx context.Context) ([]domain.Program, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Program), args.Error(1)
}

func (m *programRepoMock) ListByArtisan(ctx context.Context, artisanID string) ([]domain.Program, error) {
	args := m.Called(ctx, artisanID)
	return args.Get(0).([]domain.Program), args.Error(1)
}

type appRepoMock struct{ mock.Mock }

func (m *appRepoMock) Create(ctx context.Context, app domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *appRepoMock) GetByID(ctx context.Context, appID string) (domain.Application, error) {
	args := m.Called(ctx, appID)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *appRepoMock) FindByProgramAndApplicant(ctx context.Context, programID, applicantID string) (domain.Application, error) {
	args := m.Called(ctx, programID, applicantID)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *appRepoMock) ListByProgram(ctx context.Context, programID string) ([]domain.Application, error) {
	args := m.Called(ctx, programID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *appRepoMock) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *appRepoMock) UpdateStatus(ctx context.Context, app domain.Application, from domain.ApplicationStatus) error {
	args := m.Called(ctx, app, from)
	return args.Error(0)
}

type verifierMock struct{ mock.Mock }

func (m *verifierMock) Verify(ctx context.Context, idToken string) (domain.Identity, error) {
	args := m.Called(ctx, idToken)
	return args.Get(0).(domain.Identity), args.Error(1)
}

type sessionStoreMock struct{ mock.Mock }

func (m *sessionStoreMock) Create(ctx context.Context, userID string, role domain.Role) (domain.Session, error) {
	args := m.Called(ctx, userID, role)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *sessionStoreMock) Get(ctx context.Context, token string) (domain.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *sessionStoreMock) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type storageMock struct{ mock.Mock }

func (m *storageMock) Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) (domain.StoredFile, error) {
	args := m.Called(ctx, path, contentType, body, size)
	return args.Get(0).(domain.StoredFile), args.Error(1)
}

func (m *storageMock) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type generatorMock struct{ mock.Mock }

func (m *generatorMock) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type metricsMock struct{ mock.Mock }

func (m *metricsMock) ApplicationCreated() { m.Called() }

func (m *metricsMock) ApplicationTransitioned(from, to domain.ApplicationStatus) { m.Called(from, to) }

func (m *metricsMock) DescriptionGenerated(source string) { m.Called(source) }
