package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"warisin/internal/domain"
)

func newApplicationService() (*ApplicationService, *appRepoMock, *programRepoMock) {
	apps := new(appRepoMock)
	programs := new(programRepoMock)
	return NewApplicationService(apps, programs, nil, nopLogger{}), apps, programs
}

func openProgram() domain.Program {
	return domain.Program{ID: "prog-1", Title: "Batik Tulis", ArtisanID: artisan.UserID, IsOpen: true}
}

func TestApplicationService_ApplyCreatesPending(t *testing.T) {
	svc, apps, programs := newApplicationService()
	programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil)
	apps.On("FindByProgramAndApplicant", mock.Anything, "prog-1", applicant.UserID).Return(domain.Application{}, domain.ErrNotFound)
	apps.On("Create", mock.Anything, mock.MatchedBy(func(app domain.Application) bool {
		return app.ProgramID == "prog-1" && app.ApplicantID == applicant.UserID &&
			app.Status == domain.StatusPending && !app.CreatedAt.IsZero() && app.CreatedAt.Equal(app.UpdatedAt)
	})).Return(nil)

	app, err := svc.Apply(context.Background(), applicant, ApplyInput{ProgramID: "prog-1", Message: "Saya ingin belajar batik."})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, app.Status)
	assert.NotEmpty(t, app.ID)
	apps.AssertExpectations(t)
}

func TestApplicationService_ApplyTwiceIsDuplicate(t *testing.T) {
	svc, apps, programs := newApplicationService()
	programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil)
	apps.On("FindByProgramAndApplicant", mock.Anything, "prog-1", applicant.UserID).Return(domain.Application{ID: "app-1"}, nil)

	_, err := svc.Apply(context.Background(), applicant, ApplyInput{ProgramID: "prog-1", Message: "again"})
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
	apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApplicationService_ApplyRaceSurfacesRepositoryDuplicate(t *testing.T) {
	svc, apps, programs := newApplicationService()
	programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil)
	apps.On("FindByProgramAndApplicant", mock.Anything, "prog-1", applicant.UserID).Return(domain.Application{}, domain.ErrNotFound)
	apps.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateApplication)

	_, err := svc.Apply(context.Background(), applicant, ApplyInput{ProgramID: "prog-1", Message: "hello"})
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
}

func TestApplicationService_ApplyClosedProgram(t *testing.T) {
	svc, apps, programs := newApplicationService()
	closed := openProgram()
	closed.IsOpen = false
	programs.On("GetByID", mock.Anything, "prog-1").Return(closed, nil)

	_, err := svc.Apply(context.Background(), applicant, ApplyInput{ProgramID: "prog-1", Message: "hello"})
	assert.ErrorIs(t, err, domain.ErrNotAcceptingApplications)
	apps.AssertNotCalled(t, "FindByProgramAndApplicant", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationService_ApplyMissingProgram(t *testing.T) {
	svc, _, programs := newApplicationService()
	programs.On("GetByID", mock.Anything, "ghost").Return(domain.Program{}, domain.ErrNotFound)

	_, err := svc.Apply(context.Background(), applicant, ApplyInput{ProgramID: "ghost", Message: "hello"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationService_ApplyValidation(t *testing.T) {
	svc, _, _ := newApplicationService()

	_, err := svc.Apply(context.Background(), applicant, ApplyInput{ProgramID: "prog-1", Message: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Apply(context.Background(), applicant, ApplyInput{ProgramID: "prog-1", Message: strings.Repeat("a", 2001)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Apply(context.Background(), artisan, ApplyInput{ProgramID: "prog-1", Message: "hello"})
	assert.ErrorIs(t, err, domain.ErrPermissionDeny)

	_, err = svc.Apply(context.Background(), Actor{}, ApplyInput{ProgramID: "prog-1", Message: "hello"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// Program P is open; applicant A applies, then applies again; the artisan
// closes P and applicant B is turned away.
func TestApplicationService_Scenario(t *testing.T) {
	svc, apps, programs := newApplicationService()
	program := openProgram()
	programs.On("GetByID", mock.Anything, "prog-1").Return(program, nil).Twice()
	apps.On("FindByProgramAndApplicant", mock.Anything, "prog-1", "A").Return(domain.Application{}, domain.ErrNotFound).Once()
	apps.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	a := Actor{UserID: "A", Role: domain.RoleApplicant}
	created, err := svc.Apply(context.Background(), a, ApplyInput{ProgramID: "prog-1", Message: "I would love to learn it."})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)

	apps.On("FindByProgramAndApplicant", mock.Anything, "prog-1", "A").Return(created, nil).Once()
	_, err = svc.Apply(context.Background(), a, ApplyInput{ProgramID: "prog-1", Message: "second try"})
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)

	program.IsOpen = false
	programs.On("GetByID", mock.Anything, "prog-1").Return(program, nil).Once()
	b := Actor{UserID: "B", Role: domain.RoleApplicant}
	_, err = svc.Apply(context.Background(), b, ApplyInput{ProgramID: "prog-1", Message: "let me in"})
	assert.ErrorIs(t, err, domain.ErrNotAcceptingApplications)
}

func TestApplicationService_ApproveByOwner(t *testing.T) {
	m := new(metricsMock)
	apps := new(appRepoMock)
	programs := new(programRepoMock)
	svc := NewApplicationService(apps, programs, m, nopLogger{})

	apps.On("GetByID", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", ProgramID: "prog-1", Status: domain.StatusPending}, nil)
	programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil)
	apps.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(app domain.Application) bool {
		return app.Status == domain.StatusApproved
	}), domain.StatusPending).Return(nil)
	m.On("ApplicationTransitioned", domain.StatusPending, domain.StatusApproved).Return()

	app, err := svc.Approve(context.Background(), artisan, "app-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, app.Status)
	m.AssertExpectations(t)
}

func TestApplicationService_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from domain.ApplicationStatus
		to   domain.ApplicationStatus
	}{
		{domain.StatusPending, domain.StatusCompleted},
		{domain.StatusCompleted, domain.StatusPending},
		{domain.StatusRejected, domain.StatusApproved},
		{domain.StatusApproved, domain.StatusApproved},
	}
	for _, tc := range cases {
		svc, apps, programs := newApplicationService()
		apps.On("GetByID", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", ProgramID: "prog-1", Status: tc.from}, nil)
		programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil)

		_, err := svc.SetStatus(context.Background(), artisan, "app-1", tc.to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestApplicationService_SetStatusRequiresOwner(t *testing.T) {
	svc, apps, programs := newApplicationService()
	apps.On("GetByID", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", ProgramID: "prog-1", Status: domain.StatusPending}, nil)
	programs.On("GetByID", mock.Anything, "prog-1").Return(domain.Program{ID: "prog-1", ArtisanID: "someone-else"}, nil)

	_, err := svc.Reject(context.Background(), artisan, "app-1")
	assert.ErrorIs(t, err, domain.ErrPermissionDeny)

	_, err = svc.Reject(context.Background(), applicant, "app-1")
	assert.ErrorIs(t, err, domain.ErrPermissionDeny)
}

func TestApplicationService_SetStatusConflict(t *testing.T) {
	svc, apps, programs := newApplicationService()
	apps.On("GetByID", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", ProgramID: "prog-1", Status: domain.StatusApproved}, nil)
	programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil)
	apps.On("UpdateStatus", mock.Anything, mock.Anything, domain.StatusApproved).Return(domain.ErrConflict)

	_, err := svc.Complete(context.Background(), artisan, "app-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestApplicationService_GetVisibility(t *testing.T) {
	svc, apps, programs := newApplicationService()
	app := domain.Application{ID: "app-1", ProgramID: "prog-1", ApplicantID: applicant.UserID}
	apps.On("GetByID", mock.Anything, "app-1").Return(app, nil)
	programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil)

	got, err := svc.Get(context.Background(), applicant, "app-1")
	require.NoError(t, err)
	assert.Equal(t, app, got)

	_, err = svc.Get(context.Background(), artisan, "app-1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), Actor{UserID: "stranger", Role: domain.RoleApplicant}, "app-1")
	assert.ErrorIs(t, err, domain.ErrPermissionDeny)
}

func TestApplicationService_ListByApplicantAddsTitles(t *testing.T) {
	svc, apps, programs := newApplicationService()
	apps.On("ListByApplicant", mock.Anything, applicant.UserID).Return([]domain.Application{
		{ID: "a1", ProgramID: "prog-1"}, {ID: "a2", ProgramID: "prog-1"}, {ID: "a3", ProgramID: "gone"},
	}, nil)
	programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil).Once()
	programs.On("GetByID", mock.Anything, "gone").Return(domain.Program{}, domain.ErrNotFound).Once()

	out, err := svc.ListByApplicant(context.Background(), applicant)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Batik Tulis", out[0].ProgramTitle)
	assert.Equal(t, "Batik Tulis", out[1].ProgramTitle)
	assert.Empty(t, out[2].ProgramTitle)
	programs.AssertExpectations(t)
}

func TestApplicationService_ListByProgramPropagatesErrors(t *testing.T) {
	svc, apps, programs := newApplicationService()
	programs.On("GetByID", mock.Anything, "prog-1").Return(openProgram(), nil)
	expectedErr := errors.New("db down")
	apps.On("ListByProgram", mock.Anything, "prog-1").Return([]domain.Application(nil), expectedErr)

	_, err := svc.ListByProgram(context.Background(), artisan, "prog-1")
	assert.ErrorIs(t, err, expectedErr)
}
