package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"warisin/internal/domain"
)

func newProgramService() (*ProgramService, *programRepoMock, *categoryRepoMock) {
	programs := new(programRepoMock)
	categories := new(categoryRepoMock)
	return NewProgramService(programs, categories, nopLogger{}), programs, categories
}

func validProgramInput() ProgramInput {
	return ProgramInput{Title: "Batik Tulis Pekalongan", Description: "Belajar membatik.", CategoryID: "cat-batik"}
}

func TestProgramService_CreateDefaultsOpen(t *testing.T) {
	svc, programs, categories := newProgramService()
	categories.On("GetByID", mock.Anything, "cat-batik").Return(domain.HeritageCategory{ID: "cat-batik", Name: "Batik"}, nil)
	programs.On("Create", mock.Anything, mock.MatchedBy(func(p domain.Program) bool {
		return p.IsOpen && p.ArtisanID == artisan.UserID && p.CategoryID == "cat-batik" && !p.CreatedAt.IsZero()
	})).Return(nil)

	p, err := svc.Create(context.Background(), artisan, validProgramInput())
	require.NoError(t, err)
	assert.True(t, p.IsOpen)
	programs.AssertExpectations(t)
}

func TestProgramService_CreateRequiresArtisan(t *testing.T) {
	svc, _, _ := newProgramService()
	_, err := svc.Create(context.Background(), applicant, validProgramInput())
	assert.ErrorIs(t, err, domain.ErrPermissionDeny)
}

func TestProgramService_CreateValidation(t *testing.T) {
	svc, _, categories := newProgramService()
	categories.On("GetByID", mock.Anything, "missing").Return(domain.HeritageCategory{}, domain.ErrNotFound)

	in := validProgramInput()
	in.CategoryID = "missing"
	_, err := svc.Create(context.Background(), artisan, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validProgramInput()
	in.Title = ""
	_, err = svc.Create(context.Background(), artisan, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	in = validProgramInput()
	in.StartDate, in.EndDate = &start, &end
	_, err = svc.Create(context.Background(), artisan, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProgramService_SetOpenOwnerOnly(t *testing.T) {
	svc, programs, _ := newProgramService()
	programs.On("GetByID", mock.Anything, "prog-1").Return(domain.Program{ID: "prog-1", ArtisanID: artisan.UserID, IsOpen: true}, nil)
	programs.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Program) bool { return !p.IsOpen }), mock.Anything).Return(nil)

	p, err := svc.SetOpen(context.Background(), artisan, "prog-1", false)
	require.NoError(t, err)
	assert.False(t, p.IsOpen)

	other := Actor{UserID: "artisan-2", Role: domain.RoleArtisan}
	_, err = svc.SetOpen(context.Background(), other, "prog-1", false)
	assert.ErrorIs(t, err, domain.ErrPermissionDeny)
}

func TestProgramService_SetOpenNoopWhenUnchanged(t *testing.T) {
	svc, programs, _ := newProgramService()
	programs.On("GetByID", mock.Anything, "prog-1").Return(domain.Program{ID: "prog-1", ArtisanID: artisan.UserID, IsOpen: true}, nil)

	_, err := svc.SetOpen(context.Background(), artisan, "prog-1", true)
	require.NoError(t, err)
	programs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProgramService_ListOpenFilters(t *testing.T) {
	svc, programs, _ := newProgramService()
	programs.On("List", mock.Anything).Return([]domain.Program{
		{ID: "p1", Title: "Batik Tulis", CategoryID: "batik", IsOpen: true},
		{ID: "p2", Title: "Keramik Kasongan", Description: "tanah liat", CategoryID: "keramik", IsOpen: true},
		{ID: "p3", Title: "Batik Cap", CategoryID: "batik", IsOpen: false},
		{ID: "p4", Title: "Tenun Ikat", Description: "Motif BATIK pada tenun", CategoryID: "tenun", IsOpen: true},
	}, nil)

	all, err := svc.ListOpen(context.Background(), ProgramFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byQuery, err := svc.ListOpen(context.Background(), ProgramFilter{Query: "batik"})
	require.NoError(t, err)
	require.Len(t, byQuery, 2)
	assert.Equal(t, "p1", byQuery[0].ID)
	assert.Equal(t, "p4", byQuery[1].ID)

	byCategory, err := svc.ListOpen(context.Background(), ProgramFilter{Query: "batik", CategoryID: "batik"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "p1", byCategory[0].ID)
}

func TestProgramService_UpdateKeepsOwnership(t *testing.T) {
	svc, programs, categories := newProgramService()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	programs.On("GetByID", mock.Anything, "prog-1").Return(domain.Program{ID: "prog-1", ArtisanID: artisan.UserID, IsOpen: true, CreatedAt: created}, nil)
	categories.On("GetByID", mock.Anything, "cat-batik").Return(domain.HeritageCategory{ID: "cat-batik"}, nil)
	programs.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Program) bool {
		return p.ArtisanID == artisan.UserID && p.CreatedAt.Equal(created) && p.Title == "Batik Tulis Pekalongan"
	}), mock.Anything).Return(nil)

	_, err := svc.Update(context.Background(), artisan, "prog-1", validProgramInput())
	require.NoError(t, err)
	programs.AssertExpectations(t)
}

func TestProgramService_SetOpenGuardsAgainstConcurrentEdit(t *testing.T) {
	svc, programs, _ := newProgramService()
	read := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	programs.On("GetByID", mock.Anything, "prog-1").Return(domain.Program{ID: "prog-1", ArtisanID: artisan.UserID, IsOpen: true, UpdatedAt: read}, nil)
	programs.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Program) bool {
		return !p.IsOpen && p.UpdatedAt.After(read)
	}), read).Return(domain.ErrConflict)

	_, err := svc.SetOpen(context.Background(), artisan, "prog-1", false)
	assert.ErrorIs(t, err, domain.ErrConflict)
	programs.AssertExpectations(t)
}
