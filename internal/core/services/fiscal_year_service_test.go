package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	"github.com/awqafio/waqf_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock FiscalYearRepository ---
type MockFiscalYearRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalYearRepositoryFacade = (*MockFiscalYearRepository)(nil)

func (m *MockFiscalYearRepository) FindActiveOpenFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func TestFiscalYearService_GetActiveOpenFiscalYear(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockFiscalYearRepository)
	svc := services.NewFiscalYearService(mockRepo)

	fy := &domain.FiscalYear{FiscalYearID: "fy-2026", IsActive: true}
	mockRepo.On("FindActiveOpenFiscalYear", ctx).Return(fy, nil).Once()

	got, err := svc.GetActiveOpenFiscalYear(ctx)

	require.NoError(t, err)
	assert.Equal(t, fy, got)
}

func TestFiscalYearService_AbsenceIsNotAnError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockFiscalYearRepository)
	svc := services.NewFiscalYearService(mockRepo)

	mockRepo.On("FindActiveOpenFiscalYear", ctx).Return(nil, apperrors.ErrNotFound).Once()

	got, err := svc.GetActiveOpenFiscalYear(ctx)

	require.NoError(t, err, "No open fiscal year is a normal state, not a failure")
	assert.Nil(t, got)
}

func TestFiscalYearService_RepositoryFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockFiscalYearRepository)
	svc := services.NewFiscalYearService(mockRepo)

	repoErr := errors.New("connection refused")
	mockRepo.On("FindActiveOpenFiscalYear", ctx).Return(nil, repoErr).Once()

	_, err := svc.GetActiveOpenFiscalYear(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}
