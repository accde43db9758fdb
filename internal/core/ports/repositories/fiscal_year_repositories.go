package repositories

import (
	"context"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal year data.
type FiscalYearReader interface {
	// FindActiveOpenFiscalYear retrieves the fiscal year that is active and
	// not closed. Returns apperrors.ErrNotFound when no such year exists.
	FindActiveOpenFiscalYear(ctx context.Context) (*domain.FiscalYear, error)

	// FindFiscalYearByID retrieves a specific fiscal year.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
}

// FiscalYearRepositoryFacade combines all fiscal-year repository interfaces.
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
}
