package services

import (
	"context"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
)

// FiscalYearSvcFacade exposes the fiscal year collaborator.
type FiscalYearSvcFacade interface {
	// GetActiveOpenFiscalYear returns the fiscal year accepting new entries,
	// or (nil, nil) when none exists; absence is not a hard error for the
	// posting engine, the caller decides whether to block entry creation.
	GetActiveOpenFiscalYear(ctx context.Context) (*domain.FiscalYear, error)
}
