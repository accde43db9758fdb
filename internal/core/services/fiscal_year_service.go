package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/middleware"
)

// fiscalYearService exposes the fiscal year collaborator.
type fiscalYearService struct {
	fiscalYearRepo portsrepo.FiscalYearRepositoryFacade
}

// NewFiscalYearService creates a new fiscal year service.
func NewFiscalYearService(fiscalYearRepo portsrepo.FiscalYearRepositoryFacade) portssvc.FiscalYearSvcFacade {
	return &fiscalYearService{fiscalYearRepo: fiscalYearRepo}
}

var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

// GetActiveOpenFiscalYear returns the fiscal year accepting new entries, or
// (nil, nil) when none exists. Absence is left to the caller to interpret.
func (s *fiscalYearService) GetActiveOpenFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindActiveOpenFiscalYear(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Debug("No active open fiscal year")
			return nil, nil
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch active fiscal year", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch active fiscal year: %w", err)
	}
	return fy, nil
}
