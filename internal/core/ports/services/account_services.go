package services

import (
	"context"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
)

// AccountSvcFacade is the read-only account directory consumed by the posting
// engine and the HTTP layer.
type AccountSvcFacade interface {
	// ListPostableAccounts returns only accounts with isHeader=false and isActive=true.
	ListPostableAccounts(ctx context.Context) ([]domain.Account, error)

	// ResolveAccountByCode resolves a human-readable account code.
	// Returns apperrors.ErrNotFound for unknown codes.
	ResolveAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByCodes resolves multiple codes at once, keyed by code.
	GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// GetAccountsByIDs resolves multiple account IDs at once, keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}
