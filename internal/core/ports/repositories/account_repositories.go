package repositories

import (
	"context"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
)

// AccountReader defines read operations against the ledger account directory.
// The posting engine never writes accounts; the directory is maintained by
// administrative configuration.
type AccountReader interface {
	// ListPostableAccounts retrieves all active, non-header accounts.
	ListPostableAccounts(ctx context.Context) ([]domain.Account, error)

	// FindAccountByCode retrieves an account by its human-readable code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code.
	// Codes with no matching account are absent from the result.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by account ID.
	// IDs with no matching account are absent from the result.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
}
