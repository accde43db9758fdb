package pgsql

import (
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories onto a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(pool),
		FiscalYearRepo: newPgxFiscalYearRepository(pool),
		TemplateRepo:   newPgxTemplateRepository(pool),
		EntryRepo:      newPgxEntryRepository(pool),
	}
}
