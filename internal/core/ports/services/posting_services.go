package services

import (
	"context"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
	"github.com/awqafio/waqf_ledger/internal/dto"
)

// CommitListener is notified after an entry has been durably committed.
// Callers use it to invalidate downstream caches; the engine itself never
// reaches into cache state.
type CommitListener func(entry domain.JournalEntry)

// PostingSvcFacade is the public surface of the journal entry posting engine.
type PostingSvcFacade interface {
	// AutoPost expands the trigger event through its auto-posting template
	// into a balanced entry and commits it. Template misconfiguration
	// surfaces as a configuration error and is never auto-corrected.
	AutoPost(ctx context.Context, req dto.AutoPostRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PrepareManualEntry returns a fresh builder seeded with two empty lines
	// and an allocated provisional entry number, plus the default open
	// fiscal year when one exists (nil otherwise).
	PrepareManualEntry(ctx context.Context) (*domain.EntryBuilder, *domain.FiscalYear, error)

	// SubmitManualEntry validates the candidate lines and commits the entry.
	// A duplicate entry number is retried exactly once with a freshly
	// allocated number before surfacing.
	SubmitManualEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a token-paginated entry listing, newest first.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// RegisterCommitListener adds a post-commit callback.
	RegisterCommitListener(listener CommitListener)
}
