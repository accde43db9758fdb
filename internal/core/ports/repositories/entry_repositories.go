package repositories

import (
	"context"
	"errors"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
)

var (
	// ErrDuplicateEntryNumber indicates the entry number collided with an
	// existing entry. The allocator is advisory, so callers treat this as
	// retriable exactly once with a freshly allocated number.
	ErrDuplicateEntryNumber = errors.New("entry number already exists")

	// ErrFiscalYearClosed indicates the referenced fiscal year does not
	// accept new entries. Non-retriable.
	ErrFiscalYearClosed = errors.New("fiscal year is closed or inactive")
)

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a specific entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry in line-number order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// ListEntries retrieves a paginated list of entries using token-based
	// pagination, newest first. It returns the entries, a token for the next
	// page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines the commit gateway contract: the header and all lines
// persist as one unit or not at all.
type EntryWriter interface {
	// SaveEntry atomically persists the entry header and its lines.
	// It fails with ErrDuplicateEntryNumber on an entry number collision and
	// ErrFiscalYearClosed when the referenced fiscal year no longer accepts
	// entries; partial entries are never visible to readers.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
