package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple debit/credit lines.
type JournalEntry struct {
	EntryID      string      `json:"entryID"`      // Primary Key (UUID)
	EntryNumber  string      `json:"entryNumber"`  // Unique display identifier (e.g. "JE-2026-481093")
	EntryDate    time.Time   `json:"entryDate"`    // Date the event occurred
	Description  string      `json:"description"`
	FiscalYearID string      `json:"fiscalYearID"` // FK -> fiscal_years (must be active and open at creation)
	Status       EntryStatus `json:"status"`       // Default: Draft; posting is a downstream workflow
	Lines        []EntryLine `json:"lines,omitempty"`
	AuditFields
}

// EntryLine represents a single line within a journal entry, affecting one account.
// A line is either a debit or a credit; zero/zero is tolerated only as an
// unfilled placeholder while the entry is being edited.
type EntryLine struct {
	EntryID     string          `json:"entryID"`    // Owning entry; lines are never orphaned
	LineNumber  int             `json:"lineNumber"` // 1-based, order-significant for display only
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`  // >= 0
	Credit      decimal.Decimal `json:"credit"` // >= 0
}

// IsEmpty reports whether the line is an unfilled placeholder row.
func (l EntryLine) IsEmpty() bool {
	return l.AccountID == "" && l.Debit.IsZero() && l.Credit.IsZero()
}
