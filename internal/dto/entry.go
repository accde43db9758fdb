package dto

import (
	"time"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is a single candidate line of a manual journal entry.
// A line carries either a debit or a credit; the balance validator enforces
// the cross-line invariants.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debitAmount"`
	Credit      decimal.Decimal `json:"creditAmount"`
}

// CreateEntryRequest is the payload for submitting a manual journal entry.
// EntryNumber is the provisional number handed out by PrepareManualEntry; if
// absent a fresh one is allocated at submit time.
type CreateEntryRequest struct {
	EntryNumber  string                   `json:"entryNumber"`
	EntryDate    time.Time                `json:"entryDate" binding:"required"`
	Description  string                   `json:"description" binding:"required"`
	FiscalYearID string                   `json:"fiscalYearID"`
	Lines        []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// AutoPostRequest asks the engine to expand a business trigger event into a
// balanced journal entry and commit it. TriggerEvent is deliberately an open
// string: resolution happens against the template table, so events unknown to
// this binary can still fire once an administrator authors a template.
type AutoPostRequest struct {
	TriggerEvent string          `json:"triggerEvent" binding:"required"`
	ReferenceID  string          `json:"referenceID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	EntryDate    time.Time       `json:"entryDate" binding:"required"`
	Description  string          `json:"description"`
	FiscalYearID string          `json:"fiscalYearID"`
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debitAmount"`
	Credit      decimal.Decimal `json:"creditAmount"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID      string              `json:"entryID"`
	EntryNumber  string              `json:"entryNumber"`
	EntryDate    time.Time           `json:"entryDate"`
	Description  string              `json:"description"`
	FiscalYearID string              `json:"fiscalYearID"`
	Status       string              `json:"status"`
	Lines        []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is the paginated entry listing payload.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// PreparedEntryResponse is returned by the manual-entry preparation endpoint:
// a provisional entry number, the seeded empty lines, and the default fiscal
// year when one is open.
type PreparedEntryResponse struct {
	EntryNumber  string              `json:"entryNumber"`
	FiscalYearID string              `json:"fiscalYearID,omitempty"`
	Lines        []EntryLineResponse `json:"lines"`
}

// ToEntryLineResponse converts a domain.EntryLine to its DTO.
func ToEntryLineResponse(line domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineNumber:  line.LineNumber,
		AccountID:   line.AccountID,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
	}
}

// ToEntryLineResponses converts a slice of domain.EntryLine to DTOs.
func ToEntryLineResponses(lines []domain.EntryLine) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToEntryLineResponse(line)
	}
	return responses
}

// ToEntryResponse converts a domain.JournalEntry to its DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:      entry.EntryID,
		EntryNumber:  entry.EntryNumber,
		EntryDate:    entry.EntryDate,
		Description:  entry.Description,
		FiscalYearID: entry.FiscalYearID,
		Status:       string(entry.Status),
		CreatedAt:    entry.CreatedAt,
		CreatedBy:    entry.CreatedBy,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = ToEntryLineResponses(entry.Lines)
	}
	return resp
}
