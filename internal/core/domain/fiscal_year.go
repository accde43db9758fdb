package domain

import "time"

// FiscalYear is a bounded accounting period that entries are attributed to.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"` // Primary Key (UUID)
	Name         string    `json:"name"`         // e.g. "1447H" or "2026"
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsActive     bool      `json:"isActive"`
	IsClosed     bool      `json:"isClosed"`
	AuditFields
}

// AcceptsEntries reports whether new journal entries may reference this year.
func (fy FiscalYear) AcceptsEntries() bool {
	return fy.IsActive && !fy.IsClosed
}
