package dto

import (
	"time"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
)

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsActive     bool      `json:"isActive"`
	IsClosed     bool      `json:"isClosed"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to its DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Name:         fy.Name,
		StartDate:    fy.StartDate,
		EndDate:      fy.EndDate,
		IsActive:     fy.IsActive,
		IsClosed:     fy.IsClosed,
	}
}
