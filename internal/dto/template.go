package dto

import (
	"time"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TemplateSplitRequest maps one template side onto an account code with
// either a percentage of the trigger amount or a fixed amount.
type TemplateSplitRequest struct {
	AccountCode string           `json:"accountCode" binding:"required"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	FixedAmount *decimal.Decimal `json:"fixedAmount,omitempty"`
}

// CreateTemplateRequest is the payload for authoring an auto-posting template.
type CreateTemplateRequest struct {
	TriggerEvent   string                 `json:"triggerEvent" binding:"required"`
	TemplateName   string                 `json:"templateName" binding:"required"`
	DebitAccounts  []TemplateSplitRequest `json:"debitAccounts" binding:"required,min=1,dive"`
	CreditAccounts []TemplateSplitRequest `json:"creditAccounts" binding:"required,min=1,dive"`
	Priority       int                    `json:"priority"`
	IsActive       *bool                  `json:"isActive"` // Defaults to true
}

// SetTemplateActiveRequest flips a template's active flag.
type SetTemplateActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// TemplateSplitResponse mirrors TemplateSplitRequest in responses.
type TemplateSplitResponse struct {
	AccountCode string           `json:"accountCode"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	FixedAmount *decimal.Decimal `json:"fixedAmount,omitempty"`
}

// TemplateResponse defines the data returned for an auto-posting template.
type TemplateResponse struct {
	TemplateID     string                  `json:"templateID"`
	TriggerEvent   string                  `json:"triggerEvent"`
	TemplateName   string                  `json:"templateName"`
	DebitAccounts  []TemplateSplitResponse `json:"debitAccounts"`
	CreditAccounts []TemplateSplitResponse `json:"creditAccounts"`
	IsActive       bool                    `json:"isActive"`
	Priority       int                     `json:"priority"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToTemplateSplits converts split requests to domain splits.
func ToTemplateSplits(reqs []TemplateSplitRequest) []domain.TemplateSplit {
	splits := make([]domain.TemplateSplit, len(reqs))
	for i, req := range reqs {
		splits[i] = domain.TemplateSplit{
			AccountCode: req.AccountCode,
			Percentage:  req.Percentage,
			FixedAmount: req.FixedAmount,
		}
	}
	return splits
}

func toTemplateSplitResponses(splits []domain.TemplateSplit) []TemplateSplitResponse {
	responses := make([]TemplateSplitResponse, len(splits))
	for i, split := range splits {
		responses[i] = TemplateSplitResponse{
			AccountCode: split.AccountCode,
			Percentage:  split.Percentage,
			FixedAmount: split.FixedAmount,
		}
	}
	return responses
}

// ToTemplateResponse converts a domain.AutoPostingTemplate to its DTO.
func ToTemplateResponse(template *domain.AutoPostingTemplate) TemplateResponse {
	return TemplateResponse{
		TemplateID:     template.TemplateID,
		TriggerEvent:   string(template.TriggerEvent),
		TemplateName:   template.TemplateName,
		DebitAccounts:  toTemplateSplitResponses(template.DebitAccounts),
		CreditAccounts: toTemplateSplitResponses(template.CreditAccounts),
		IsActive:       template.IsActive,
		Priority:       template.Priority,
		CreatedAt:      template.CreatedAt,
	}
}

// ToTemplateResponses converts a slice of templates to DTOs.
func ToTemplateResponses(templates []domain.AutoPostingTemplate) []TemplateResponse {
	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = ToTemplateResponse(&templates[i])
	}
	return responses
}
