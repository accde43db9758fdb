package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrTemplateNoSplits indicates a template side has no account splits.
	ErrTemplateNoSplits = errors.New("template side must have at least one account split")
	// ErrTemplateSplitShape indicates a split does not carry exactly one of percentage or fixed amount.
	ErrTemplateSplitShape = errors.New("template split must set exactly one of percentage or fixedAmount, and it must be positive")
	// ErrTemplatePercentageSum indicates the percentages on one side do not sum to 100.
	ErrTemplatePercentageSum = errors.New("template side percentages must sum to 100")
	// ErrTemplateMixedSplitModes indicates percentage and fixed-amount splits are mixed.
	ErrTemplateMixedSplitModes = errors.New("template must use percentages or fixed amounts consistently")
	// ErrTemplateFixedImbalance indicates fixed debit and credit totals differ.
	ErrTemplateFixedImbalance = errors.New("template fixed debit total must equal fixed credit total")
)

// TemplateSplit maps one side of an auto-posting template onto a ledger
// account, taking either a percentage of the trigger amount or a fixed amount.
type TemplateSplit struct {
	AccountCode string           `json:"accountCode"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`  // 0 < p <= 100
	FixedAmount *decimal.Decimal `json:"fixedAmount,omitempty"` // > 0
}

// AutoPostingTemplate is an administrator-authored mapping from a business
// trigger event to a set of debit/credit account splits. Templates are
// validated at authoring time and defensively re-validated at expansion time.
type AutoPostingTemplate struct {
	TemplateID     string          `json:"templateID"` // Primary Key (UUID)
	TriggerEvent   TriggerEvent    `json:"triggerEvent"`
	TemplateName   string          `json:"templateName"`
	DebitAccounts  []TemplateSplit `json:"debitAccounts"`
	CreditAccounts []TemplateSplit `json:"creditAccounts"`
	IsActive       bool            `json:"isActive"`
	Priority       int             `json:"priority"` // Highest wins; ties broken by template ID ascending
	AuditFields
}

var hundred = decimal.NewFromInt(100)

// Validate checks that the template is capable of producing a balanced entry
// for any positive amount: each side uses percentages summing to 100, or both
// sides use fixed amounts with equal totals. Mixing modes is rejected because
// a percentage side expands to the trigger amount while a fixed side expands
// to a constant, which can only balance for a single amount.
func (t AutoPostingTemplate) Validate() error {
	debitPct, debitFixed, err := sideTotals("debit", t.DebitAccounts)
	if err != nil {
		return err
	}
	creditPct, creditFixed, err := sideTotals("credit", t.CreditAccounts)
	if err != nil {
		return err
	}

	debitUsesPct := debitPct != nil
	creditUsesPct := creditPct != nil
	if debitUsesPct != creditUsesPct {
		return ErrTemplateMixedSplitModes
	}

	if debitUsesPct {
		if !debitPct.Equal(hundred) {
			return fmt.Errorf("%w: debit side sums to %s", ErrTemplatePercentageSum, debitPct.String())
		}
		if !creditPct.Equal(hundred) {
			return fmt.Errorf("%w: credit side sums to %s", ErrTemplatePercentageSum, creditPct.String())
		}
		return nil
	}

	if !debitFixed.Equal(creditFixed) {
		return fmt.Errorf("%w: debit total %s, credit total %s", ErrTemplateFixedImbalance, debitFixed.String(), creditFixed.String())
	}
	return nil
}

// sideTotals sums one side's splits. It returns a percentage total when the
// side uses percentages, or a fixed total otherwise. A side must use one mode
// for all of its splits.
func sideTotals(side string, splits []TemplateSplit) (*decimal.Decimal, decimal.Decimal, error) {
	if len(splits) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: %s side", ErrTemplateNoSplits, side)
	}

	pctCount := 0
	pctSum := decimal.Zero
	fixedSum := decimal.Zero
	for _, split := range splits {
		hasPct := split.Percentage != nil
		hasFixed := split.FixedAmount != nil
		if hasPct == hasFixed {
			return nil, decimal.Zero, fmt.Errorf("%w: %s split for account %s", ErrTemplateSplitShape, side, split.AccountCode)
		}
		if hasPct {
			if split.Percentage.LessThanOrEqual(decimal.Zero) || split.Percentage.GreaterThan(hundred) {
				return nil, decimal.Zero, fmt.Errorf("%w: %s split for account %s", ErrTemplateSplitShape, side, split.AccountCode)
			}
			pctCount++
			pctSum = pctSum.Add(*split.Percentage)
			continue
		}
		if split.FixedAmount.LessThanOrEqual(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: %s split for account %s", ErrTemplateSplitShape, side, split.AccountCode)
		}
		fixedSum = fixedSum.Add(*split.FixedAmount)
	}

	if pctCount > 0 && pctCount != len(splits) {
		return nil, decimal.Zero, fmt.Errorf("%w: %s side", ErrTemplateMixedSplitModes, side)
	}
	if pctCount > 0 {
		return &pctSum, decimal.Zero, nil
	}
	return nil, fixedSum, nil
}
