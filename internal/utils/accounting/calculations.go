package accounting

import (
	"errors"
	"fmt"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnbalanced indicates total debits do not equal total credits.
	ErrUnbalanced = errors.New("entry lines do not balance")
	// ErrZeroAmount indicates the entry totals to zero and there is nothing to post.
	ErrZeroAmount = errors.New("entry total must be greater than zero")
	// ErrMissingAccount indicates a line references an empty or non-postable account.
	ErrMissingAccount = errors.New("line references a missing or non-postable account")
	// ErrInvalidLine indicates a line carries both a debit and a credit amount.
	ErrInvalidLine = errors.New("line cannot have both debit and credit amounts")

	// ErrInvalidTemplateAccount indicates a template split references an account
	// code that does not resolve to an active, non-header account.
	ErrInvalidTemplateAccount = errors.New("template references an invalid account code")
	// ErrTemplateUnbalanced indicates template expansion produced an unbalanced
	// line set. The template must be fixed; the imbalance is never coerced.
	ErrTemplateUnbalanced = errors.New("template expansion produced an unbalanced entry")
)

var hundred = decimal.NewFromInt(100)

// Totals returns the debit and credit sums across the given lines.
func Totals(lines []domain.EntryLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateEntryBalance gatekeeps commit eligibility for a candidate line set.
// accounts is the directory slice relevant to the lines, keyed by account ID.
//
// All checks always run and every violation found is reported, joined into a
// single error; callers match individual violations with errors.Is.
func ValidateEntryBalance(lines []domain.EntryLine, accounts map[string]domain.Account) error {
	var violations []error

	totalDebit, totalCredit := Totals(lines)
	if !totalDebit.Equal(totalCredit) {
		violations = append(violations, fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			ErrUnbalanced, totalDebit.String(), totalCredit.String()))
	}
	if totalDebit.IsZero() && totalCredit.IsZero() {
		violations = append(violations, ErrZeroAmount)
	}

	for _, line := range lines {
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			violations = append(violations, fmt.Errorf("%w: line %d has debit %s and credit %s",
				ErrInvalidLine, line.LineNumber, line.Debit.String(), line.Credit.String()))
		}
		if line.AccountID == "" {
			violations = append(violations, fmt.Errorf("%w: line %d has no account", ErrMissingAccount, line.LineNumber))
			continue
		}
		account, found := accounts[line.AccountID]
		if !found || !account.IsPostable() {
			violations = append(violations, fmt.Errorf("%w: line %d account %s", ErrMissingAccount, line.LineNumber, line.AccountID))
		}
	}

	return errors.Join(violations...)
}

// ExpandTemplate turns a template plus a positive trigger amount into a
// concrete, balanced candidate line set. Account codes are resolved through
// accountsByCode; every code must resolve to an active, non-header account.
// The result is re-validated so a misconfigured template (for example,
// percentages that no longer sum to 100) fails instead of posting silently.
//
// Expansion is a pure function of (template, amount, directory) and has no
// knowledge of persistence. Line order is debit splits then credit splits,
// each in template order.
func ExpandTemplate(tmpl domain.AutoPostingTemplate, amount decimal.Decimal, accountsByCode map[string]domain.Account) ([]domain.EntryLine, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrTemplateUnbalanced, amount.String())
	}

	lines := make([]domain.EntryLine, 0, len(tmpl.DebitAccounts)+len(tmpl.CreditAccounts))
	accountsByID := make(map[string]domain.Account, len(accountsByCode))

	appendSide := func(splits []domain.TemplateSplit, debitSide bool) error {
		for _, split := range splits {
			account, found := accountsByCode[split.AccountCode]
			if !found || !account.IsPostable() {
				return fmt.Errorf("%w: %s", ErrInvalidTemplateAccount, split.AccountCode)
			}
			accountsByID[account.AccountID] = account

			lineAmount := splitAmount(split, amount)
			line := domain.EntryLine{
				LineNumber:  len(lines) + 1,
				AccountID:   account.AccountID,
				Description: tmpl.TemplateName,
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			}
			if debitSide {
				line.Debit = lineAmount
			} else {
				line.Credit = lineAmount
			}
			lines = append(lines, line)
		}
		return nil
	}

	if err := appendSide(tmpl.DebitAccounts, true); err != nil {
		return nil, err
	}
	if err := appendSide(tmpl.CreditAccounts, false); err != nil {
		return nil, err
	}

	if err := ValidateEntryBalance(lines, accountsByID); err != nil {
		return nil, fmt.Errorf("%w: template %s: %v", ErrTemplateUnbalanced, tmpl.TemplateID, err)
	}
	return lines, nil
}

// splitAmount computes one split's line amount, rounded to currency precision.
func splitAmount(split domain.TemplateSplit, amount decimal.Decimal) decimal.Decimal {
	if split.Percentage != nil {
		return amount.Mul(*split.Percentage).Div(hundred).Round(2)
	}
	if split.FixedAmount != nil {
		return *split.FixedAmount
	}
	return decimal.Zero
}
