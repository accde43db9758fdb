package accounting

import (
	"testing"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func postableAccount(id, code string) domain.Account {
	return domain.Account{AccountID: id, Code: code, IsActive: true, IsHeader: false}
}

func debitLine(n int, accountID string, amount int64) domain.EntryLine {
	return domain.EntryLine{LineNumber: n, AccountID: accountID, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero}
}

func creditLine(n int, accountID string, amount int64) domain.EntryLine {
	return domain.EntryLine{LineNumber: n, AccountID: accountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)}
}

func TestTotals(t *testing.T) {
	lines := []domain.EntryLine{
		debitLine(1, "a", 70),
		debitLine(2, "b", 30),
		creditLine(3, "c", 100),
	}

	totalDebit, totalCredit := Totals(lines)
	assert.True(t, totalDebit.Equal(decimal.NewFromInt(100)))
	assert.True(t, totalCredit.Equal(decimal.NewFromInt(100)))
}

func TestValidateEntryBalance_Valid(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":   postableAccount("cash", "1010"),
		"income": postableAccount("income", "4100"),
	}
	lines := []domain.EntryLine{
		debitLine(1, "cash", 500),
		creditLine(2, "income", 500),
	}

	assert.NoError(t, ValidateEntryBalance(lines, accounts))
}

func TestValidateEntryBalance_Unbalanced(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":   postableAccount("cash", "1010"),
		"income": postableAccount("income", "4100"),
	}
	lines := []domain.EntryLine{
		debitLine(1, "cash", 500),
		creditLine(2, "income", 400),
	}

	err := ValidateEntryBalance(lines, accounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnbalanced)
	assert.NotErrorIs(t, err, ErrZeroAmount)
}

func TestValidateEntryBalance_ZeroTotal(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":   postableAccount("cash", "1010"),
		"income": postableAccount("income", "4100"),
	}
	lines := []domain.EntryLine{
		{LineNumber: 1, AccountID: "cash"},
		{LineNumber: 2, AccountID: "income"},
	}

	err := ValidateEntryBalance(lines, accounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroAmount)
}

func TestValidateEntryBalance_BothSidesOnOneLine(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash": postableAccount("cash", "1010"),
	}
	lines := []domain.EntryLine{
		{LineNumber: 1, AccountID: "cash", Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
		{LineNumber: 2, AccountID: "cash", Debit: decimal.Zero, Credit: decimal.Zero},
	}

	err := ValidateEntryBalance(lines, accounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLine)
}

func TestValidateEntryBalance_MissingAndNonPostableAccounts(t *testing.T) {
	header := domain.Account{AccountID: "hdr", Code: "1000", IsActive: true, IsHeader: true}
	inactive := domain.Account{AccountID: "old", Code: "1999", IsActive: false}
	accounts := map[string]domain.Account{"hdr": header, "old": inactive}

	lines := []domain.EntryLine{
		debitLine(1, "hdr", 30),     // header account
		debitLine(2, "old", 30),     // inactive account
		debitLine(3, "unknown", 40), // not in directory
		creditLine(4, "", 100),      // no account at all
	}

	err := ValidateEntryBalance(lines, accounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAccount)
}

func TestValidateEntryBalance_ReportsAllViolations(t *testing.T) {
	lines := []domain.EntryLine{
		{LineNumber: 1, AccountID: "", Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(10)},
		{LineNumber: 2, AccountID: ""},
	}

	err := ValidateEntryBalance(lines, map[string]domain.Account{})
	require.Error(t, err)
	// Every check runs; nothing short-circuits on the first failure.
	assert.ErrorIs(t, err, ErrUnbalanced)
	assert.ErrorIs(t, err, ErrInvalidLine)
	assert.ErrorIs(t, err, ErrMissingAccount)
}

func TestExpandTemplate_PercentageSplits(t *testing.T) {
	tmpl := domain.AutoPostingTemplate{
		TemplateID:   "tmpl-1",
		TemplateName: "Rental income distribution",
		DebitAccounts: []domain.TemplateSplit{
			{AccountCode: "1010", Percentage: decimalPtr(decimal.NewFromInt(100))},
		},
		CreditAccounts: []domain.TemplateSplit{
			{AccountCode: "4100", Percentage: decimalPtr(decimal.NewFromInt(70))},
			{AccountCode: "3000", Percentage: decimalPtr(decimal.NewFromInt(30))},
		},
	}
	accounts := map[string]domain.Account{
		"1010": postableAccount("cash", "1010"),
		"4100": postableAccount("income", "4100"),
		"3000": postableAccount("capital", "3000"),
	}

	lines, err := ExpandTemplate(tmpl, decimal.NewFromInt(1000), accounts)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	// Debit splits come first, then credit splits, each in template order.
	assert.Equal(t, "cash", lines[0].AccountID)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "income", lines[1].AccountID)
	assert.True(t, lines[1].Credit.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, "capital", lines[2].AccountID)
	assert.True(t, lines[2].Credit.Equal(decimal.NewFromInt(300)))

	for i, line := range lines {
		assert.Equal(t, i+1, line.LineNumber)
		assert.Equal(t, tmpl.TemplateName, line.Description)
	}
}

func TestExpandTemplate_FixedSplits(t *testing.T) {
	tmpl := domain.AutoPostingTemplate{
		TemplateID: "tmpl-2",
		DebitAccounts: []domain.TemplateSplit{
			{AccountCode: "5100", FixedAmount: decimalPtr(decimal.NewFromInt(250))},
		},
		CreditAccounts: []domain.TemplateSplit{
			{AccountCode: "1010", FixedAmount: decimalPtr(decimal.NewFromInt(250))},
		},
	}
	accounts := map[string]domain.Account{
		"5100": postableAccount("maintenance", "5100"),
		"1010": postableAccount("cash", "1010"),
	}

	lines, err := ExpandTemplate(tmpl, decimal.NewFromInt(250), accounts)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(250)))
	assert.True(t, lines[1].Credit.Equal(decimal.NewFromInt(250)))
}

func TestExpandTemplate_RoundingStaysBalanced(t *testing.T) {
	tmpl := domain.AutoPostingTemplate{
		TemplateID: "tmpl-3",
		DebitAccounts: []domain.TemplateSplit{
			{AccountCode: "1010", Percentage: decimalPtr(decimal.NewFromInt(100))},
		},
		CreditAccounts: []domain.TemplateSplit{
			{AccountCode: "4100", Percentage: decimalPtr(decimal.NewFromInt(50))},
			{AccountCode: "3000", Percentage: decimalPtr(decimal.NewFromInt(50))},
		},
	}
	accounts := map[string]domain.Account{
		"1010": postableAccount("cash", "1010"),
		"4100": postableAccount("income", "4100"),
		"3000": postableAccount("capital", "3000"),
	}

	// 100.01 splits into 50.005 per side, which rounds to 50.01 + 50.01 and
	// no longer matches the 100.01 debit. Honest failure, never coerced.
	_, err := ExpandTemplate(tmpl, decimal.RequireFromString("100.01"), accounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateUnbalanced)
}

func TestExpandTemplate_NonPositiveAmount(t *testing.T) {
	tmpl := domain.AutoPostingTemplate{TemplateID: "tmpl-4"}

	_, err := ExpandTemplate(tmpl, decimal.Zero, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateUnbalanced)
}

func TestExpandTemplate_UnknownAccountCode(t *testing.T) {
	tmpl := domain.AutoPostingTemplate{
		TemplateID: "tmpl-5",
		DebitAccounts: []domain.TemplateSplit{
			{AccountCode: "9999", Percentage: decimalPtr(decimal.NewFromInt(100))},
		},
		CreditAccounts: []domain.TemplateSplit{
			{AccountCode: "4100", Percentage: decimalPtr(decimal.NewFromInt(100))},
		},
	}
	accounts := map[string]domain.Account{
		"4100": postableAccount("income", "4100"),
	}

	_, err := ExpandTemplate(tmpl, decimal.NewFromInt(100), accounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTemplateAccount)
}

func TestExpandTemplate_HeaderAccountCode(t *testing.T) {
	header := domain.Account{AccountID: "hdr", Code: "1000", IsActive: true, IsHeader: true}
	tmpl := domain.AutoPostingTemplate{
		TemplateID: "tmpl-6",
		DebitAccounts: []domain.TemplateSplit{
			{AccountCode: "1000", Percentage: decimalPtr(decimal.NewFromInt(100))},
		},
		CreditAccounts: []domain.TemplateSplit{
			{AccountCode: "4100", Percentage: decimalPtr(decimal.NewFromInt(100))},
		},
	}
	accounts := map[string]domain.Account{
		"1000": header,
		"4100": postableAccount("income", "4100"),
	}

	_, err := ExpandTemplate(tmpl, decimal.NewFromInt(100), accounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTemplateAccount)
}
