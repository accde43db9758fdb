package domain

import "github.com/shopspring/decimal"

// minBuilderLines is the smallest line count that can express a debit/credit pair.
const minBuilderLines = 2

// EntryLineField names an editable field on a builder line.
type EntryLineField string

const (
	FieldAccountID   EntryLineField = "accountID"
	FieldDescription EntryLineField = "description"
	FieldDebit       EntryLineField = "debitAmount"
	FieldCredit      EntryLineField = "creditAmount"
)

// EntryTotals holds the running debit/credit sums across builder lines.
type EntryTotals struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// EntryBuilder maintains the ordered, mutable list of candidate lines for a
// journal entry that has not been committed yet. It is scoped to a single
// in-progress edit session and is not safe for concurrent use.
//
// The builder does not auto-clear the opposite amount field when one side is
// set; callers zero the credit side when setting a debit and vice versa.
type EntryBuilder struct {
	EntryNumber string      // Provisional, allocated at preparation time
	lines       []EntryLine
}

// NewEntryBuilder returns a builder seeded with two empty lines, the minimum
// meaningful double-entry shape.
func NewEntryBuilder(entryNumber string) *EntryBuilder {
	b := &EntryBuilder{EntryNumber: entryNumber}
	b.Reset()
	return b
}

// AddLine appends a new empty line and returns its index.
func (b *EntryBuilder) AddLine() int {
	b.lines = append(b.lines, emptyLine(len(b.lines)+1))
	return len(b.lines) - 1
}

// RemoveLine removes the line at index. It is a no-op when the index is out
// of range or removal would drop the builder below two lines.
func (b *EntryBuilder) RemoveLine(index int) {
	if index < 0 || index >= len(b.lines) || len(b.lines) <= minBuilderLines {
		return
	}
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
	b.renumber()
}

// UpdateLine replaces a single field on the line at index. Out-of-range
// indexes and unknown fields are ignored.
func (b *EntryBuilder) UpdateLine(index int, field EntryLineField, value any) {
	if index < 0 || index >= len(b.lines) {
		return
	}
	switch field {
	case FieldAccountID:
		if v, ok := value.(string); ok {
			b.lines[index].AccountID = v
		}
	case FieldDescription:
		if v, ok := value.(string); ok {
			b.lines[index].Description = v
		}
	case FieldDebit:
		if v, ok := value.(decimal.Decimal); ok {
			b.lines[index].Debit = v
		}
	case FieldCredit:
		if v, ok := value.(decimal.Decimal); ok {
			b.lines[index].Credit = v
		}
	}
}

// Totals returns the running debit and credit sums. Line counts are small
// (typically under 20), so the sums are recomputed on every call.
func (b *EntryBuilder) Totals() EntryTotals {
	totals := EntryTotals{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, line := range b.lines {
		totals.TotalDebit = totals.TotalDebit.Add(line.Debit)
		totals.TotalCredit = totals.TotalCredit.Add(line.Credit)
	}
	return totals
}

// Lines returns a copy of the candidate lines in builder order.
func (b *EntryBuilder) Lines() []EntryLine {
	out := make([]EntryLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the current line count.
func (b *EntryBuilder) Len() int {
	return len(b.lines)
}

// Reset restores the builder to its initial two-empty-line state.
func (b *EntryBuilder) Reset() {
	b.lines = []EntryLine{emptyLine(1), emptyLine(2)}
}

func (b *EntryBuilder) renumber() {
	for i := range b.lines {
		b.lines[i].LineNumber = i + 1
	}
}

func emptyLine(lineNumber int) EntryLine {
	return EntryLine{
		LineNumber: lineNumber,
		Debit:      decimal.Zero,
		Credit:     decimal.Zero,
	}
}
