package domain

// AccountType defines the fundamental accounting type of a ledger account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountNature indicates which side an account normally carries its balance on.
type AccountNature string

const (
	DebitNormal  AccountNature = "DEBIT"
	CreditNormal AccountNature = "CREDIT"
)

// Account represents an entry in the ledger account directory.
// The directory is maintained by administrative configuration and is
// read-only from the posting engine's perspective.
type Account struct {
	AccountID string        `json:"accountID"` // Primary Key (UUID)
	Code      string        `json:"code"`      // Short human-readable code, unique (e.g. "1010")
	Name      string        `json:"name"`
	Type      AccountType   `json:"type"`
	Nature    AccountNature `json:"nature"`
	IsHeader  bool          `json:"isHeader"` // Grouping node; cannot receive postings
	IsActive  bool          `json:"isActive"`
	AuditFields
}

// IsPostable reports whether journal lines may reference this account.
func (a Account) IsPostable() bool {
	return a.IsActive && !a.IsHeader
}
