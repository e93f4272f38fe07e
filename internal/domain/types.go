package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Bundles exchanged with the cloud backup carry amounts as plain JSON
	// numbers, so decimals must not be quoted on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType encodes the direction of a money movement. Amounts are
// always positive; the type alone carries the sign.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction is an immutable-once-created fact of money movement.
type Transaction struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Icon        string          `json:"icon,omitempty"`
	Description string          `json:"description,omitempty"`
}

// DebtType encodes which way a tracked obligation runs.
type DebtType string

const (
	// Lent means the user handed money out and is owed.
	Lent DebtType = "LENT"
	// Borrowed means the user received money and owes.
	Borrowed DebtType = "BORROWED"
)

// DebtPayment is one installment against a debt. TransactionID links the
// history transaction created for the installment.
type DebtPayment struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	TransactionID string          `json:"transactionId,omitempty"`
}

// Debt tracks an amount owed in one direction between the user and a person.
// PaidAmount always equals the sum of Payments amounts.
type Debt struct {
	ID                   string          `json:"id"`
	Person               string          `json:"person"`
	Amount               decimal.Decimal `json:"amount"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	Type                 DebtType        `json:"type"`
	DueDate              *time.Time      `json:"dueDate,omitempty"`
	Description          string          `json:"description,omitempty"`
	InitialTransactionID string          `json:"initialTransactionId,omitempty"`
	Payments             []DebtPayment   `json:"payments"`
}

// Remaining returns the outstanding balance. It can go negative: overpayment
// is legal and preserved verbatim.
func (d Debt) Remaining() decimal.Decimal {
	return d.Amount.Sub(d.PaidAmount)
}

// QuickAction is a saved transaction template for one-tap re-entry.
type QuickAction struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Icon     string          `json:"icon,omitempty"`
}

// Sheet is a free-form named mapping of cell keys to string values.
type Sheet struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Data         map[string]string `json:"data"`
	LastModified time.Time         `json:"lastModified"`
	Color        string            `json:"color,omitempty"`
}

// SecurityMethod selects the local lock mechanism.
type SecurityMethod string

const (
	MethodPIN      SecurityMethod = "PIN"
	MethodPassword SecurityMethod = "PASSWORD"
	MethodPattern  SecurityMethod = "PATTERN"
)

// SecurityConfig is the local lock configuration. The core only consumes
// the enabled gate; the lock UI itself lives outside this module.
type SecurityConfig struct {
	Enabled bool           `json:"enabled"`
	Method  SecurityMethod `json:"method"`
	Value   string         `json:"value"`
}

// Provider identifies a remote backup service.
type Provider string

const (
	ProviderGitHub  Provider = "GITHUB"
	ProviderJSONBin Provider = "JSONBIN"
	ProviderGCS     Provider = "GCS"
)

// CloudConfig is the durable cloud backup configuration persisted inside the
// user profile. BinID is the gist id, bin id or object generation marker of
// the remote document; empty means no backup exists yet.
type CloudConfig struct {
	Enabled  bool       `json:"enabled"`
	Provider Provider   `json:"provider"`
	APIKey   string     `json:"apiKey"`
	BinID    string     `json:"binId"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}

// UserProfile holds scalar identity and configuration state.
type UserProfile struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	AvatarURL   string          `json:"avatarUrl,omitempty"`
	Currency    string          `json:"currency"`
	Timezone    string          `json:"timezone,omitempty"`
	MonthlyGoal decimal.Decimal `json:"monthlyGoal"`
	Security    SecurityConfig  `json:"security"`
	CloudConfig *CloudConfig    `json:"cloudConfig,omitempty"`
}

// DefaultProfile returns the profile a fresh installation starts with.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:        "Alex Morgan",
		Email:       "alex.morgan@nexo.finance",
		Currency:    "USD",
		Timezone:    "America/New_York",
		MonthlyGoal: decimal.NewFromInt(5000),
		Security: SecurityConfig{
			Enabled: false,
			Method:  MethodPIN,
		},
		CloudConfig: &CloudConfig{
			Enabled:  false,
			Provider: ProviderGitHub,
		},
	}
}

const (
	// DebtsCategory is the reserved category for debt-linked transactions.
	// A transaction in this category is not required to reference a debt;
	// the 1:1 pairing is only enforced in the debt-to-transaction direction.
	DebtsCategory = "deudas"

	// DebtsTitle is the fixed title of debt-linked transactions.
	DebtsTitle = "Deudas"
)
