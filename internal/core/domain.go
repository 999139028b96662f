package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"
)

// dateLayout is the wire format for transaction dates, day precision only.
const dateLayout = "2006-01-02"

type (
	TransactionType string

	BudgetPeriod string

	// Date is a calendar date with no time-of-day component.
	Date struct {
		time.Time
	}

	// Transaction is an atomic financial event: a single dated income or
	// expense with an amount and a free-form category.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
	}

	// Budget is a spending ceiling for one category. The period is
	// descriptive only: usage is computed against all-time category spend.
	Budget struct {
		ID       string          `json:"id"`
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
		Period   BudgetPeriod    `json:"period"`
	}

	// FinanceData is the aggregate root owned by the store. Aggregation
	// functions only ever read snapshots of it.
	FinanceData struct {
		Transactions []Transaction `json:"transactions"`
		Budgets      []Budget      `json:"budgets"`
		HasOnboarded bool          `json:"hasOnboarded"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidPeriod = errors.New("invalid budget period")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
)

func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	default:
		return false
	}
}

func (p BudgetPeriod) IsValid() bool {
	switch p {
	case Monthly, Yearly:
		return true
	default:
		return false
	}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler using the "2006-01-02" layout.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return t.Date.Validate()
}

func (b Budget) Validate() error {
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !b.Period.IsValid() {
		return ErrInvalidPeriod
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Clone returns a deep copy, so callers can hand out snapshots without
// exposing the store's backing slices.
func (d FinanceData) Clone() FinanceData {
	out := FinanceData{HasOnboarded: d.HasOnboarded}
	if d.Transactions != nil {
		out.Transactions = append([]Transaction(nil), d.Transactions...)
	}
	if d.Budgets != nil {
		out.Budgets = append([]Budget(nil), d.Budgets...)
	}
	return out
}
