package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DateLayout is the only accepted transaction date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Transaction is one dated, categorized, signed monetary entry.
// Positive amounts are income, negative amounts are expenses.
// Field names and types match the persisted JSON document.
type Transaction struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Sentinel validation failures. They are matched with errors.Is; callers
// get them wrapped in a fresh *ValidationError.
var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

// ValidationError reports user input that cannot become a Transaction.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(sentinel error) error {
	return &ValidationError{Err: sentinel}
}

// NewTransaction validates raw user input and builds a Transaction.
// The date is checked before the amount, so a request with both wrong
// reports ErrInvalidDate.
func NewTransaction(date, category, amount, description string) (Transaction, error) {
	if _, err := ParseDate(date); err != nil {
		return Transaction{}, err
	}
	value, err := ParseAmount(amount)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		Date:        date,
		Category:    CapitalizeCategory(category),
		Amount:      value,
		Description: description,
	}, nil
}

// ParseDate parses a YYYY-MM-DD string. Any other layout, including a
// different separator or missing zero padding, is ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalid(ErrInvalidDate)
	}
	return t, nil
}

// CapitalizeCategory upper-cases the first letter and lower-cases the rest:
// "food" and "FOOD" both become "Food".
func CapitalizeCategory(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// MonthKey returns the zero-padded YYYY-MM bucket of a transaction.
// Dates that do not parse (only possible in hand-edited data files) fall
// back to their first seven characters.
func (t Transaction) MonthKey() string {
	d, err := ParseDate(t.Date)
	if err != nil {
		if len(t.Date) >= 7 {
			return t.Date[:7]
		}
		return t.Date
	}
	return monthKey(d.Year(), d.Month())
}

// IsIncome reports whether the transaction counts as income. Zero counts as
// an expense of nothing.
func (t Transaction) IsIncome() bool {
	return t.Amount > 0
}
