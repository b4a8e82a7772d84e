package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a transaction. The set is fixed: INCOME marks money
// coming in, the other three are expense buckets.
type Category string

const (
	Income Category = "INCOME"
	Want   Category = "WANT"
	Need   Category = "NEED"
	Saving Category = "SAVING"
)

// Categories lists every valid category.
func Categories() []Category {
	return []Category{Income, Want, Need, Saving}
}

// ParseCategory returns the category matching s, case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Want:
		return Want, nil
	case Need:
		return Need, nil
	case Saving:
		return Saving, nil
	default:
		return "", ErrInvalidCategory
	}
}

// IsExpense reports whether the category counts against spending totals.
func (c Category) IsExpense() bool {
	return c != Income
}

// IsValid reports whether c is one of the four known categories.
func (c Category) IsValid() bool {
	switch c {
	case Income, Want, Need, Saving:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// DescriptionMaxLength caps the free-text description.
const DescriptionMaxLength = 100

// Amount bounds, inclusive on both ends.
var (
	AmountMin = decimal.RequireFromString("0.01")
	AmountMax = decimal.RequireFromString("999999.99")
)

var (
	ErrAmountOutOfRange   = errors.New("amount out of range")
	ErrDescriptionEmpty   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrZeroDate           = errors.New("date cannot be zero")
	ErrEmptyUserID        = errors.New("empty user id")
	ErrEmptyUpdate        = errors.New("no fields to update")
)

// ValidateAmount checks the inclusive bounds 0.01 <= a <= 999999.99.
func ValidateAmount(a decimal.Decimal) error {
	if a.LessThan(AmountMin) || a.GreaterThan(AmountMax) {
		return ErrAmountOutOfRange
	}
	return nil
}

func validateDescription(s string) error {
	if len(strings.TrimSpace(s)) == 0 {
		return ErrDescriptionEmpty
	}
	if len(s) > DescriptionMaxLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Transaction is a single income or expense record owned by one user.
// ID and UserID never change after creation.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	UserID      string          `json:"user_id"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// NewTransaction is the input to a create: a Transaction minus the
// backend-assigned ID and timestamps.
type NewTransaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	UserID      string          `json:"user_id"`
}

func (n NewTransaction) Validate() error {
	if err := validateDescription(n.Description); err != nil {
		return err
	}
	if err := ValidateAmount(n.Amount); err != nil {
		return err
	}
	if !n.Category.IsValid() {
		return ErrInvalidCategory
	}
	if n.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(n.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

// TransactionUpdate carries a partial update. Nil fields are left untouched;
// ID and UserID are not updatable.
type TransactionUpdate struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *Category        `json:"category,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u TransactionUpdate) IsEmpty() bool {
	return u.Description == nil && u.Amount == nil && u.Category == nil && u.Date == nil
}

// Validate checks only the fields that are set.
func (u TransactionUpdate) Validate() error {
	if u.IsEmpty() {
		return ErrEmptyUpdate
	}
	if u.Description != nil {
		if err := validateDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.Amount != nil {
		if err := ValidateAmount(*u.Amount); err != nil {
			return err
		}
	}
	if u.Category != nil && !u.Category.IsValid() {
		return ErrInvalidCategory
	}
	if u.Date != nil && u.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// ApplyTo copies the set fields onto t. ID, UserID and CreatedAt are
// preserved; UpdatedAt is the caller's concern.
func (u TransactionUpdate) ApplyTo(t *Transaction) {
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
}
