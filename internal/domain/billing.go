package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingElement is a named percentage slice of revenue.
// The sum over active elements is informational and may differ from 100.
type BillingElement struct {
	ID         int64
	Name       string
	Percentage decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the percentage range
func (b *BillingElement) Validate() error {
	var list ErrorList
	if b.Name == "" {
		list.Add(&ValidationError{Field: "name", Reason: "required"})
	}
	if b.Percentage.IsNegative() || b.Percentage.GreaterThan(hundred) {
		list.Add(&ValidationError{Field: "percentage", Reason: "must be between 0 and 100"})
	}
	return list.Err()
}
