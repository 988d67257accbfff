package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentType is the compensation regime of a stylist
type EmploymentType string

const (
	EmploymentEmployed     EmploymentType = "employed"
	EmploymentSelfEmployed EmploymentType = "self_employed"
)

// EmploymentTerms holds the rates of a user. Hourly and commission rates are mutually exclusive.
type EmploymentTerms struct {
	ID             int64
	UserID         int64
	Type           EmploymentType
	HourlyRate     *decimal.Decimal
	BaseSalary     *decimal.Decimal // monthly
	CommissionRate *decimal.Decimal // 0..100 %
	BillingMethod  string
	JobRole        string
	StartDate      time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCurrentlyEmployed: start_date <= today <= end_date, or end_date unset
func (e *EmploymentTerms) IsCurrentlyEmployed(today time.Time) bool {
	if today.Before(e.StartDate) {
		return false
	}
	return e.EndDate == nil || !today.After(*e.EndDate)
}

// Method returns the cost calculation method the terms support, or false when rates are missing
func (e *EmploymentTerms) Method() (CalculationMethod, bool) {
	if e == nil {
		return "", false
	}
	switch e.Type {
	case EmploymentEmployed:
		if e.HourlyRate != nil {
			return MethodHourly, true
		}
	case EmploymentSelfEmployed:
		if e.CommissionRate != nil {
			return MethodCommission, true
		}
	}
	return "", false
}

// Validate enforces the per-regime rate rules
func (e *EmploymentTerms) Validate() error {
	var list ErrorList

	switch e.Type {
	case EmploymentEmployed:
		if e.HourlyRate == nil || !e.HourlyRate.IsPositive() {
			list.Add(&ValidationError{Field: "hourly_rate", Reason: "must be greater than 0 for employed"})
		}
		if e.BaseSalary != nil && e.BaseSalary.IsNegative() {
			list.Add(&ValidationError{Field: "base_salary", Reason: "must not be negative"})
		}
		if e.CommissionRate != nil {
			list.Add(&ValidationError{Field: "commission_rate", Reason: "not allowed for employed"})
		}
	case EmploymentSelfEmployed:
		if e.CommissionRate == nil || e.CommissionRate.IsNegative() || e.CommissionRate.GreaterThan(hundred) {
			list.Add(&ValidationError{Field: "commission_rate", Reason: "must be between 0 and 100 for self_employed"})
		}
		if e.HourlyRate != nil || e.BaseSalary != nil {
			list.Add(&ValidationError{Field: "hourly_rate", Reason: "not allowed for self_employed"})
		}
	default:
		list.Add(&ValidationError{Field: "employment_type", Reason: "must be employed or self_employed"})
	}

	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		list.Add(&ValidationError{Field: "end_date", Reason: "must not be before start_date"})
	}

	return list.Err()
}
