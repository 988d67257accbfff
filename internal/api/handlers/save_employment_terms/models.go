package save_employment_terms

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// SaveTermsRequest HTTP request model
type SaveTermsRequest struct {
	Type           string           `json:"employmentType"`
	HourlyRate     *decimal.Decimal `json:"hourlyRate,omitempty"`
	BaseSalary     *decimal.Decimal `json:"baseSalary,omitempty"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
	BillingMethod  string           `json:"billingMethod,omitempty"`
	JobRole        string           `json:"jobRole,omitempty"`
	StartDate      string           `json:"startDate"`
	EndDate        *string          `json:"endDate,omitempty"`
}

// ToDomain конвертирует запрос в условия занятости
func (r *SaveTermsRequest) ToDomain(userID int64) (*domain.EmploymentTerms, error) {
	start, err := calendar.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	terms := &domain.EmploymentTerms{
		UserID:         userID,
		Type:           domain.EmploymentType(r.Type),
		HourlyRate:     r.HourlyRate,
		BaseSalary:     r.BaseSalary,
		CommissionRate: r.CommissionRate,
		BillingMethod:  r.BillingMethod,
		JobRole:        r.JobRole,
		StartDate:      start,
	}
	if r.EndDate != nil {
		end, err := calendar.ParseDate(*r.EndDate)
		if err != nil {
			return nil, err
		}
		terms.EndDate = &end
	}
	return terms, nil
}
