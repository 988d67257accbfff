package get_employment_terms

import "github.com/m04kA/SMC-SalonService/internal/domain"

// EmploymentTermsResponse HTTP модель условий занятости
type EmploymentTermsResponse struct {
	UserID              int64   `json:"userId"`
	Type                string  `json:"employmentType"`
	HourlyRate          *string `json:"hourlyRate,omitempty"`
	BaseSalary          *string `json:"baseSalary,omitempty"`
	CommissionRate      *string `json:"commissionRate,omitempty"`
	BillingMethod       string  `json:"billingMethod,omitempty"`
	JobRole             string  `json:"jobRole,omitempty"`
	StartDate           string  `json:"startDate"`
	EndDate             *string `json:"endDate,omitempty"`
	IsCurrentlyEmployed bool    `json:"isCurrentlyEmployed"`
}

// FromDomain конвертирует условия занятости в HTTP модель
func FromDomain(t *domain.EmploymentTerms, current bool) *EmploymentTermsResponse {
	resp := &EmploymentTermsResponse{
		UserID:              t.UserID,
		Type:                string(t.Type),
		BillingMethod:       t.BillingMethod,
		JobRole:             t.JobRole,
		StartDate:           t.StartDate.Format(domain.DateFormat),
		IsCurrentlyEmployed: current,
	}
	if t.HourlyRate != nil {
		v := t.HourlyRate.StringFixed(2)
		resp.HourlyRate = &v
	}
	if t.BaseSalary != nil {
		v := t.BaseSalary.StringFixed(2)
		resp.BaseSalary = &v
	}
	if t.CommissionRate != nil {
		v := t.CommissionRate.String()
		resp.CommissionRate = &v
	}
	if t.EndDate != nil {
		v := t.EndDate.Format(domain.DateFormat)
		resp.EndDate = &v
	}
	return resp
}
