package create_billing_element

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// BillingElementRequest HTTP request model (используется и для обновления)
type BillingElementRequest struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	IsActive   *bool           `json:"isActive,omitempty"`
}

// ToDomain конвертирует запрос в статью; по умолчанию статья активна
func (r *BillingElementRequest) ToDomain() *domain.BillingElement {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.BillingElement{
		Name:       r.Name,
		Percentage: r.Percentage,
		IsActive:   active,
	}
}
