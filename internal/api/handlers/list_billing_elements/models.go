package list_billing_elements

import "github.com/m04kA/SMC-SalonService/internal/domain"

// BillingElementResponse HTTP модель статьи распределения выручки
type BillingElementResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Percentage string `json:"percentage"`
	IsActive   bool   `json:"isActive"`
}

// FromDomain конвертирует статью в HTTP модель
func FromDomain(b *domain.BillingElement) *BillingElementResponse {
	return &BillingElementResponse{
		ID:         b.ID,
		Name:       b.Name,
		Percentage: b.Percentage.String(),
		IsActive:   b.IsActive,
	}
}
