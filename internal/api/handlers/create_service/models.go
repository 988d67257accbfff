package create_service

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ServiceRequest HTTP request model
type ServiceRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	WaitingMinutes  *int   `json:"waitingMinutes,omitempty"`
	Price           string `json:"price"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

// ToDomain конвертирует запрос в услугу; новая услуга по умолчанию активна
func (r *ServiceRequest) ToDomain() (*domain.Service, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return nil, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		WaitingMinutes:  r.WaitingMinutes,
		Price:           price,
		IsActive:        active,
	}, nil
}
