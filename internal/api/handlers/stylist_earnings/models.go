package stylist_earnings

import (
	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/costs"
)

// EarningsResponse HTTP response model
type EarningsResponse struct {
	StylistID        int64  `json:"stylistId"`
	From             string `json:"from"`
	To               string `json:"to"`
	TotalEarnings    string `json:"totalEarnings"`
	TotalHours       string `json:"totalHours"`
	AppointmentCount int    `json:"appointmentCount"`
}

// FromEarnings конвертирует результат сервиса в HTTP response
func FromEarnings(e *costs.Earnings) *EarningsResponse {
	return &EarningsResponse{
		StylistID:        e.StylistID,
		From:             e.From.Format(domain.DateFormat),
		To:               e.To.Format(domain.DateFormat),
		TotalEarnings:    handlers.Money(e.TotalEarnings),
		TotalHours:       handlers.Money(e.TotalHours),
		AppointmentCount: e.AppointmentCount,
	}
}
