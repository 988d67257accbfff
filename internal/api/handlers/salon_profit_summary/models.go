package salon_profit_summary

import (
	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/costs"
)

// ProfitSummaryResponse HTTP response model
type ProfitSummaryResponse struct {
	From             string `json:"from"`
	To               string `json:"to"`
	Revenue          string `json:"revenue"`
	StylistCost      string `json:"stylistCost"`
	Profit           string `json:"profit"`
	MarginPercent    string `json:"marginPercent"`
	AppointmentCount int    `json:"appointmentCount"`
}

// FromSummary конвертирует результат сервиса в HTTP response
func FromSummary(s *costs.ProfitSummary) *ProfitSummaryResponse {
	return &ProfitSummaryResponse{
		From:             s.From.Format(domain.DateFormat),
		To:               s.To.Format(domain.DateFormat),
		Revenue:          handlers.Money(s.Revenue),
		StylistCost:      handlers.Money(s.StylistCost),
		Profit:           handlers.Money(s.Profit),
		MarginPercent:    handlers.Money(s.MarginPercent),
		AppointmentCount: s.AppointmentCount,
	}
}
