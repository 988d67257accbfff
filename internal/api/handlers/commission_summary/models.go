package commission_summary

import (
	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/costs"
)

// StylistCommissionResponse комиссия одного стилиста
type StylistCommissionResponse struct {
	StylistID        int64  `json:"stylistId"`
	Revenue          string `json:"revenue"`
	Commission       string `json:"commission"`
	SalonPortion     string `json:"salonPortion"`
	AppointmentCount int    `json:"appointmentCount"`
}

// CommissionSummaryResponse HTTP response model
type CommissionSummaryResponse struct {
	From             string                      `json:"from"`
	To               string                      `json:"to"`
	Revenue          string                      `json:"revenue"`
	Commission       string                      `json:"commission"`
	SalonPortion     string                      `json:"salonPortion"`
	AppointmentCount int                         `json:"appointmentCount"`
	ByStylist        []StylistCommissionResponse `json:"byStylist"`
}

// FromSummary конвертирует результат сервиса в HTTP response
func FromSummary(s *costs.CommissionSummary) *CommissionSummaryResponse {
	resp := &CommissionSummaryResponse{
		From:             s.From.Format(domain.DateFormat),
		To:               s.To.Format(domain.DateFormat),
		Revenue:          handlers.Money(s.Revenue),
		Commission:       handlers.Money(s.Commission),
		SalonPortion:     handlers.Money(s.SalonPortion),
		AppointmentCount: s.AppointmentCount,
		ByStylist:        make([]StylistCommissionResponse, 0, len(s.ByStylist)),
	}
	for _, c := range s.ByStylist {
		resp.ByStylist = append(resp.ByStylist, StylistCommissionResponse{
			StylistID:        c.StylistID,
			Revenue:          handlers.Money(c.Revenue),
			Commission:       handlers.Money(c.Commission),
			SalonPortion:     handlers.Money(c.SalonPortion),
			AppointmentCount: c.AppointmentCount,
		})
	}
	return resp
}
