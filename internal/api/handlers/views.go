package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Money форматирует денежную сумму с двумя знаками
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func moneyPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := Money(*d)
	return &s
}

// SegmentResponse услуга в составе записи
type SegmentResponse struct {
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	Order           int    `json:"order"`
	DurationMinutes int    `json:"durationMinutes"`
	WaitingMinutes  int    `json:"waitingMinutes"`
	Price           string `json:"price"`
}

// StatusChangeResponse запись истории статусов
type StatusChangeResponse struct {
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	ChangedBy int64  `json:"changedBy"`
	ChangedAt string `json:"changedAt"`
}

// AppointmentResponse запись в ответе API
type AppointmentResponse struct {
	ID           int64                  `json:"id"`
	CustomerID   int64                  `json:"customerId"`
	StylistID    int64                  `json:"stylistId"`
	BookedByID   int64                  `json:"bookedById"`
	Date         string                 `json:"date"`
	StartTime    string                 `json:"startTime"`
	EndTime      string                 `json:"endTime"`
	Status       string                 `json:"status"`
	Notes        string                 `json:"notes,omitempty"`
	ContactPhone *string                `json:"contactPhone,omitempty"`
	ContactEmail *string                `json:"contactEmail,omitempty"`
	Revenue      string                 `json:"revenue"`
	Segments     []SegmentResponse      `json:"segments"`
	History      []StatusChangeResponse `json:"history,omitempty"`
	Warnings     []string               `json:"warnings,omitempty"`
}

// NewAppointmentResponse конвертирует запись в модель ответа
func NewAppointmentResponse(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		StylistID:    a.StylistID,
		BookedByID:   a.BookedByID,
		Date:         a.Date.Format(domain.DateFormat),
		StartTime:    a.StartTime.String(),
		EndTime:      a.EndTime.String(),
		Status:       string(a.Status),
		Notes:        a.Notes,
		ContactPhone: a.ContactPhone,
		ContactEmail: a.ContactEmail,
		Revenue:      Money(a.Revenue()),
		Segments:     make([]SegmentResponse, 0, len(a.Segments)),
	}
	for _, s := range a.Segments {
		resp.Segments = append(resp.Segments, SegmentResponse{
			ServiceID:       s.ServiceID,
			ServiceName:     s.ServiceName,
			Order:           s.Order,
			DurationMinutes: s.DurationMinutes,
			WaitingMinutes:  s.WaitingMinutes,
			Price:           Money(s.Price),
		})
	}
	for _, h := range a.History {
		resp.History = append(resp.History, StatusChangeResponse{
			Status:    string(h.Status),
			Notes:     h.Notes,
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt.Format(time.RFC3339),
		})
	}
	return resp
}

// CostResponse расчёт стоимости записи
type CostResponse struct {
	AppointmentID          int64                                 `json:"appointmentId"`
	ServiceRevenue         string                                `json:"serviceRevenue"`
	StylistCost            string                                `json:"stylistCost"`
	SalonProfit            string                                `json:"salonProfit"`
	CalculationMethod      string                                `json:"calculationMethod"`
	HoursWorked            *string                               `json:"hoursWorked,omitempty"`
	CommissionAmount       *string                               `json:"commissionAmount,omitempty"`
	CommissionBreakdown    *domain.CommissionBreakdown           `json:"commissionBreakdown,omitempty"`
	BillingElementsApplied map[string]domain.BillingElementShare `json:"billingElementsApplied,omitempty"`
	BillingMethod          *string                               `json:"billingMethod,omitempty"`
	CalculatedAt           string                                `json:"calculatedAt,omitempty"`
}

// NewCostResponse конвертирует расчёт в модель ответа
func NewCostResponse(c *domain.AppointmentCost) *CostResponse {
	resp := &CostResponse{
		AppointmentID:          c.AppointmentID,
		ServiceRevenue:         Money(c.ServiceRevenue),
		StylistCost:            Money(c.StylistCost),
		SalonProfit:            Money(c.SalonProfit),
		CalculationMethod:      string(c.Method),
		HoursWorked:            moneyPtr(c.HoursWorked),
		CommissionAmount:       moneyPtr(c.CommissionAmount),
		CommissionBreakdown:    c.CommissionBreakdown,
		BillingElementsApplied: c.BillingElementsApplied,
		BillingMethod:          c.BillingMethod,
	}
	if !c.CalculatedAt.IsZero() {
		resp.CalculatedAt = c.CalculatedAt.Format(time.RFC3339)
	}
	return resp
}

// HolidayRequestResponse заявка на отпуск
type HolidayRequestResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	WorkingDays   int     `json:"workingDays"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes,omitempty"`
	DecisionNotes string  `json:"decisionNotes,omitempty"`
	ApprovedBy    *int64  `json:"approvedBy,omitempty"`
	DecidedAt     *string `json:"decidedAt,omitempty"`
}

// NewHolidayRequestResponse конвертирует заявку в модель ответа
func NewHolidayRequestResponse(r *domain.HolidayRequest) *HolidayRequestResponse {
	resp := &HolidayRequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		StartDate:     r.StartDate.Format(domain.DateFormat),
		EndDate:       r.EndDate.Format(domain.DateFormat),
		WorkingDays:   r.WorkingDays,
		Status:        string(r.Status),
		Notes:         r.Notes,
		DecisionNotes: r.DecisionNotes,
		ApprovedBy:    r.ApprovedBy,
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	WaitingMinutes  *int   `json:"waitingMinutes,omitempty"`
	Price           string `json:"price"`
	IsActive        bool   `json:"isActive"`
}

// NewServiceResponse конвертирует услугу в модель ответа
func NewServiceResponse(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		WaitingMinutes:  s.WaitingMinutes,
		Price:           Money(s.Price),
		IsActive:        s.IsActive,
	}
}
