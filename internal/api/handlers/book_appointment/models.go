package book_appointment

import (
	bookAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// SegmentRequest услуга в порядке выполнения
type SegmentRequest struct {
	ServiceID   int64 `json:"serviceId"`
	UseOverride bool  `json:"useOverride,omitempty"`
}

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	CustomerID          int64            `json:"customerId"`
	StylistID           int64            `json:"stylistId"`
	Date                string           `json:"date"`      // "2026-10-19"
	StartTime           string           `json:"startTime"` // "10:00"
	Services            []SegmentRequest `json:"services"`
	Notes               string           `json:"notes,omitempty"`
	ContactPhone        *string          `json:"contactPhone,omitempty"`
	ContactEmail        *string          `json:"contactEmail,omitempty"`
	Emergency           bool             `json:"emergency,omitempty"`
	OverrideWorkPattern bool             `json:"overrideWorkPattern,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case; bookedBy - пользователь из заголовка
func (r *BookAppointmentRequest) ToUseCaseRequest(bookedBy int64) (*bookAppointment.Request, error) {
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return nil, errInvalidDate
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	customerID := r.CustomerID
	if customerID == 0 {
		customerID = bookedBy
	}

	segments := make([]validate_booking.SegmentRequest, 0, len(r.Services))
	for _, s := range r.Services {
		segments = append(segments, validate_booking.SegmentRequest{ServiceID: s.ServiceID, UseOverride: s.UseOverride})
	}

	return &bookAppointment.Request{
		CustomerID:          customerID,
		StylistID:           r.StylistID,
		BookedByID:          bookedBy,
		Date:                date,
		StartTime:           startTime,
		Segments:            segments,
		Notes:               r.Notes,
		ContactPhone:        r.ContactPhone,
		ContactEmail:        r.ContactEmail,
		Emergency:           r.Emergency,
		OverrideWorkPattern: r.OverrideWorkPattern,
	}, nil
}
