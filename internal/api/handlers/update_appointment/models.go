package update_appointment

import (
	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	updateAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// SegmentRequest услуга в порядке выполнения
type SegmentRequest struct {
	ServiceID   int64 `json:"serviceId"`
	UseOverride bool  `json:"useOverride,omitempty"`
}

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	CustomerID          int64            `json:"customerId"`
	StylistID           int64            `json:"stylistId"`
	Date                string           `json:"date"`
	StartTime           string           `json:"startTime"`
	Services            []SegmentRequest `json:"services"`
	Notes               string           `json:"notes,omitempty"`
	ContactPhone        *string          `json:"contactPhone,omitempty"`
	ContactEmail        *string          `json:"contactEmail,omitempty"`
	Emergency           bool             `json:"emergency,omitempty"`
	OverrideWorkPattern bool             `json:"overrideWorkPattern,omitempty"`
}

// UpdateAppointmentResponse HTTP response model
type UpdateAppointmentResponse struct {
	Appointment *handlers.AppointmentResponse `json:"appointment"`
	Cost        *handlers.CostResponse        `json:"cost,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID, actorID int64) (*updateAppointment.Request, error) {
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return nil, errInvalidDate
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	segments := make([]validate_booking.SegmentRequest, 0, len(r.Services))
	for _, s := range r.Services {
		segments = append(segments, validate_booking.SegmentRequest{ServiceID: s.ServiceID, UseOverride: s.UseOverride})
	}

	return &updateAppointment.Request{
		AppointmentID:       appointmentID,
		ActorID:             actorID,
		CustomerID:          r.CustomerID,
		StylistID:           r.StylistID,
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
