package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request новое состояние записи. Поля заменяют текущие значения целиком.
type Request struct {
	AppointmentID       int64
	ActorID             int64
	CustomerID          int64
	StylistID           int64
	Date                time.Time
	StartTime           types.TimeString
	Segments            []validate_booking.SegmentRequest
	Notes               string
	ContactPhone        *string
	ContactEmail        *string
	Emergency           bool
	OverrideWorkPattern bool
}

// Response обновлённая запись и предупреждения валидатора
type Response struct {
	Appointment *domain.Appointment
	Cost        *domain.AppointmentCost // пересчитанная стоимость, если запись выполнена
	Warnings    []string
}
