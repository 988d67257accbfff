package list_appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type AppointmentService interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
