package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type AppointmentService interface {
	Get(ctx context.Context, id int64) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
