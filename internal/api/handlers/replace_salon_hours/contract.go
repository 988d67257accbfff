package replace_salon_hours

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type SalonHoursService interface {
	Replace(ctx context.Context, hours *domain.SalonHours) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
