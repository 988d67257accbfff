package compute_cost

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type CostService interface {
	ComputeCost(ctx context.Context, appointmentID int64) (*domain.AppointmentCost, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
