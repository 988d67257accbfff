package commission_summary

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/service/costs"
)

type CostService interface {
	CommissionSummary(ctx context.Context, from, to time.Time) (*costs.CommissionSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
