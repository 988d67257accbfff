package stylist_earnings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/service/costs"
)

type CostService interface {
	StylistEarnings(ctx context.Context, stylistID int64, from, to time.Time) (*costs.Earnings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
