package salon_profit_summary

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/service/costs"
)

type CostService interface {
	SalonProfit(ctx context.Context, from, to time.Time) (*costs.ProfitSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
