package scheduler

import (
	"context"
	"time"
)

type HolidayService interface {
	EnsureQuotas(ctx context.Context, year int) (int, error)
}

type CostService interface {
	Backfill(ctx context.Context, limit uint64) (int, error)
}

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
