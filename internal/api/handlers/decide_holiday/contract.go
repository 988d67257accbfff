package decide_holiday

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/holidays"
)

type HolidayService interface {
	Decide(ctx context.Context, req holidays.DecideRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
