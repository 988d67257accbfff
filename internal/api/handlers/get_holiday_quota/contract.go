package get_holiday_quota

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type HolidayService interface {
	Quota(ctx context.Context, userID int64, year int) (*domain.HolidayQuota, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
