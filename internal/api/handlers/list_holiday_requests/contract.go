package list_holiday_requests

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type HolidayService interface {
	ListRequests(ctx context.Context, userID int64, year int) ([]*domain.HolidayRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
