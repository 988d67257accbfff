package submit_holiday

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/holidays"
)

type HolidayService interface {
	Submit(ctx context.Context, req holidays.SubmitRequest) (*domain.HolidayRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
