package get_work_pattern

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type WorkPatternService interface {
	Active(ctx context.Context, userID int64) (*domain.WorkPattern, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
