package create_work_pattern

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type WorkPatternService interface {
	Create(ctx context.Context, p *domain.WorkPattern) (*domain.WorkPattern, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
