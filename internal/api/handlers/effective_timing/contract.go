package effective_timing

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type CatalogService interface {
	EffectiveTiming(ctx context.Context, stylistID, serviceID int64, useOverride bool) (domain.Timing, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
