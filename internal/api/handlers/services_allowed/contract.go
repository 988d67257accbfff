package services_allowed

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type CatalogService interface {
	ServicesAllowedFor(ctx context.Context, stylistID int64) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
