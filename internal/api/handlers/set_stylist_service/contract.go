package set_stylist_service

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type CatalogService interface {
	SetAllowance(ctx context.Context, a domain.StylistServiceAllowance) error
	SetTiming(ctx context.Context, t domain.StylistServiceTiming) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
