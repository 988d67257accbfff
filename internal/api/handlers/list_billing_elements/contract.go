package list_billing_elements

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type BillingService interface {
	ListActive(ctx context.Context) ([]*domain.BillingElement, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
