package create_billing_element

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type BillingService interface {
	Create(ctx context.Context, b *domain.BillingElement) (*domain.BillingElement, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
