package billing

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Repository интерфейс репозитория элементов биллинга
type Repository interface {
	Create(ctx context.Context, b *domain.BillingElement) (*domain.BillingElement, error)
	Update(ctx context.Context, b *domain.BillingElement) error
	ListActive(ctx context.Context) ([]*domain.BillingElement, error)
}

// Metrics интерфейс метрик кэша реестров
type Metrics interface {
	RegistryCacheLookup(registry string, hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
