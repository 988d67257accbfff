package salonhours

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Repository интерфейс репозитория часов работы салона
type Repository interface {
	Get(ctx context.Context) (*domain.SalonHours, error)
	Upsert(ctx context.Context, hours *domain.SalonHours) error
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
