package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Repository интерфейс репозитория каталога услуг и политик стилистов
type Repository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context) ([]*domain.Service, error)
	IsReferenced(ctx context.Context, id int64) (bool, error)
	ListAllowances(ctx context.Context, stylistID int64) ([]domain.StylistServiceAllowance, error)
	UpsertAllowance(ctx context.Context, a domain.StylistServiceAllowance) error
	ListTimings(ctx context.Context, stylistID int64) (map[int64]*domain.StylistServiceTiming, error)
	UpsertTiming(ctx context.Context, t domain.StylistServiceTiming) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик кэша
type Metrics interface {
	RegistryCacheLookup(registry string, hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
