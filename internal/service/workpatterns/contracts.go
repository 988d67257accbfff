package workpatterns

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Repository интерфейс репозитория рабочих графиков
type Repository interface {
	Create(ctx context.Context, p *domain.WorkPattern) (*domain.WorkPattern, error)
	GetActiveByUser(ctx context.Context, userID int64) (*domain.WorkPattern, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
