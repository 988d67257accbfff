package holidays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Repository интерфейс репозитория квот и заявок на отпуск
type Repository interface {
	GetQuota(ctx context.Context, userID int64, year int) (*domain.HolidayQuota, error)
	CreateQuota(ctx context.Context, q *domain.HolidayQuota) error
	UpdateQuotaTaken(ctx context.Context, q *domain.HolidayQuota) error
	CreateRequest(ctx context.Context, req *domain.HolidayRequest) error
	GetRequest(ctx context.Context, id int64) (*domain.HolidayRequest, error)
	ListBlocking(ctx context.Context, userID int64, from, to time.Time) ([]*domain.HolidayRequest, error)
	ListByUserYear(ctx context.Context, userID int64, year int) ([]*domain.HolidayRequest, error)
	UpdateDecision(ctx context.Context, req *domain.HolidayRequest) error
}

// WorkPatternRepository интерфейс репозитория рабочих графиков
type WorkPatternRepository interface {
	GetActiveByUser(ctx context.Context, userID int64) (*domain.WorkPattern, error)
	ListActive(ctx context.Context) ([]*domain.WorkPattern, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	HolidayDecision(decision string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
