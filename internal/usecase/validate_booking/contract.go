package validate_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// CatalogRepository интерфейс каталога услуг и политик стилистов
type CatalogRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error)
	ListActive(ctx context.Context) ([]*domain.Service, error)
	ListAllowances(ctx context.Context, stylistID int64) ([]domain.StylistServiceAllowance, error)
	ListTimings(ctx context.Context, stylistID int64) (map[int64]*domain.StylistServiceTiming, error)
}

// SalonHoursProvider интерфейс реестра часов работы салона
type SalonHoursProvider interface {
	Get(ctx context.Context) (*domain.SalonHours, error)
}

// WorkPatternRepository интерфейс репозитория рабочих графиков
type WorkPatternRepository interface {
	GetActiveByUser(ctx context.Context, userID int64) (*domain.WorkPattern, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListBlocking(ctx context.Context, stylistID int64, date time.Time, excludeID int64) ([]*domain.Appointment, error)
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
