package update_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	LockStylistDay(ctx context.Context, stylistID int64, date time.Time) error
	UpdateSchedule(ctx context.Context, a *domain.Appointment) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Validator интерфейс проверки допустимости записи
type Validator interface {
	Validate(ctx context.Context, in validate_booking.Input) (*validate_booking.Result, error)
}

// CostCalculator интерфейс движка расчёта стоимости
type CostCalculator interface {
	Calculate(ctx context.Context, a *domain.Appointment) (*domain.AppointmentCost, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
