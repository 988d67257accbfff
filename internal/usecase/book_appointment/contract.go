package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockStylistDay(ctx context.Context, stylistID int64, date time.Time) error
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	AddStatusChange(ctx context.Context, change *domain.StatusChange) error
}

// Validator интерфейс проверки допустимости записи
type Validator interface {
	Validate(ctx context.Context, in validate_booking.Input) (*validate_booking.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	AppointmentBooked(segments int)
	BookingRejected(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
