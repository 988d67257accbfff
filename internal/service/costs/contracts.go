package costs

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс чтения записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListCompletedWithoutCost(ctx context.Context, limit uint64) ([]int64, error)
}

// EmploymentRepository интерфейс репозитория условий занятости
type EmploymentRepository interface {
	GetByUser(ctx context.Context, userID int64) (*domain.EmploymentTerms, error)
}

// BillingElements интерфейс реестра элементов биллинга
type BillingElements interface {
	ListActive(ctx context.Context) ([]*domain.BillingElement, error)
}

// CostRepository интерфейс репозитория расчётов стоимости
type CostRepository interface {
	Upsert(ctx context.Context, c *domain.AppointmentCost) error
	GetByAppointment(ctx context.Context, appointmentID int64) (*domain.AppointmentCost, error)
	ListForReport(ctx context.Context, filter domain.CostFilter) ([]domain.CostReportRow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	CostCalculated(method string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
