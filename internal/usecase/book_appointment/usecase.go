package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	validator       Validator
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	validator Validator,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		validator:       validator,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// под advisory-блокировкой дня стилиста, поэтому параллельные записи на один слот
// не могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: customer=%d, stylist=%d, date=%s, time=%s, services=%d",
		req.CustomerID, req.StylistID, req.Date.Format(domain.DateFormat), req.StartTime, len(req.Segments))

	if len(req.Notes) > domain.MaxNotesLength {
		err := &domain.ValidationError{Field: "notes", Reason: "too long"}
		uc.reject(err)
		return nil, err
	}

	bookedBy := req.BookedByID
	if bookedBy == 0 {
		bookedBy = req.CustomerID
	}
	date := calendar.DateOnly(req.Date)

	var (
		result   *domain.Appointment
		warnings []string
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем день стилиста
		if err := uc.appointmentRepo.LockStylistDay(txCtx, req.StylistID, date); err != nil {
			return fmt.Errorf("%w: lock stylist day: %w", ErrInternal, err)
		}

		// 2. Проверяем запись
		res, err := uc.validator.Validate(txCtx, validate_booking.Input{
			CustomerID:          req.CustomerID,
			StylistID:           req.StylistID,
			BookedByID:          bookedBy,
			Date:                date,
			StartTime:           req.StartTime,
			Segments:            req.Segments,
			Emergency:           req.Emergency,
			OverrideWorkPattern: req.OverrideWorkPattern,
		})
		if err != nil {
			return err
		}

		a := &domain.Appointment{
			CustomerID:   req.CustomerID,
			StylistID:    req.StylistID,
			BookedByID:   bookedBy,
			Date:         date,
			StartTime:    req.StartTime,
			EndTime:      res.EndTime,
			Status:       domain.StatusConfirmed,
			Notes:        req.Notes,
			ContactPhone: req.ContactPhone,
			ContactEmail: req.ContactEmail,
			Segments:     res.Segments,
		}
		if err := a.CheckSegments(); err != nil {
			return err
		}

		// 3. Сохраняем запись и сегменты
		created, err := uc.appointmentRepo.Create(txCtx, a)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				return &domain.ConflictError{Resource: domain.EntityStylist, Window: a.Window().String()}
			}
			return fmt.Errorf("%w: create appointment: %w", ErrInternal, err)
		}

		// 4. Первая запись истории статусов
		change := &domain.StatusChange{
			AppointmentID: created.ID,
			Status:        domain.StatusConfirmed,
			Notes:         "booked",
			ChangedBy:     bookedBy,
		}
		if err := uc.appointmentRepo.AddStatusChange(txCtx, change); err != nil {
			return fmt.Errorf("%w: add status change: %w", ErrInternal, err)
		}
		created.History = append(created.History, *change)

		result = created
		warnings = res.Warnings
		return nil
	})
	if err != nil {
		uc.reject(err)
		return nil, err
	}

	uc.metrics.AppointmentBooked(len(result.Segments))
	uc.logger.Info("BookAppointment: created appointment id=%d, stylist=%d, %s %s",
		result.ID, result.StylistID, result.Date.Format(domain.DateFormat), result.Window())

	return &Response{Appointment: result, Warnings: warnings}, nil
}

func (uc *UseCase) reject(err error) {
	kind := domain.ErrorKind(err)
	if kind == "" || kind == domain.KindInvariant {
		uc.logger.Error("BookAppointment: failed: %v", err)
		uc.metrics.BookingRejected("internal")
		return
	}
	uc.logger.Warn("BookAppointment: refused (%s): %v", kind, err)
	uc.metrics.BookingRejected(kind)
}
