package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// UseCase use case для правки записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	userRepo        UserRepository
	validator       Validator
	costs           CostCalculator
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	userRepo UserRepository,
	validator Validator,
	costs CostCalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		validator:       validator,
		costs:           costs,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute перепроверяет и сохраняет изменённую запись.
// Выполненная запись после правки получает пересчитанную стоимость в той же транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: appointment id=%d by actor=%d, stylist=%d, date=%s, time=%s",
		req.AppointmentID, req.ActorID, req.StylistID, req.Date.Format(domain.DateFormat), req.StartTime)

	if len(req.Notes) > domain.MaxNotesLength {
		return nil, &domain.ValidationError{Field: "notes", Reason: "too long"}
	}

	date := calendar.DateOnly(req.Date)
	resp := &Response{}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Участник и текущая запись (строка блокируется)
		actor, err := uc.userRepo.GetByID(txCtx, req.ActorID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return &domain.MissingError{Entity: domain.EntityUser, ID: req.ActorID}
			}
			return fmt.Errorf("%w: get actor: %w", ErrInternal, err)
		}

		a, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return &domain.MissingError{Entity: domain.EntityAppointment, ID: req.AppointmentID}
			}
			return fmt.Errorf("%w: get appointment: %w", ErrInternal, err)
		}

		// 2. Права и статус
		if a.Status != domain.StatusConfirmed && a.Status != domain.StatusCompleted {
			return &domain.StateError{Entity: domain.EntityAppointment, From: string(a.Status), To: string(a.Status)}
		}
		if err := checkActor(actor, a); err != nil {
			return err
		}

		// 3. Блокируем целевой день стилиста и перепроверяем запись без неё самой
		if err := uc.appointmentRepo.LockStylistDay(txCtx, req.StylistID, date); err != nil {
			return fmt.Errorf("%w: lock stylist day: %w", ErrInternal, err)
		}

		res, err := uc.validator.Validate(txCtx, validate_booking.Input{
			CustomerID:           req.CustomerID,
			StylistID:            req.StylistID,
			BookedByID:           a.BookedByID,
			Date:                 date,
			StartTime:            req.StartTime,
			Segments:             req.Segments,
			Emergency:            req.Emergency,
			OverrideWorkPattern:  req.OverrideWorkPattern,
			AllowPastDate:        date.Equal(calendar.DateOnly(a.Date)),
			ExcludeAppointmentID: a.ID,
		})
		if err != nil {
			return err
		}

		a.CustomerID = req.CustomerID
		a.StylistID = req.StylistID
		a.Date = date
		a.StartTime = req.StartTime
		a.EndTime = res.EndTime
		a.Notes = req.Notes
		a.ContactPhone = req.ContactPhone
		a.ContactEmail = req.ContactEmail
		a.Segments = res.Segments
		if err := a.CheckSegments(); err != nil {
			return err
		}

		// 4. Сохраняем
		if err := uc.appointmentRepo.UpdateSchedule(txCtx, a); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				return &domain.ConflictError{Resource: domain.EntityStylist, Window: a.Window().String()}
			}
			return fmt.Errorf("%w: update appointment: %w", ErrInternal, err)
		}

		// 5. Пересчёт стоимости выполненной записи
		if a.Status == domain.StatusCompleted {
			cost, err := uc.costs.Calculate(txCtx, a)
			if err != nil {
				return err
			}
			resp.Cost = cost
		}

		resp.Appointment = a
		resp.Warnings = res.Warnings
		return nil
	})
	if err != nil {
		kind := domain.ErrorKind(err)
		if kind == "" || kind == domain.KindInvariant {
			uc.logger.Error("UpdateAppointment: appointment id=%d: %v", req.AppointmentID, err)
		} else {
			uc.logger.Warn("UpdateAppointment: appointment id=%d refused (%s): %v", req.AppointmentID, kind, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: appointment id=%d saved as %s %s", resp.Appointment.ID,
		resp.Appointment.Date.Format(domain.DateFormat), resp.Appointment.Window())
	return resp, nil
}

// checkActor: персонал правит любые записи, клиент и оформивший только подтверждённые
func checkActor(actor *domain.User, a *domain.Appointment) error {
	if actor.IsOperational() {
		return nil
	}
	if actor.ID != a.CustomerID && actor.ID != a.BookedByID {
		return &domain.PolicyError{Kind: domain.PolicyForbiddenActor, Detail: "only the customer, the booker or staff may edit"}
	}
	if a.Status == domain.StatusCompleted {
		return &domain.PolicyError{Kind: domain.PolicyForbiddenActor, Detail: "completed appointments are edited by staff"}
	}
	return nil
}
