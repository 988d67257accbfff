package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// Service хранилище записей: чтение, смена статусов и отмена
type Service struct {
	repo         Repository
	userRepo     UserRepository
	costs        CostCalculator
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	repo Repository,
	userRepo UserRepository,
	costs CostCalculator,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		userRepo:     userRepo,
		costs:        costs,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Get возвращает запись с услугами и историей статусов
func (s *Service) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Get: appointment id=%d not found", id)
			return nil, &domain.MissingError{Entity: domain.EntityAppointment, ID: id}
		}
		s.logger.Error("Get: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}
	return a, nil
}

// List возвращает записи по фильтру, упорядоченные по дате и времени начала
func (s *Service) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, &domain.ValidationError{Field: "date_to", Reason: "must not be before date_from"}
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return list, nil
}

// UpdateStatus переводит запись в новый статус по таблице переходов и пишет историю.
// Переход в completed (в том числе повторный) пересчитывает стоимость.
func (s *Service) UpdateStatus(ctx context.Context, req UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: appointment id=%d -> %s by actor=%d", req.AppointmentID, req.Status, req.ActorID)

	if len(req.Notes) > domain.MaxNotesLength {
		return &domain.ValidationError{Field: "notes", Reason: "too long"}
	}

	var from domain.AppointmentStatus
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		actor, err := s.getUser(txCtx, req.ActorID)
		if err != nil {
			return err
		}

		a, err := s.Get(txCtx, req.AppointmentID)
		if err != nil {
			return err
		}

		if err := domain.CheckTransition(a.Status, req.Status, actor.MaxLevel()); err != nil {
			return err
		}

		from = a.Status
		if err := s.applyStatus(txCtx, a, req.Status, req.ActorID, req.Notes); err != nil {
			return err
		}

		if a.Status == domain.StatusCompleted {
			if _, err := s.costs.Calculate(txCtx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure("UpdateStatus", req.AppointmentID, err)
		return err
	}

	s.metrics.StatusTransition(string(from), string(req.Status))
	s.logger.Info("UpdateStatus: appointment id=%d moved %s -> %s", req.AppointmentID, from, req.Status)
	return nil
}

// Cancel отменяет запись. Прошедшие и уже отменённые записи отменить нельзя.
// Расчёт стоимости при отмене сохраняется.
func (s *Service) Cancel(ctx context.Context, appointmentID, actorID int64) error {
	s.logger.Info("Cancel: appointment id=%d by actor=%d", appointmentID, actorID)

	today := calendar.Today(s.timeProvider.Now(), s.location)

	var from domain.AppointmentStatus
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		actor, err := s.getUser(txCtx, actorID)
		if err != nil {
			return err
		}

		a, err := s.Get(txCtx, appointmentID)
		if err != nil {
			return err
		}

		if a.Status == domain.StatusCancelled {
			return &domain.StateError{Entity: domain.EntityAppointment, From: string(a.Status), To: string(domain.StatusCancelled)}
		}
		if a.Date.Before(today) {
			return &domain.PolicyError{Kind: domain.PolicyAppointmentInPast, Detail: a.Date.Format(domain.DateFormat)}
		}
		if !actor.IsOperational() && actor.ID != a.CustomerID && actor.ID != a.BookedByID {
			return &domain.PolicyError{Kind: domain.PolicyForbiddenActor, Detail: "only the customer, the booker or staff may cancel"}
		}
		if err := domain.CheckTransition(a.Status, domain.StatusCancelled, actor.MaxLevel()); err != nil {
			return err
		}

		from = a.Status
		return s.applyStatus(txCtx, a, domain.StatusCancelled, actorID, "")
	})
	if err != nil {
		s.logFailure("Cancel", appointmentID, err)
		return err
	}

	s.metrics.StatusTransition(string(from), string(domain.StatusCancelled))
	s.logger.Info("Cancel: appointment id=%d cancelled", appointmentID)
	return nil
}

func (s *Service) applyStatus(ctx context.Context, a *domain.Appointment, status domain.AppointmentStatus, actorID int64, notes string) error {
	if err := s.repo.UpdateStatus(ctx, a.ID, status); err != nil {
		return fmt.Errorf("%w: update status: %w", ErrInternal, err)
	}

	change := &domain.StatusChange{
		AppointmentID: a.ID,
		Status:        status,
		Notes:         notes,
		ChangedBy:     actorID,
	}
	if err := s.repo.AddStatusChange(ctx, change); err != nil {
		return fmt.Errorf("%w: add status change: %w", ErrInternal, err)
	}

	a.Status = status
	a.History = append(a.History, *change)
	return nil
}

func (s *Service) getUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, &domain.MissingError{Entity: domain.EntityUser, ID: id}
		}
		return nil, fmt.Errorf("%w: get user: %w", ErrInternal, err)
	}
	return u, nil
}

func (s *Service) logFailure(op string, appointmentID int64, err error) {
	if domain.ErrorKind(err) == "" || domain.ErrorKind(err) == domain.KindInvariant {
		s.logger.Error("%s: appointment id=%d: %v", op, appointmentID, err)
		return
	}
	s.logger.Warn("%s: appointment id=%d refused: %v", op, appointmentID, err)
}
