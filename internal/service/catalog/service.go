package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
)

const registryName = "allowed_services"

// Service каталог услуг и политика "стилист-услуга".
// Списки доступных стилисту услуг кэшируются по ID стилиста.
type Service struct {
	repo      Repository
	txManager TransactionManager
	allowed   *expirable.LRU[int64, []*domain.Service]
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo Repository, txManager TransactionManager, cacheSize int, ttl time.Duration, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		allowed:   expirable.NewLRU[int64, []*domain.Service](cacheSize, nil, ttl),
		metrics:   metrics,
		logger:    logger,
	}
}

// Create добавляет услугу в каталог
func (s *Service) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	s.logger.Info("Create: creating service name=%q, duration=%d", svc.Name, svc.DurationMinutes)

	if err := svc.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.allowed.Purge()
	s.logger.Info("Create: service id=%d created", created.ID)
	return created, nil
}

// Update изменяет услугу. Если на услугу ссылаются записи, можно менять только
// описание и флаг активности.
func (s *Service) Update(ctx context.Context, svc *domain.Service) error {
	s.logger.Info("Update: updating service id=%d", svc.ID)

	if err := svc.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", svc.ID, err)
		return err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetByID(txCtx, svc.ID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				s.logger.Warn("Update: service id=%d not found", svc.ID)
				return &domain.MissingError{Entity: domain.EntityService, ID: svc.ID}
			}
			s.logger.Error("Update: repository error for service id=%d: %v", svc.ID, err)
			return fmt.Errorf("%w: Update - get service: %w", ErrInternal, err)
		}

		if changesDefinition(current, svc) {
			referenced, err := s.repo.IsReferenced(txCtx, svc.ID)
			if err != nil {
				s.logger.Error("Update: failed to check references for service id=%d: %v", svc.ID, err)
				return fmt.Errorf("%w: Update - check references: %w", ErrInternal, err)
			}
			if referenced {
				s.logger.Warn("Update: service id=%d is referenced by appointments", svc.ID)
				return &domain.PolicyError{
					Kind:   domain.PolicyServiceReferenced,
					Detail: "only description and active flag can change once appointments reference the service",
				}
			}
		}

		if err := s.repo.Update(txCtx, svc); err != nil {
			s.logger.Error("Update: repository error for service id=%d: %v", svc.ID, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Кэш сбрасывается только после коммита
	s.allowed.Purge()
	s.logger.Info("Update: service id=%d updated", svc.ID)
	return nil
}

func changesDefinition(current, next *domain.Service) bool {
	if current.Name != next.Name || current.DurationMinutes != next.DurationMinutes {
		return true
	}
	if !current.Price.Equal(next.Price) {
		return true
	}
	switch {
	case current.WaitingMinutes == nil && next.WaitingMinutes == nil:
		return false
	case current.WaitingMinutes == nil || next.WaitingMinutes == nil:
		return true
	}
	return *current.WaitingMinutes != *next.WaitingMinutes
}

// ServicesAllowedFor возвращает активные услуги, доступные стилисту.
// Без записей допуска стилисту доступны все активные услуги.
func (s *Service) ServicesAllowedFor(ctx context.Context, stylistID int64) ([]*domain.Service, error) {
	if services, ok := s.allowed.Get(stylistID); ok {
		s.metrics.RegistryCacheLookup(registryName, true)
		return services, nil
	}
	s.metrics.RegistryCacheLookup(registryName, false)

	active, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ServicesAllowedFor: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: ServicesAllowedFor - list services: %w", ErrInternal, err)
	}

	allowances, err := s.repo.ListAllowances(ctx, stylistID)
	if err != nil {
		s.logger.Error("ServicesAllowedFor: failed to list allowances for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: ServicesAllowedFor - list allowances: %w", ErrInternal, err)
	}

	services := domain.AllowedServices(active, allowances)
	s.logger.Info("ServicesAllowedFor: stylist=%d may perform %d of %d services", stylistID, len(services), len(active))
	s.allowed.Add(stylistID, services)
	return services, nil
}

// SetAllowance разрешает или запрещает стилисту услугу
func (s *Service) SetAllowance(ctx context.Context, a domain.StylistServiceAllowance) error {
	s.logger.Info("SetAllowance: stylist=%d, service=%d, allowed=%t", a.StylistID, a.ServiceID, a.IsAllowed)

	if err := s.repo.UpsertAllowance(ctx, a); err != nil {
		s.logger.Error("SetAllowance: repository error: %v", err)
		return fmt.Errorf("%w: SetAllowance - repository error: %w", ErrInternal, err)
	}
	s.allowed.Remove(a.StylistID)
	return nil
}

// SetTiming сохраняет персональную длительность услуги для стилиста
func (s *Service) SetTiming(ctx context.Context, t domain.StylistServiceTiming) error {
	s.logger.Info("SetTiming: stylist=%d, service=%d, active=%t", t.StylistID, t.ServiceID, t.IsActive)

	var list domain.ErrorList
	if d := t.CustomDurationMinutes; d != nil && (*d < domain.MinServiceDuration || *d > domain.MaxServiceDuration) {
		list.Add(&domain.ValidationError{Field: "custom_duration", Reason: "must be between 1 and 480 minutes"})
	}
	if w := t.CustomWaitingMinutes; w != nil && (*w < domain.MinWaitingTime || *w > domain.MaxWaitingTime) {
		list.Add(&domain.ValidationError{Field: "custom_waiting_time", Reason: "must be between 0 and 240 minutes"})
	}
	if err := list.Err(); err != nil {
		s.logger.Warn("SetTiming: validation failed: %v", err)
		return err
	}

	if err := s.repo.UpsertTiming(ctx, t); err != nil {
		s.logger.Error("SetTiming: repository error: %v", err)
		return fmt.Errorf("%w: SetTiming - repository error: %w", ErrInternal, err)
	}
	return nil
}

// EffectiveTiming возвращает итоговые длительность и ожидание услуги для стилиста
func (s *Service) EffectiveTiming(ctx context.Context, stylistID, serviceID int64, useOverride bool) (domain.Timing, error) {
	svc, err := s.repo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return domain.Timing{}, &domain.MissingError{Entity: domain.EntityService, ID: serviceID}
		}
		s.logger.Error("EffectiveTiming: failed to get service id=%d: %v", serviceID, err)
		return domain.Timing{}, fmt.Errorf("%w: EffectiveTiming - get service: %w", ErrInternal, err)
	}

	timings, err := s.repo.ListTimings(ctx, stylistID)
	if err != nil {
		s.logger.Error("EffectiveTiming: failed to list timings for stylist=%d: %v", stylistID, err)
		return domain.Timing{}, fmt.Errorf("%w: EffectiveTiming - list timings: %w", ErrInternal, err)
	}

	return domain.ResolveTiming(svc, timings[serviceID], useOverride), nil
}
