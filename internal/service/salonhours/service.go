package salonhours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonHoursRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salonhours"
)

const (
	registryName = "salon_hours"
	cacheKey     = "singleton"
)

// Service реестр часов работы салона с read-through кэшем
type Service struct {
	repo    Repository
	cache   *expirable.LRU[string, *domain.SalonHours]
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo Repository, ttl time.Duration, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   expirable.NewLRU[string, *domain.SalonHours](1, nil, ttl),
		metrics: metrics,
		logger:  logger,
	}
}

// Get возвращает часы работы салона.
// При первом обращении сохраняет значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*domain.SalonHours, error) {
	if hours, ok := s.cache.Get(cacheKey); ok {
		s.metrics.RegistryCacheLookup(registryName, true)
		return hours, nil
	}
	s.metrics.RegistryCacheLookup(registryName, false)

	hours, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, salonHoursRepo.ErrNotFound):
		hours = domain.DefaultSalonHours()
		if err := s.repo.Upsert(ctx, hours); err != nil {
			s.logger.Error("Get: failed to materialise default salon hours: %v", err)
			return nil, fmt.Errorf("%w: Get - materialise defaults: %w", ErrInternal, err)
		}
		s.logger.Info("Get: materialised default salon hours")
	case err != nil:
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	s.cache.Add(cacheKey, hours)
	return hours, nil
}

// Replace атомарно заменяет всю карту часов работы и флаг экстренного продления
func (s *Service) Replace(ctx context.Context, hours *domain.SalonHours) error {
	s.logger.Info("Replace: replacing salon hours, days=%d, emergency=%t",
		len(hours.OpeningHours), hours.EmergencyExtensionEnabled)

	if err := hours.Validate(); err != nil {
		s.logger.Warn("Replace: validation failed: %v", err)
		return err
	}

	if err := s.repo.Upsert(ctx, hours); err != nil {
		s.logger.Error("Replace: repository error: %v", err)
		return fmt.Errorf("%w: Replace - repository error: %w", ErrInternal, err)
	}

	s.cache.Add(cacheKey, hours)
	s.logger.Info("Replace: salon hours replaced")
	return nil
}
