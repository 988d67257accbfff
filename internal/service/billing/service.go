package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	billingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/billing"
)

const (
	registryName = "billing_elements"
	cacheKey     = "active"
)

// Service реестр элементов биллинга с read-through кэшем активных элементов
type Service struct {
	repo    Repository
	cache   *expirable.LRU[string, []*domain.BillingElement]
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo Repository, ttl time.Duration, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   expirable.NewLRU[string, []*domain.BillingElement](1, nil, ttl),
		metrics: metrics,
		logger:  logger,
	}
}

// ListActive возвращает активные элементы биллинга
func (s *Service) ListActive(ctx context.Context) ([]*domain.BillingElement, error) {
	if elements, ok := s.cache.Get(cacheKey); ok {
		s.metrics.RegistryCacheLookup(registryName, true)
		return elements, nil
	}
	s.metrics.RegistryCacheLookup(registryName, false)

	elements, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %w", ErrInternal, err)
	}

	s.cache.Add(cacheKey, elements)
	return elements, nil
}

// Create добавляет элемент биллинга
func (s *Service) Create(ctx context.Context, b *domain.BillingElement) (*domain.BillingElement, error) {
	s.logger.Info("Create: name=%q, percentage=%s", b.Name, b.Percentage)

	if err := b.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.cache.Remove(cacheKey)
	s.logger.Info("Create: billing element id=%d created", created.ID)
	return created, nil
}

// Update изменяет элемент биллинга
func (s *Service) Update(ctx context.Context, b *domain.BillingElement) error {
	s.logger.Info("Update: billing element id=%d", b.ID)

	if err := b.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for id=%d: %v", b.ID, err)
		return err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, billingRepo.ErrNotFound) {
			s.logger.Warn("Update: billing element id=%d not found", b.ID)
			return &domain.MissingError{Entity: domain.EntityBillingElement, ID: b.ID}
		}
		s.logger.Error("Update: repository error for id=%d: %v", b.ID, err)
		return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.cache.Remove(cacheKey)
	return nil
}
