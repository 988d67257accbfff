package employment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	employmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/employment"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// Service реестр условий занятости
type Service struct {
	repo         Repository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo Repository, location *time.Location, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Get возвращает условия занятости пользователя или nil, если они не заданы
func (s *Service) Get(ctx context.Context, userID int64) (*domain.EmploymentTerms, error) {
	terms, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, employmentRepo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Get: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}
	return terms, nil
}

// Save создает или заменяет условия занятости пользователя
func (s *Service) Save(ctx context.Context, terms *domain.EmploymentTerms) error {
	s.logger.Info("Save: user=%d, type=%s", terms.UserID, terms.Type)

	if err := terms.Validate(); err != nil {
		s.logger.Warn("Save: validation failed for user=%d: %v", terms.UserID, err)
		return err
	}

	if err := s.repo.Upsert(ctx, terms); err != nil {
		s.logger.Error("Save: repository error for user=%d: %v", terms.UserID, err)
		return fmt.Errorf("%w: Save - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Save: terms saved for user=%d", terms.UserID)
	return nil
}

// IsCurrentlyEmployed проверяет, действуют ли условия занятости сегодня
func (s *Service) IsCurrentlyEmployed(ctx context.Context, userID int64) (bool, error) {
	terms, err := s.Get(ctx, userID)
	if err != nil || terms == nil {
		return false, err
	}
	return terms.IsCurrentlyEmployed(calendar.Today(s.timeProvider.Now(), s.location)), nil
}
