package workpatterns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	workPatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Service реестр рабочих графиков
type Service struct {
	repo      Repository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo Repository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// Create сохраняет график. Новый активный график заменяет предыдущий активный.
func (s *Service) Create(ctx context.Context, p *domain.WorkPattern) (*domain.WorkPattern, error) {
	s.logger.Info("Create: user=%d, name=%q, active=%t", p.UserID, p.Name, p.IsActive)

	if err := p.Validate(); err != nil {
		s.logger.Warn("Create: validation failed for user=%d: %v", p.UserID, err)
		return nil, err
	}

	var created *domain.WorkPattern
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, p)
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error for user=%d: %v", p.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: pattern id=%d created, weekly hours=%s", created.ID, created.WeeklyHours())
	return created, nil
}

// Active возвращает активный график пользователя или nil, если его нет
func (s *Service) Active(ctx context.Context, userID int64) (*domain.WorkPattern, error) {
	p, err := s.repo.GetActiveByUser(ctx, userID)
	if errors.Is(err, workPatternRepo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Active: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Active - repository error: %w", ErrInternal, err)
	}
	return p, nil
}

// WeeklyHours возвращает часы в неделю по активному графику, 0 без графика
func (s *Service) WeeklyHours(ctx context.Context, userID int64) (decimal.Decimal, error) {
	p, err := s.Active(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return p.WeeklyHours(), nil
}

// IsAvailable проверяет, работает ли пользователь в указанный момент
func (s *Service) IsAvailable(ctx context.Context, userID int64, date time.Time, at types.TimeString) (bool, error) {
	p, err := s.Active(ctx, userID)
	if err != nil || p == nil {
		return false, err
	}
	return p.IsAvailable(date, at), nil
}
