// Package scheduler запускает фоновые задачи по cron-расписанию.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	cron "github.com/robfig/cron/v3"
)

const (
	// backfillBatch максимум записей за один прогон пересчета стоимости
	backfillBatch = 500

	jobTimeout = 5 * time.Minute
)

var ErrInvalidSpec = errors.New("scheduler: invalid cron spec")

// Specs расписания задач в пятипольном cron-формате
type Specs struct {
	QuotaRollover string
	CostBackfill  string
}

type Scheduler struct {
	cron         *cron.Cron
	holidays     HolidayService
	costs        CostService
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

func New(holidays HolidayService, costs CostService, location *time.Location, logger Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		holidays:     holidays,
		costs:        costs,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Start регистрирует задачи и запускает планировщик
func (s *Scheduler) Start(specs Specs) error {
	if _, err := s.cron.AddFunc(specs.QuotaRollover, s.rolloverQuotas); err != nil {
		return fmt.Errorf("%w: quota rollover %q: %v", ErrInvalidSpec, specs.QuotaRollover, err)
	}
	if _, err := s.cron.AddFunc(specs.CostBackfill, s.backfillCosts); err != nil {
		return fmt.Errorf("%w: cost backfill %q: %v", ErrInvalidSpec, specs.CostBackfill, err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler: started, quota_rollover=%q, cost_backfill=%q", specs.QuotaRollover, specs.CostBackfill)
	return nil
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler: stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out, running jobs abandoned")
	}
}

// rolloverQuotas создает квоты отпусков на текущий год
func (s *Scheduler) rolloverQuotas() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	year := s.timeProvider.Now().In(s.location).Year()
	created, err := s.holidays.EnsureQuotas(ctx, year)
	if err != nil {
		s.logger.Error("Scheduler: quota rollover for year=%d failed: %v", year, err)
		return
	}
	s.logger.Info("Scheduler: quota rollover for year=%d, created=%d", year, created)
}

// backfillCosts считает стоимость завершенных записей, для которых ее еще нет
func (s *Scheduler) backfillCosts() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	computed, err := s.costs.Backfill(ctx, backfillBatch)
	if err != nil {
		s.logger.Error("Scheduler: cost backfill failed: %v", err)
		return
	}
	if computed > 0 {
		s.logger.Info("Scheduler: cost backfill computed=%d", computed)
	}
}
