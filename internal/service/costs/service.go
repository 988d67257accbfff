package costs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	costRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/cost"
	employmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/employment"
)

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// Service движок расчёта стоимости записей и отчётов по ним
type Service struct {
	appointmentRepo AppointmentRepository
	employmentRepo  EmploymentRepository
	billing         BillingElements
	costRepo        CostRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр движка
func NewService(
	appointmentRepo AppointmentRepository,
	employmentRepo EmploymentRepository,
	billing BillingElements,
	costRepo CostRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		employmentRepo:  employmentRepo,
		billing:         billing,
		costRepo:        costRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Calculate считает и сохраняет стоимость завершённой записи в текущей транзакции.
// Возвращает nil без ошибки, если у стилиста нет условий занятости или нужной ставки.
func (s *Service) Calculate(ctx context.Context, a *domain.Appointment) (*domain.AppointmentCost, error) {
	if err := a.CheckSegments(); err != nil {
		s.logger.Error("Calculate: %v", err)
		return nil, err
	}

	terms, err := s.employmentRepo.GetByUser(ctx, a.StylistID)
	if err != nil && !errors.Is(err, employmentRepo.ErrNotFound) {
		s.logger.Error("Calculate: failed to get employment terms for stylist=%d: %v", a.StylistID, err)
		return nil, fmt.Errorf("%w: Calculate - get employment terms: %w", ErrInternal, err)
	}

	elements, err := s.billing.ListActive(ctx)
	if err != nil {
		s.logger.Error("Calculate: failed to list billing elements: %v", err)
		return nil, fmt.Errorf("%w: Calculate - list billing elements: %w", ErrInternal, err)
	}

	cost := domain.ComputeCost(domain.CostInput{
		AppointmentID:   a.ID,
		Revenue:         a.Revenue(),
		DurationMinutes: a.DurationMinutes(),
		Terms:           terms,
		BillingElements: elements,
	})
	if cost == nil {
		s.logger.Warn("Calculate: appointment id=%d has no cost regime for stylist=%d", a.ID, a.StylistID)
		return nil, nil
	}

	if err := s.costRepo.Upsert(ctx, cost); err != nil {
		s.logger.Error("Calculate: failed to save cost for appointment id=%d: %v", a.ID, err)
		return nil, fmt.Errorf("%w: Calculate - save cost: %w", ErrInternal, err)
	}

	s.metrics.CostCalculated(string(cost.Method))
	s.logger.Info("Calculate: appointment id=%d, method=%s, revenue=%s, cost=%s, profit=%s",
		a.ID, cost.Method, cost.ServiceRevenue, cost.StylistCost, cost.SalonProfit)
	return cost, nil
}

// ComputeCost пересчитывает стоимость завершённой записи
func (s *Service) ComputeCost(ctx context.Context, appointmentID int64) (*domain.AppointmentCost, error) {
	s.logger.Info("ComputeCost: appointment id=%d", appointmentID)

	var result *domain.AppointmentCost
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		a, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("ComputeCost: appointment id=%d not found", appointmentID)
				return &domain.MissingError{Entity: domain.EntityAppointment, ID: appointmentID}
			}
			s.logger.Error("ComputeCost: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: ComputeCost - get appointment: %w", ErrInternal, err)
		}

		if a.Status != domain.StatusCompleted {
			s.logger.Warn("ComputeCost: appointment id=%d is %s, not completed", appointmentID, a.Status)
			return &domain.StateError{Entity: domain.EntityAppointmentCost, From: string(a.Status), To: string(domain.StatusCompleted)}
		}

		result, err = s.Calculate(txCtx, a)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get возвращает сохранённый расчёт стоимости записи
func (s *Service) Get(ctx context.Context, appointmentID int64) (*domain.AppointmentCost, error) {
	c, err := s.costRepo.GetByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, costRepo.ErrCostNotFound) {
			return nil, &domain.MissingError{Entity: domain.EntityAppointmentCost, ID: appointmentID}
		}
		s.logger.Error("Get: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}
	return c, nil
}

// Backfill рассчитывает стоимость завершённых записей, у которых её ещё нет.
// Возвращает количество созданных расчётов.
func (s *Service) Backfill(ctx context.Context, limit uint64) (int, error) {
	ids, err := s.appointmentRepo.ListCompletedWithoutCost(ctx, limit)
	if err != nil {
		s.logger.Error("Backfill: failed to list appointments: %v", err)
		return 0, fmt.Errorf("%w: Backfill - list appointments: %w", ErrInternal, err)
	}

	created := 0
	var errs []error
	for _, id := range ids {
		cost, err := s.ComputeCost(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("appointment id=%d: %w", id, err))
			continue
		}
		if cost != nil {
			created++
		}
	}

	s.logger.Info("Backfill: %d of %d appointments costed, %d failed", created, len(ids), len(errs))
	return created, errors.Join(errs...)
}

// StylistEarnings суммирует заработок стилиста по завершённым записям за период
func (s *Service) StylistEarnings(ctx context.Context, stylistID int64, from, to time.Time) (*Earnings, error) {
	s.logger.Info("StylistEarnings: stylist=%d, period=%s..%s", stylistID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	rows, err := s.report(ctx, domain.CostFilter{From: from, To: to, StylistID: &stylistID})
	if err != nil {
		return nil, err
	}

	result := &Earnings{StylistID: stylistID, From: from, To: to, TotalEarnings: decimal.Zero}
	minutes := 0
	for _, row := range rows {
		result.TotalEarnings = result.TotalEarnings.Add(row.Cost.StylistCost)
		minutes += row.DurationMinutes
		result.AppointmentCount++
	}
	result.TotalHours = domain.RoundMoney(decimal.NewFromInt(int64(minutes)).Div(sixty))

	return result, nil
}

// SalonProfit суммирует выручку, затраты на стилистов и прибыль салона за период
func (s *Service) SalonProfit(ctx context.Context, from, to time.Time) (*ProfitSummary, error) {
	s.logger.Info("SalonProfit: period=%s..%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	rows, err := s.report(ctx, domain.CostFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	result := &ProfitSummary{
		From:          from,
		To:            to,
		Revenue:       decimal.Zero,
		StylistCost:   decimal.Zero,
		Profit:        decimal.Zero,
		MarginPercent: decimal.Zero,
	}
	for _, row := range rows {
		result.Revenue = result.Revenue.Add(row.Cost.ServiceRevenue)
		result.StylistCost = result.StylistCost.Add(row.Cost.StylistCost)
		result.Profit = result.Profit.Add(row.Cost.SalonProfit)
		result.AppointmentCount++
	}
	if result.Revenue.IsPositive() {
		result.MarginPercent = domain.RoundMoney(result.Profit.Mul(hundred).Div(result.Revenue))
	}

	return result, nil
}

// CommissionSummary суммирует записи с комиссионным расчётом с разбивкой по стилистам
func (s *Service) CommissionSummary(ctx context.Context, from, to time.Time) (*CommissionSummary, error) {
	s.logger.Info("CommissionSummary: period=%s..%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	method := domain.MethodCommission
	rows, err := s.report(ctx, domain.CostFilter{From: from, To: to, Method: &method})
	if err != nil {
		return nil, err
	}

	result := &CommissionSummary{
		From:         from,
		To:           to,
		Revenue:      decimal.Zero,
		Commission:   decimal.Zero,
		SalonPortion: decimal.Zero,
	}
	byStylist := make(map[int64]*StylistCommission)
	for _, row := range rows {
		result.Revenue = result.Revenue.Add(row.Cost.ServiceRevenue)
		result.Commission = result.Commission.Add(row.Cost.StylistCost)
		result.SalonPortion = result.SalonPortion.Add(row.Cost.SalonProfit)
		result.AppointmentCount++

		sc, ok := byStylist[row.StylistID]
		if !ok {
			sc = &StylistCommission{StylistID: row.StylistID, Revenue: decimal.Zero, Commission: decimal.Zero, SalonPortion: decimal.Zero}
			byStylist[row.StylistID] = sc
		}
		sc.Revenue = sc.Revenue.Add(row.Cost.ServiceRevenue)
		sc.Commission = sc.Commission.Add(row.Cost.StylistCost)
		sc.SalonPortion = sc.SalonPortion.Add(row.Cost.SalonProfit)
		sc.AppointmentCount++
	}

	result.ByStylist = make([]StylistCommission, 0, len(byStylist))
	for _, sc := range byStylist {
		result.ByStylist = append(result.ByStylist, *sc)
	}
	sort.Slice(result.ByStylist, func(i, j int) bool {
		return result.ByStylist[i].StylistID < result.ByStylist[j].StylistID
	})

	return result, nil
}

func (s *Service) report(ctx context.Context, filter domain.CostFilter) ([]domain.CostReportRow, error) {
	if filter.To.Before(filter.From) {
		return nil, &domain.ValidationError{Field: "to", Reason: "must not be before from"}
	}

	var rows []domain.CostReportRow
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.costRepo.ListForReport(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("report: repository error: %v", err)
		return nil, fmt.Errorf("%w: report - repository error: %w", ErrInternal, err)
	}
	return rows, nil
}
