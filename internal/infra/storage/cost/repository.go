package cost

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var costColumns = []string{
	"c.id",
	"c.appointment_id",
	"c.service_revenue",
	"c.stylist_cost",
	"c.salon_profit",
	"c.calculation_method",
	"c.hours_worked",
	"c.commission_amount",
	"c.commission_breakdown",
	"c.billing_elements_applied",
	"c.billing_method",
	"c.calculated_at",
}

// Repository репозиторий расчётов стоимости записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает расчёт или заменяет предыдущий расчёт той же записи
func (r *Repository) Upsert(ctx context.Context, c *domain.AppointmentCost) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	breakdown, err := marshalNullable(c.CommissionBreakdown != nil, c.CommissionBreakdown)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal breakdown: %v", ErrEncode, err)
	}
	applied, err := marshalNullable(c.BillingElementsApplied != nil, c.BillingElementsApplied)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal billing elements: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("appointment_costs").
		Columns(
			"appointment_id",
			"service_revenue",
			"stylist_cost",
			"salon_profit",
			"calculation_method",
			"hours_worked",
			"commission_amount",
			"commission_breakdown",
			"billing_elements_applied",
			"billing_method",
		).
		Values(
			c.AppointmentID,
			c.ServiceRevenue,
			c.StylistCost,
			c.SalonProfit,
			string(c.Method),
			toNullDecimal(c.HoursWorked),
			toNullDecimal(c.CommissionAmount),
			breakdown,
			applied,
			c.BillingMethod,
		).
		Suffix(`ON CONFLICT (appointment_id) DO UPDATE SET
			service_revenue = EXCLUDED.service_revenue,
			stylist_cost = EXCLUDED.stylist_cost,
			salon_profit = EXCLUDED.salon_profit,
			calculation_method = EXCLUDED.calculation_method,
			hours_worked = EXCLUDED.hours_worked,
			commission_amount = EXCLUDED.commission_amount,
			commission_breakdown = EXCLUDED.commission_breakdown,
			billing_elements_applied = EXCLUDED.billing_elements_applied,
			billing_method = EXCLUDED.billing_method,
			calculated_at = NOW()
		RETURNING id, calculated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CalculatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByAppointment получает расчёт стоимости записи
func (r *Repository) GetByAppointment(ctx context.Context, appointmentID int64) (*domain.AppointmentCost, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(costColumns...).
		From("appointment_costs c").
		Where(squirrel.Eq{"c.appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCost(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - scan: %w", ErrScanRow, err)
	}
	return c, nil
}

// ListForReport получает расчёты завершённых записей за период (границы включительно)
func (r *Repository) ListForReport(ctx context.Context, filter domain.CostFilter) ([]domain.CostReportRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectColumns := append(append([]string{}, costColumns...),
		"a.stylist_id",
		"a.appointment_date",
		"(EXTRACT(EPOCH FROM (a.end_time - a.start_time)) / 60)::int",
	)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("appointment_costs c").
		Join("appointments a ON a.id = c.appointment_id").
		Where(squirrel.Eq{"a.status": string(domain.StatusCompleted)}).
		Where(squirrel.GtOrEq{"a.appointment_date": filter.From.Format(calendar.DateFormat)}).
		Where(squirrel.LtOrEq{"a.appointment_date": filter.To.Format(calendar.DateFormat)}).
		OrderBy("a.appointment_date ASC", "a.start_time ASC", "a.id ASC")

	if filter.StylistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.stylist_id": *filter.StylistID})
	}
	if filter.Method != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"c.calculation_method": string(*filter.Method)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReport - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReport - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.CostReportRow, 0)
	for rows.Next() {
		var row domain.CostReportRow
		c, err := scanCost(rows, &row.StylistID, &row.Date, &row.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForReport - scan: %w", ErrScanRow, err)
		}
		row.Cost = *c
		row.Date = calendar.DateOnly(row.Date)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForReport - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCost(row rowScanner, extra ...interface{}) (*domain.AppointmentCost, error) {
	var (
		c                        domain.AppointmentCost
		hours, commission        decimal.NullDecimal
		breakdownRaw, appliedRaw []byte
		billingMethod            sql.NullString
	)
	dest := []interface{}{
		&c.ID,
		&c.AppointmentID,
		&c.ServiceRevenue,
		&c.StylistCost,
		&c.SalonProfit,
		&c.Method,
		&hours,
		&commission,
		&breakdownRaw,
		&appliedRaw,
		&billingMethod,
		&c.CalculatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	c.HoursWorked = nullDecimalPtr(hours)
	c.CommissionAmount = nullDecimalPtr(commission)
	if billingMethod.Valid {
		c.BillingMethod = &billingMethod.String
	}
	if breakdownRaw != nil {
		c.CommissionBreakdown = &domain.CommissionBreakdown{}
		if err := json.Unmarshal(breakdownRaw, c.CommissionBreakdown); err != nil {
			return nil, err
		}
	}
	if appliedRaw != nil {
		if err := json.Unmarshal(appliedRaw, &c.BillingElementsApplied); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// marshalNullable возвращает nil для отсутствующих документов, чтобы в колонку попал NULL
func marshalNullable(present bool, v interface{}) (interface{}, error) {
	if !present {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// lib/pq передаёт []byte как bytea, поэтому jsonb отправляем строкой
	return string(raw), nil
}

func nullDecimalPtr(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
