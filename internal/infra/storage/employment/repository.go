package employment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий условий найма
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUser получает условия найма пользователя
func (r *Repository) GetByUser(ctx context.Context, userID int64) (*domain.EmploymentTerms, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"employment_type",
		"hourly_rate",
		"base_salary",
		"commission_rate",
		"billing_method",
		"job_role",
		"start_date",
		"end_date",
		"created_at",
		"updated_at",
	).
		From("employment_terms").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	var (
		e                                  domain.EmploymentTerms
		hourlyRate, baseSalary, commission decimal.NullDecimal
		endDate, createdAt, updatedAt      sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&e.UserID,
		&e.Type,
		&hourlyRate,
		&baseSalary,
		&commission,
		&e.BillingMethod,
		&e.JobRole,
		&e.StartDate,
		&endDate,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - scan: %w", ErrScanRow, err)
	}

	e.HourlyRate = nullDecimalPtr(hourlyRate)
	e.BaseSalary = nullDecimalPtr(baseSalary)
	e.CommissionRate = nullDecimalPtr(commission)
	if endDate.Valid {
		e.EndDate = &endDate.Time
	}
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

// Upsert создает или заменяет условия найма пользователя
func (r *Repository) Upsert(ctx context.Context, e *domain.EmploymentTerms) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("employment_terms").
		Columns(
			"user_id",
			"employment_type",
			"hourly_rate",
			"base_salary",
			"commission_rate",
			"billing_method",
			"job_role",
			"start_date",
			"end_date",
		).
		Values(
			e.UserID,
			e.Type,
			toNullDecimal(e.HourlyRate),
			toNullDecimal(e.BaseSalary),
			toNullDecimal(e.CommissionRate),
			e.BillingMethod,
			e.JobRole,
			e.StartDate,
			e.EndDate,
		).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			employment_type = EXCLUDED.employment_type,
			hourly_rate = EXCLUDED.hourly_rate,
			base_salary = EXCLUDED.base_salary,
			commission_rate = EXCLUDED.commission_rate,
			billing_method = EXCLUDED.billing_method,
			job_role = EXCLUDED.job_role,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute: %w", ErrExecQuery, err)
	}
	return nil
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
