package holiday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const codeExclusionViolation = "23P01"

var (
	quotaColumns = []string{
		"id",
		"user_id",
		"year",
		"total_hours_per_week",
		"days_entitled",
		"days_taken",
		"created_at",
		"updated_at",
	}
	requestColumns = []string{
		"id",
		"user_id",
		"start_date",
		"end_date",
		"working_days",
		"status",
		"notes",
		"decision_notes",
		"approved_by",
		"decided_at",
		"created_at",
	}
)

// Repository репозиторий квот и заявок на отпуск
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetQuota получает квоту пользователя за год. Внутри транзакции строка блокируется FOR UPDATE.
func (r *Repository) GetQuota(ctx context.Context, userID int64, year int) (*domain.HolidayQuota, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(quotaColumns...).
		From("holiday_quotas").
		Where(squirrel.Eq{"user_id": userID, "year": year})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetQuota - build select query: %v", ErrBuildQuery, err)
	}

	var (
		q                    domain.HolidayQuota
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&q.ID,
		&q.UserID,
		&q.Year,
		&q.TotalHoursPerWeek,
		&q.DaysEntitled,
		&q.DaysTaken,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuotaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetQuota - scan: %w", ErrScanRow, err)
	}
	q.CreatedAt = createdAt.Time
	q.UpdatedAt = updatedAt.Time

	return &q, nil
}

// CreateQuota создает квоту. Возвращает ErrQuotaExists, если квота уже есть.
func (r *Repository) CreateQuota(ctx context.Context, q *domain.HolidayQuota) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holiday_quotas").
		Columns("user_id", "year", "total_hours_per_week", "days_entitled", "days_taken").
		Values(q.UserID, q.Year, q.TotalHoursPerWeek, q.DaysEntitled, q.DaysTaken).
		Suffix("ON CONFLICT (user_id, year) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateQuota - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrQuotaExists
	}
	if err != nil {
		return fmt.Errorf("%w: CreateQuota - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// UpdateQuotaTaken сохраняет количество использованных дней
func (r *Repository) UpdateQuotaTaken(ctx context.Context, q *domain.HolidayQuota) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("holiday_quotas").
		Set("days_taken", q.DaysTaken).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": q.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateQuotaTaken - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateQuotaTaken - execute update: %w", ErrExecQuery, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrQuotaNotFound
	}
	return nil
}

// CreateRequest создает заявку на отпуск
func (r *Repository) CreateRequest(ctx context.Context, req *domain.HolidayRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holiday_requests").
		Columns("user_id", "start_date", "end_date", "working_days", "status", "notes").
		Values(
			req.UserID,
			req.StartDate.Format(calendar.DateFormat),
			req.EndDate.Format(calendar.DateFormat),
			req.WorkingDays,
			string(req.Status),
			req.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateRequest - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation {
			return ErrRequestOverlap
		}
		return fmt.Errorf("%w: CreateRequest - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// GetRequest получает заявку. Внутри транзакции строка блокируется FOR UPDATE.
func (r *Repository) GetRequest(ctx context.Context, id int64) (*domain.HolidayRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("holiday_requests").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRequest - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRequest - scan: %w", ErrScanRow, err)
	}
	return req, nil
}

// ListBlocking получает ожидающие и одобренные заявки пользователя, пересекающие [from, to]
func (r *Repository) ListBlocking(ctx context.Context, userID int64, from, to time.Time) ([]*domain.HolidayRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("holiday_requests").
		Where(squirrel.Eq{
			"user_id": userID,
			"status":  []string{string(domain.HolidayPending), string(domain.HolidayApproved)},
		}).
		Where(squirrel.LtOrEq{"start_date": to.Format(calendar.DateFormat)}).
		Where(squirrel.GtOrEq{"end_date": from.Format(calendar.DateFormat)}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocking - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRequests(ctx, executor, query, args)
}

// ListByUserYear получает заявки пользователя, начинающиеся в указанном году
func (r *Repository) ListByUserYear(ctx context.Context, userID int64, year int) ([]*domain.HolidayRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("holiday_requests").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"start_date": from.Format(calendar.DateFormat)}).
		Where(squirrel.LtOrEq{"start_date": to.Format(calendar.DateFormat)}).
		OrderBy("start_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserYear - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRequests(ctx, executor, query, args)
}

// UpdateDecision сохраняет решение по заявке
func (r *Repository) UpdateDecision(ctx context.Context, req *domain.HolidayRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("holiday_requests").
		Set("status", string(req.Status)).
		Set("decision_notes", req.DecisionNotes).
		Set("approved_by", req.ApprovedBy).
		Set("decided_at", req.DecidedAt).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - execute update: %w", ErrExecQuery, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *Repository) queryRequests(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.HolidayRequest, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryRequests - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.HolidayRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: queryRequests - scan: %w", ErrScanRow, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryRequests - rows error: %w", ErrScanRow, err)
	}

	return requests, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.HolidayRequest, error) {
	var (
		req        domain.HolidayRequest
		approvedBy sql.NullInt64
		decidedAt  sql.NullTime
	)
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.StartDate,
		&req.EndDate,
		&req.WorkingDays,
		&req.Status,
		&req.Notes,
		&req.DecisionNotes,
		&approvedBy,
		&decidedAt,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.StartDate = calendar.DateOnly(req.StartDate)
	req.EndDate = calendar.DateOnly(req.EndDate)
	if approvedBy.Valid {
		req.ApprovedBy = &approvedBy.Int64
	}
	if decidedAt.Valid {
		req.DecidedAt = &decidedAt.Time
	}

	return &req, nil
}
