package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	"waiting_minutes",
	"price",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг и персональных настроек стилистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу
func (r *Repository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "description", "duration_minutes", "waiting_minutes", "price", "is_active").
		Values(s.Name, s.Description, s.DurationMinutes, s.WaitingMinutes, s.Price, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}

// Update обновляет услугу целиком
func (r *Repository) Update(ctx context.Context, s *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", s.Name).
		Set("description", s.Description).
		Set("duration_minutes", s.DurationMinutes).
		Set("waiting_minutes", s.WaitingMinutes).
		Set("price", s.Price).
		Set("is_active", s.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}

	return s, nil
}

// GetByIDs получает услуги по списку ID. Отсутствующие ID в результат не попадают.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	services, err := r.queryServices(ctx, executor, query, args)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]*domain.Service, len(services))
	for _, s := range services {
		result[s.ID] = s
	}
	return result, nil
}

// ListActive получает все активные услуги
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryServices(ctx, executor, query, args)
}

// IsReferenced проверяет, используется ли услуга в записях
func (r *Repository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM appointment_services WHERE service_id = ?)", id)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsReferenced - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: IsReferenced - scan: %w", ErrScanRow, err)
	}
	return exists, nil
}

// ListAllowances получает записи разрешений стилиста на услуги
func (r *Repository) ListAllowances(ctx context.Context, stylistID int64) ([]domain.StylistServiceAllowance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("stylist_id", "service_id", "is_allowed").
		From("stylist_service_allowances").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllowances - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllowances - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	allowances := make([]domain.StylistServiceAllowance, 0)
	for rows.Next() {
		var a domain.StylistServiceAllowance
		if err := rows.Scan(&a.StylistID, &a.ServiceID, &a.IsAllowed); err != nil {
			return nil, fmt.Errorf("%w: ListAllowances - scan: %w", ErrScanRow, err)
		}
		allowances = append(allowances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAllowances - rows error: %w", ErrScanRow, err)
	}

	return allowances, nil
}

// UpsertAllowance создает или обновляет разрешение стилиста на услугу
func (r *Repository) UpsertAllowance(ctx context.Context, a domain.StylistServiceAllowance) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stylist_service_allowances").
		Columns("stylist_id", "service_id", "is_allowed").
		Values(a.StylistID, a.ServiceID, a.IsAllowed).
		Suffix("ON CONFLICT (stylist_id, service_id) DO UPDATE SET is_allowed = EXCLUDED.is_allowed").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertAllowance - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertAllowance - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// ListTimings получает персональные длительности стилиста, ключ - ID услуги
func (r *Repository) ListTimings(ctx context.Context, stylistID int64) (map[int64]*domain.StylistServiceTiming, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"stylist_id",
		"service_id",
		"custom_duration_minutes",
		"custom_waiting_minutes",
		"is_active",
	).
		From("stylist_service_timings").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimings - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	timings := make(map[int64]*domain.StylistServiceTiming)
	for rows.Next() {
		var (
			t                 domain.StylistServiceTiming
			duration, waiting sql.NullInt32
		)
		if err := rows.Scan(&t.StylistID, &t.ServiceID, &duration, &waiting, &t.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListTimings - scan: %w", ErrScanRow, err)
		}
		t.CustomDurationMinutes = nullIntPtr(duration)
		t.CustomWaitingMinutes = nullIntPtr(waiting)
		timings[t.ServiceID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimings - rows error: %w", ErrScanRow, err)
	}

	return timings, nil
}

// UpsertTiming создает или обновляет персональную длительность
func (r *Repository) UpsertTiming(ctx context.Context, t domain.StylistServiceTiming) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stylist_service_timings").
		Columns("stylist_id", "service_id", "custom_duration_minutes", "custom_waiting_minutes", "is_active").
		Values(t.StylistID, t.ServiceID, t.CustomDurationMinutes, t.CustomWaitingMinutes, t.IsActive).
		Suffix(`ON CONFLICT (stylist_id, service_id) DO UPDATE SET
			custom_duration_minutes = EXCLUDED.custom_duration_minutes,
			custom_waiting_minutes = EXCLUDED.custom_waiting_minutes,
			is_active = EXCLUDED.is_active`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertTiming - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertTiming - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) queryServices(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.Service, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: queryServices - scan service: %w", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		s                    domain.Service
		waiting              sql.NullInt32
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.DurationMinutes,
		&waiting,
		&s.Price,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.WaitingMinutes = nullIntPtr(waiting)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

func nullIntPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}
