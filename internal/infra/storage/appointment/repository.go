package appointment

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

// codeExclusionViolation SQLSTATE нарушения exclusion constraint
const codeExclusionViolation = "23P01"

var columns = []string{
	"id",
	"customer_id",
	"stylist_id",
	"booked_by_id",
	"appointment_date",
	"start_time",
	"end_time",
	"status",
	"notes",
	"contact_phone",
	"contact_email",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей, их сегментов и истории статусов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockStylistDay берёт транзакционную advisory-блокировку на пару (стилист, дата).
// Вызывается только внутри транзакции: блокировка снимается при commit/rollback.
func (r *Repository) LockStylistDay(ctx context.Context, stylistID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(?::int, ?::int)", int32(stylistID), dayNumber(date))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockStylistDay - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockStylistDay - execute: %w", ErrExecQuery, err)
	}
	return nil
}

// ListBlocking получает неотменённые записи стилиста на дату, кроме excludeID (0 - без исключения).
// Внутри транзакции строки блокируются FOR UPDATE.
func (r *Repository) ListBlocking(ctx context.Context, stylistID int64, date time.Time, excludeID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"stylist_id": stylistID, "appointment_date": formatDate(date)}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC")

	if excludeID != 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocking - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryAppointments(ctx, executor, query, args)
}

// Create сохраняет запись и её сегменты в порядке Order
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"stylist_id",
			"booked_by_id",
			"appointment_date",
			"start_time",
			"end_time",
			"status",
			"notes",
			"contact_phone",
			"contact_email",
		).
		Values(
			a.CustomerID,
			a.StylistID,
			a.BookedByID,
			formatDate(a.Date),
			a.StartTime,
			a.EndTime,
			a.Status,
			a.Notes,
			a.ContactPhone,
			a.ContactEmail,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt); err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	if err := r.insertSegments(ctx, a.ID, a.Segments); err != nil {
		return nil, err
	}

	return a, nil
}

// UpdateSchedule перезаписывает участников, дату, время, заметки и сегменты записи
func (r *Repository) UpdateSchedule(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("customer_id", a.CustomerID).
		Set("stylist_id", a.StylistID).
		Set("appointment_date", formatDate(a.Date)).
		Set("start_time", a.StartTime).
		Set("end_time", a.EndTime).
		Set("notes", a.Notes).
		Set("contact_phone", a.ContactPhone).
		Set("contact_email", a.ContactEmail).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAppointmentNotFound
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: UpdateSchedule - delete segments: %w", ErrExecQuery, err)
	}

	return r.insertSegments(ctx, a.ID, a.Segments)
}

func (r *Repository) insertSegments(ctx context.Context, appointmentID int64, segments []domain.Segment) error {
	if len(segments) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("appointment_services").
		Columns("appointment_id", "service_order", "service_id", "service_name", "duration_minutes", "waiting_minutes", "price")
	for _, s := range segments {
		insert = insert.Values(appointmentID, s.Order, s.ServiceID, s.ServiceName, s.DurationMinutes, s.WaitingMinutes, s.Price)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSegments - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertSegments - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает запись с сегментами и историей статусов.
// Внутри транзакции строка записи блокируется FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	segments, err := r.segmentsOf(ctx, []int64{a.ID})
	if err != nil {
		return nil, err
	}
	a.Segments = segments[a.ID]

	history, err := r.historyOf(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.History = history

	return a, nil
}

// List получает записи по фильтру, упорядоченные по дате и времени начала, вместе с сегментами
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		OrderBy("appointment_date ASC", "start_time ASC", "id ASC")

	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": formatDate(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": formatDate(*filter.DateTo)})
	}
	if filter.StylistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"stylist_id": *filter.StylistID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	appointments, err := r.queryAppointments(ctx, executor, query, args)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return appointments, nil
	}

	ids := make([]int64, len(appointments))
	for i, a := range appointments {
		ids[i] = a.ID
	}
	segments, err := r.segmentsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		a.Segments = segments[a.ID]
	}

	return appointments, nil
}

// ListCompletedWithoutCost получает ID завершённых записей без расчёта стоимости,
// стоимость которых уже можно рассчитать: у стилиста есть условия со ставкой своего режима.
func (r *Repository) ListCompletedWithoutCost(ctx context.Context, limit uint64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("a.id").
		From("appointments a").
		Join("employment_terms e ON e.user_id = a.stylist_id").
		LeftJoin("appointment_costs c ON c.appointment_id = a.id").
		Where(squirrel.Eq{"a.status": string(domain.StatusCompleted), "c.id": nil}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"e.employment_type": string(domain.EmploymentEmployed)},
				squirrel.NotEq{"e.hourly_rate": nil},
			},
			squirrel.And{
				squirrel.Eq{"e.employment_type": string(domain.EmploymentSelfEmployed)},
				squirrel.NotEq{"e.commission_rate": nil},
			},
		}).
		OrderBy("a.id ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompletedWithoutCost - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompletedWithoutCost - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListCompletedWithoutCost - scan: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCompletedWithoutCost - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// AddStatusChange дописывает запись в историю статусов
func (r *Repository) AddStatusChange(ctx context.Context, change *domain.StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_status_history").
		Columns("appointment_id", "status", "notes", "changed_by").
		Values(change.AppointmentID, string(change.Status), change.Notes, change.ChangedBy).
		Suffix("RETURNING id, changed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddStatusChange - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&change.ID, &change.ChangedAt); err != nil {
		return fmt.Errorf("%w: AddStatusChange - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) segmentsOf(ctx context.Context, appointmentIDs []int64) (map[int64][]domain.Segment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"appointment_id",
		"service_order",
		"service_id",
		"service_name",
		"duration_minutes",
		"waiting_minutes",
		"price",
	).
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentIDs}).
		OrderBy("appointment_id ASC", "service_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: segmentsOf - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: segmentsOf - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Segment, len(appointmentIDs))
	for rows.Next() {
		var (
			appointmentID int64
			s             domain.Segment
		)
		if err := rows.Scan(&appointmentID, &s.Order, &s.ServiceID, &s.ServiceName, &s.DurationMinutes, &s.WaitingMinutes, &s.Price); err != nil {
			return nil, fmt.Errorf("%w: segmentsOf - scan: %w", ErrScanRow, err)
		}
		result[appointmentID] = append(result[appointmentID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: segmentsOf - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) historyOf(ctx context.Context, appointmentID int64) ([]domain.StatusChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "appointment_id", "status", "notes", "changed_by", "changed_at").
		From("appointment_status_history").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: historyOf - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: historyOf - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	history := make([]domain.StatusChange, 0)
	for rows.Next() {
		var c domain.StatusChange
		if err := rows.Scan(&c.ID, &c.AppointmentID, &c.Status, &c.Notes, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("%w: historyOf - scan: %w", ErrScanRow, err)
		}
		history = append(history, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: historyOf - rows error: %w", ErrScanRow, err)
	}

	return history, nil
}

func (r *Repository) queryAppointments(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryAppointments - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: queryAppointments - scan: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		phone, email         sql.NullString
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.StylistID,
		&a.BookedByID,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.Notes,
		&phone,
		&email,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Date = calendar.DateOnly(a.Date)
	if phone.Valid {
		a.ContactPhone = &phone.String
	}
	if email.Valid {
		a.ContactEmail = &email.String
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation
}

// formatDate передаёт дату строкой, чтобы часовой пояс сессии не сдвигал DATE
func formatDate(date time.Time) string {
	return date.Format(calendar.DateFormat)
}

func dayNumber(date time.Time) int32 {
	return int32(calendar.DateOnly(date).Unix() / 86400)
}
