package workpattern

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var columns = []string{"id", "user_id", "name", "work_schedule", "is_active", "created_at", "updated_at"}

// Repository репозиторий рабочих графиков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория графиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет график. Активный график деактивирует предыдущий активный график пользователя.
func (r *Repository) Create(ctx context.Context, p *domain.WorkPattern) (*domain.WorkPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.IsActive {
		query, args, err := psqlbuilder.Update("work_patterns").
			Set("is_active", false).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"user_id": p.UserID, "is_active": true}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build deactivate query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - deactivate previous: %w", ErrExecQuery, err)
		}
	}

	raw, err := json.Marshal(p.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("work_patterns").
		Columns("user_id", "name", "work_schedule", "is_active").
		Values(p.UserID, p.Name, string(raw), p.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// GetActiveByUser получает активный график пользователя
func (r *Repository) GetActiveByUser(ctx context.Context, userID int64) (*domain.WorkPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("work_patterns").
		Where(squirrel.Eq{"user_id": userID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPattern(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - scan: %w", ErrScanRow, err)
	}

	return p, nil
}

// ListActive получает все активные графики
func (r *Repository) ListActive(ctx context.Context) ([]*domain.WorkPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("work_patterns").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	patterns := make([]*domain.WorkPattern, 0)
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan: %w", ErrScanRow, err)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %w", ErrScanRow, err)
	}

	return patterns, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPattern(row rowScanner) (*domain.WorkPattern, error) {
	var (
		p                    domain.WorkPattern
		raw                  []byte
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &raw, &p.IsActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.Schedule); err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
