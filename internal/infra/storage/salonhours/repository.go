package salonhours

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

// singletonID единственная строка таблицы salon_hours
const singletonID = 1

// Repository репозиторий часов работы салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает часы работы салона
func (r *Repository) Get(ctx context.Context) (*domain.SalonHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("opening_hours", "emergency_extension_enabled", "updated_at").
		From("salon_hours").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		hours     domain.SalonHours
		raw       []byte
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw, &hours.EmergencyExtensionEnabled, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan: %w", ErrScanRow, err)
	}

	if err := json.Unmarshal(raw, &hours.OpeningHours); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal: %v", ErrEncode, err)
	}
	hours.UpdatedAt = updatedAt.Time

	return &hours, nil
}

// Upsert атомарно заменяет всю карту часов работы
func (r *Repository) Upsert(ctx context.Context, hours *domain.SalonHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(hours.OpeningHours)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("salon_hours").
		Columns("id", "opening_hours", "emergency_extension_enabled").
		Values(singletonID, string(raw), hours.EmergencyExtensionEnabled).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			opening_hours = EXCLUDED.opening_hours,
			emergency_extension_enabled = EXCLUDED.emergency_extension_enabled,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&hours.UpdatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute: %w", ErrExecQuery, err)
	}
	return nil
}
