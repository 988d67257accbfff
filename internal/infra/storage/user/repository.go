package user

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

// Repository репозиторий пользователей и их ролей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("username", "email", "full_name", "is_active").
		Values(u.Username, u.Email, u.FullName, u.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return u, nil
}

// AssignRole выдает пользователю роль по имени
func (r *Repository) AssignRole(ctx context.Context, userID int64, role domain.RoleName) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("user_roles").
		Columns("user_id", "role_id").
		Select(
			squirrel.Select().
				Column(squirrel.Expr("?::bigint", userID)).
				Column("id").
				From("roles").
				Where(squirrel.Eq{"name": string(role)}),
		).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AssignRole - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AssignRole - execute insert: %w", ErrExecQuery, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		// либо роль уже выдана, либо роли не существует
		exists, err := r.roleExists(ctx, role)
		if err != nil {
			return err
		}
		if !exists {
			return ErrRoleNotFound
		}
	}

	return nil
}

func (r *Repository) roleExists(ctx context.Context, role domain.RoleName) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").From("roles").Where(squirrel.Eq{"name": string(role)}).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: roleExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: roleExists - scan: %w", ErrScanRow, err)
	}
	return true, nil
}

// GetByID получает пользователя вместе с ролями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "username", "email", "full_name", "is_active", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FullName,
		&u.IsActive,
		&u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %w", ErrScanRow, err)
	}

	roles, err := r.rolesOf(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Roles = roles

	return &u, nil
}

func (r *Repository) rolesOf(ctx context.Context, userID int64) ([]domain.Role, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("r.id", "r.name", "r.level").
		From("roles r").
		Join("user_roles ur ON ur.role_id = r.id").
		Where(squirrel.Eq{"ur.user_id": userID}).
		OrderBy("r.level ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: rolesOf - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: rolesOf - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Level); err != nil {
			return nil, fmt.Errorf("%w: rolesOf - scan role: %w", ErrScanRow, err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rolesOf - rows error: %w", ErrScanRow, err)
	}

	return roles, nil
}
