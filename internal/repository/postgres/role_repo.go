package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencehub/internal/domain"
)

type roleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) domain.RoleRepository {
	return &roleRepository{DB: db}
}

func (r *roleRepository) GetByCode(ctx context.Context, code domain.Role) (*domain.RoleRecord, error) {
	query := `
		SELECT id, code
		FROM roles
		WHERE code = $1
	`
	var (
		rec domain.RoleRecord
		raw string
	)
	err := r.DB.QueryRowContext(ctx, query, string(code)).Scan(&rec.ID, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("role %q: %w", code, domain.ErrNotFound)
		}
		return nil, err
	}
	if rec.Code, err = domain.ParseRole(raw); err != nil {
		return nil, err
	}
	return &rec, nil
}
