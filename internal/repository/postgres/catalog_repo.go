package postgres

import (
	"context"
	"database/sql"

	"conferencehub/internal/domain"
)

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(db *sql.DB) domain.CatalogRepository {
	return &catalogRepository{DB: db}
}

// listNamed reads id/name rows from a catalog table ordered by name.
func listNamed[T any](ctx context.Context, db *sql.DB, table string, build func(id, name string) T) ([]T, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out = append(out, build(id, name))
	}
	return out, rows.Err()
}

func (r *catalogRepository) ListDirections(ctx context.Context) ([]*domain.Direction, error) {
	return listNamed(ctx, r.DB, "directions", func(id, name string) *domain.Direction {
		return &domain.Direction{ID: id, Name: name}
	})
}

func (r *catalogRepository) ListCities(ctx context.Context) ([]*domain.City, error) {
	return listNamed(ctx, r.DB, "cities", func(id, name string) *domain.City {
		return &domain.City{ID: id, Name: name}
	})
}
