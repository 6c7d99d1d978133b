package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencehub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `e.id, e.name, e.direction_id, e.city_id, e.start_date, e.end_date, e.days_count,
	e.logo_path, e.description, e.organizer_id, e.created_at, e.updated_at`

const eventViewColumns = eventColumns + `,
	d.name, c.name, u.full_name,
	(SELECT COUNT(*) FROM activities a WHERE a.event_id = e.id),
	e.end_date >= CURRENT_DATE`

const eventViewFrom = `
	FROM events e
	JOIN directions d ON d.id = e.direction_id
	JOIN cities c ON c.id = e.city_id
	JOIN users u ON u.id = e.organizer_id
`

// eventDest returns scan destinations for eventColumns and a finisher that
// copies nullable columns into e.
func eventDest(e *domain.Event) ([]any, func()) {
	var logo, desc sql.NullString
	dest := []any{&e.ID, &e.Name, &e.DirectionID, &e.CityID, &e.StartDate, &e.EndDate, &e.DaysCount,
		&logo, &desc, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt}
	return dest, func() {
		if logo.Valid {
			e.LogoPath = &logo.String
		}
		if desc.Valid {
			e.Description = &desc.String
		}
	}
}

func eventViewDest(v *domain.EventView) ([]any, func()) {
	dest, finish := eventDest(&v.Event)
	dest = append(dest, &v.DirectionName, &v.CityName, &v.OrganizerName, &v.ActivityCount, &v.IsUpcoming)
	return dest, finish
}

func scanEventView(row rowScanner) (*domain.EventView, error) {
	v := &domain.EventView{}
	dest, finish := eventViewDest(v)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	finish()
	return v, nil
}

// mapEventWriteError maps constraint violations on event writes.
func mapEventWriteError(err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: unknown direction, city or organizer", domain.ErrInvalidInput)
	}
	return err
}

func (r *eventRepository) CreateWithActivities(ctx context.Context, e *domain.Event, activities []*domain.Activity) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO events (name, direction_id, city_id, start_date, end_date, days_count, logo_path, description, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		e.Name, e.DirectionID, e.CityID, e.StartDate, e.EndDate, e.DaysCount,
		e.LogoPath, e.Description, e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return mapEventWriteError(err)
	}

	for _, a := range activities {
		a.EventID = e.ID
		if err = insertActivity(ctx, tx, a); err != nil {
			return fmt.Errorf("insert activity day %d %s: %w", a.Day, a.StartTime, err)
		}
	}
	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	e := &domain.Event{}
	dest, finish := eventDest(e)
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	finish()
	return e, nil
}

func (r *eventRepository) GetView(ctx context.Context, id string) (*domain.EventView, error) {
	query := `SELECT ` + eventViewColumns + eventViewFrom + ` WHERE e.id = $1`
	v, err := scanEventView(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func eventFilterWhere(f domain.EventFilter) *where {
	w := &where{}
	if f.OrganizerID != "" {
		w.add("e.organizer_id = $%d", f.OrganizerID)
	}
	if f.DirectionID != "" {
		w.add("e.direction_id = $%d", f.DirectionID)
	}
	if f.From != nil {
		w.add("e.start_date >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("e.end_date <= $%d", *f.To)
	}
	if f.Search != "" {
		w.add("e.name ILIKE $%d", likePattern(f.Search))
	}
	return w
}

// List returns one page of events ordered by start date, and the total number of matches.
func (r *eventRepository) List(ctx context.Context, f domain.EventFilter, params domain.PaginationParams) ([]*domain.EventView, int, error) {
	w := eventFilterWhere(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM events e ` + w.String()
	if err := r.DB.QueryRowContext(ctx, countQuery, w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := append(w.args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY e.start_date, e.name LIMIT $%d OFFSET $%d`,
		eventViewColumns, eventViewFrom, w.String(), len(args)-1, len(args))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.EventView, 0)
	for rows.Next() {
		v, err := scanEventView(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, direction_id = $2, city_id = $3, start_date = $4, end_date = $5, days_count = $6,
		    logo_path = $7, description = $8, updated_at = $9
		WHERE id = $10
	`
	res, err := r.DB.ExecContext(ctx, query,
		e.Name, e.DirectionID, e.CityID, e.StartDate, e.EndDate, e.DaysCount,
		e.LogoPath, e.Description, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return mapEventWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the event and its registrations. Events that still have activities are refused.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEventHasActivities
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
