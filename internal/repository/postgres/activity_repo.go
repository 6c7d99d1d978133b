package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencehub/internal/domain"
)

type activityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{DB: db}
}

const activityColumns = `a.id, a.event_id, a.day, a.start_time, a.duration_minutes, a.name, a.description`

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func activityDest(a *domain.Activity) ([]any, func()) {
	var dur sql.NullInt64
	dest := []any{&a.ID, &a.EventID, &a.Day, &a.StartTime, &dur, &a.Name, &a.Description}
	return dest, func() {
		if dur.Valid {
			a.DurationMinutes = int(dur.Int64)
		} else {
			a.DurationMinutes = domain.ActivityDurationMinutes
		}
	}
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	a := &domain.Activity{}
	dest, finish := activityDest(a)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	finish()
	return a, nil
}

func collectActivities(rows *sql.Rows) ([]*domain.Activity, error) {
	defer rows.Close()
	out := make([]*domain.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// mapActivityWriteError maps constraint violations on activity writes.
func mapActivityWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrSlotUnavailable
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: event does not exist", domain.ErrInvalidInput)
	default:
		return err
	}
}

func insertActivity(ctx context.Context, q queryRower, a *domain.Activity) error {
	query := `
		INSERT INTO activities (event_id, day, start_time, duration_minutes, name, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query, a.EventID, a.Day, a.StartTime, a.Duration(), a.Name, a.Description).Scan(&a.ID)
	if err != nil {
		return mapActivityWriteError(err)
	}
	return nil
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	return insertActivity(ctx, r.DB, a)
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.id = $1`
	a, err := scanActivity(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *activityRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.event_id = $1 ORDER BY a.day, a.start_time`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

func (r *activityRepository) ListByEventDay(ctx context.Context, eventID string, day int) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.event_id = $1 AND a.day = $2 ORDER BY a.start_time`
	rows, err := r.DB.QueryContext(ctx, query, eventID, day)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

// ListForOrganizer lists activities of the organizer's events ordered by event start, day and start time.
func (r *activityRepository) ListForOrganizer(ctx context.Context, f domain.ActivityFilter) ([]*domain.ActivityView, error) {
	w := &where{}
	w.add("e.organizer_id = $%d", f.OrganizerID)
	if f.EventID != "" {
		w.add("a.event_id = $%d", f.EventID)
	}
	if f.Search != "" {
		w.add("(a.name ILIKE $%[1]d OR a.description ILIKE $%[1]d)", likePattern(f.Search))
	}
	dir := "ASC"
	if f.Sort == domain.SortDesc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`
		SELECT %s, e.name, e.start_date,
		       EXISTS (SELECT 1 FROM jury_activities j WHERE j.activity_id = a.id)
		FROM activities a
		JOIN events e ON e.id = a.event_id
		%s
		ORDER BY e.start_date %[3]s, a.day %[3]s, a.start_time %[3]s`,
		activityColumns, w.String(), dir)

	rows, err := r.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.ActivityView, 0)
	for rows.Next() {
		var (
			a         domain.Activity
			eventName string
			start     sql.NullTime
			hasJury   bool
		)
		dest, finish := activityDest(&a)
		if err := rows.Scan(append(dest, &eventName, &start, &hasJury)...); err != nil {
			return nil, err
		}
		finish()
		out = append(out, domain.NewActivityView(&a, eventName, start.Time, hasJury))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *activityRepository) MaxDay(ctx context.Context, eventID string) (int, error) {
	var day int
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(day), 0) FROM activities WHERE event_id = $1`, eventID).Scan(&day)
	return day, err
}

func (r *activityRepository) Update(ctx context.Context, a *domain.Activity) error {
	query := `
		UPDATE activities
		SET event_id = $1, day = $2, start_time = $3, duration_minutes = $4, name = $5, description = $6
		WHERE id = $7
	`
	res, err := r.DB.ExecContext(ctx, query, a.EventID, a.Day, a.StartTime, a.Duration(), a.Name, a.Description, a.ID)
	if err != nil {
		return mapActivityWriteError(err)
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

func (r *activityRepository) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM moderator_activities WHERE activity_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			err = domain.ErrActivityHasJury
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = domain.ErrNotFound
		return err
	}
	return tx.Commit()
}
