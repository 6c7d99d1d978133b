package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"conferencehub/internal/domain"
)

type staffRepository struct {
	DB *sql.DB
}

func NewStaffRepository(db *sql.DB) domain.StaffRepository {
	return &staffRepository{
		DB: db,
	}
}

func (r *staffRepository) AssignModerator(ctx context.Context, m *domain.ModeratorAssignment) error {
	query := `
		INSERT INTO moderator_activities (activity_id, moderator_id, assigned_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, m.ActivityID, m.ModeratorID, m.AssignedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrHasModerator
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	default:
		return err
	}
}

func (r *staffRepository) listActivities(ctx context.Context, query string, args ...any) ([]*domain.Activity, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

func (r *staffRepository) ListNotModeratedBy(ctx context.Context, eventID, moderatorID string) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities a
		WHERE a.event_id = $1
		  AND NOT EXISTS (
		      SELECT 1 FROM moderator_activities m
		      WHERE m.activity_id = a.id AND m.moderator_id = $2
		  )
		ORDER BY a.day, a.start_time
	`
	return r.listActivities(ctx, query, eventID, moderatorID)
}

func (r *staffRepository) AddJury(ctx context.Context, j *domain.JuryAssignment) error {
	query := `
		INSERT INTO jury_activities (activity_id, jury_id, assigned_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, j.ActivityID, j.JuryID, j.AssignedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrAlreadyAssigned
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	default:
		return err
	}
}

func (r *staffRepository) RemoveJury(ctx context.Context, activityID, juryID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jury_activities WHERE activity_id = $1 AND jury_id = $2`, activityID, juryID)
	if err != nil {
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

func (r *staffRepository) ListNotJudgedBy(ctx context.Context, eventID, juryID string) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities a
		WHERE a.event_id = $1
		  AND NOT EXISTS (
		      SELECT 1 FROM jury_activities j
		      WHERE j.activity_id = a.id AND j.jury_id = $2
		  )
		ORDER BY a.day, a.start_time
	`
	return r.listActivities(ctx, query, eventID, juryID)
}

func (r *staffRepository) ListJudgedBy(ctx context.Context, eventID, juryID string) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities a
		JOIN jury_activities j ON j.activity_id = a.id
		WHERE a.event_id = $1 AND j.jury_id = $2
		ORDER BY a.day, a.start_time
	`
	return r.listActivities(ctx, query, eventID, juryID)
}

func (r *staffRepository) CountJury(ctx context.Context, activityID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM jury_activities WHERE activity_id = $1`, activityID).Scan(&n)
	return n, err
}

func (r *staffRepository) ActivitiesWithJury(ctx context.Context, activityIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(activityIDs) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT DISTINCT activity_id FROM jury_activities WHERE activity_id = ANY($1)`,
		pq.Array(activityIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
