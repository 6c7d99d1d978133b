package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencehub/internal/domain"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{
		DB: db,
	}
}

func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (event_id, user_id, registration_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.EventID, reg.UserID, reg.RegisteredAt, reg.Status).
		Scan(&reg.ID)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrConflict
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	default:
		return err
	}
}

func (r *eventRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, user_id, status, registration_date
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg := &domain.EventRegistration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) Delete(ctx context.Context, eventID, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
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

// ListByUserID returns the user's registrations with their events, soonest event first.
func (r *eventRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EventRegistrationWithEvent, error) {
	query := `
		SELECT reg.id, reg.event_id, reg.user_id, reg.status, reg.registration_date, ` + eventViewColumns +
		eventViewFrom + `
		JOIN event_registrations reg ON reg.event_id = e.id
		WHERE reg.user_id = $1
		ORDER BY e.start_date, e.name
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.EventRegistrationWithEvent, 0)
	for rows.Next() {
		reg := &domain.EventRegistration{}
		ev := &domain.EventView{}
		evDest, finish := eventViewDest(ev)
		dest := append([]any{&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt}, evDest...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		finish()
		out = append(out, &domain.EventRegistrationWithEvent{Registration: reg, Event: ev})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRegistrationRepository) ListParticipants(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	query := `
		SELECT u.id, u.id_number, u.full_name, u.email, u.phone, reg.status, reg.registration_date
		FROM event_registrations reg
		JOIN users u ON u.id = reg.user_id
		WHERE reg.event_id = $1
		ORDER BY reg.registration_date, u.full_name
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Participant, 0)
	for rows.Next() {
		p := &domain.Participant{}
		var phone sql.NullString
		if err := rows.Scan(&p.UserID, &p.IDNumber, &p.FullName, &p.Email, &phone, &p.Status, &p.RegisteredAt); err != nil {
			return nil, err
		}
		if phone.Valid {
			p.Phone = &phone.String
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
