package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencehub/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

const userSelect = `
	SELECT u.id, u.id_number, u.full_name, u.email, u.phone, u.birth_date, u.photo_path,
	       r.code, u.password_hash, u.salt, u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON r.id = u.role_id
`

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var (
		phone, photo sql.NullString
		birth        sql.NullTime
		role         string
	)
	err := row.Scan(&u.ID, &u.IDNumber, &u.FullName, &u.Email, &phone, &birth, &photo,
		&role, &u.PasswordHash, &u.Salt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if photo.Valid {
		u.PhotoPath = &photo.String
	}
	if birth.Valid {
		u.BirthDate = &birth.Time
	}
	if u.Role, err = domain.ParseRole(role); err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return u, nil
}

// mapUserWriteError maps unique violations on users to domain errors.
func mapUserWriteError(err error) error {
	if !isUniqueViolation(err) {
		return err
	}
	switch constraintOf(err) {
	case "users_id_number_key":
		return domain.ErrDuplicateIDNumber
	default:
		return domain.ErrDuplicateEmail
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User, roleID string) error {
	query := `
		INSERT INTO users (id_number, full_name, email, phone, birth_date, photo_path, role_id, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.IDNumber, u.FullName, u.Email, u.Phone, u.BirthDate, u.PhotoPath, roleID,
		u.PasswordHash, u.Salt, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return mapUserWriteError(err)
	}
	return nil
}

func (r *userRepository) GetByIDNumber(ctx context.Context, idNumber string) (*domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE u.id_number = $1`, idNumber))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE u.id = $1`, id))
}

// Update writes the profile fields and credentials. Role and id_number are immutable here.
func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET full_name = $1, email = $2, phone = $3, birth_date = $4, photo_path = $5,
		    password_hash = $6, salt = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := r.DB.ExecContext(ctx, query,
		u.FullName, u.Email, u.Phone, u.BirthDate, u.PhotoPath,
		u.PasswordHash, u.Salt, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return mapUserWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
