package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateIDNumber  = errors.New("id number already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
)

// Role is the closed set of roles a caller can act as.
// RoleGuest is never stored; it is what an unauthenticated caller gets.
type Role string

const (
	RoleGuest       Role = "guest"
	RoleParticipant Role = "participant"
	RoleModerator   Role = "moderator"
	RoleJury        Role = "jury"
	RoleOrganizer   Role = "organizer"
)

// ParseRole parses a stored role code. Guest and unknown codes are rejected.
func ParseRole(code string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(code))); r {
	case RoleParticipant, RoleModerator, RoleJury, RoleOrganizer:
		return r, nil
	case RoleGuest:
		return "", fmt.Errorf("%w: guest is not an assignable role", ErrInvalidInput)
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, code)
	}
}

// CanViewParticipants reports whether the role may list an event's registered participants.
func (r Role) CanViewParticipants() bool {
	switch r {
	case RoleModerator, RoleJury, RoleOrganizer:
		return true
	case RoleParticipant, RoleGuest:
		return false
	default:
		return false
	}
}

// CanRegister reports whether the role may register for events as an attendee.
func (r Role) CanRegister() bool {
	switch r {
	case RoleParticipant:
		return true
	case RoleModerator, RoleJury, RoleOrganizer, RoleGuest:
		return false
	default:
		return false
	}
}

// CanManageAccounts reports whether the role may create moderator, jury and organizer accounts.
func (r Role) CanManageAccounts() bool {
	switch r {
	case RoleOrganizer:
		return true
	case RoleParticipant, RoleModerator, RoleJury, RoleGuest:
		return false
	default:
		return false
	}
}

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	UserID string
	Role   Role
}

// User represents a registered user.
// swagger:model User
type User struct {
	ID           string     `json:"id"`
	IDNumber     string     `json:"id_number"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone"`
	BirthDate    *time.Time `json:"birth_date"`
	PhotoPath    *string    `json:"photo_path"`
	Role         Role       `json:"role"`
	PasswordHash string     `json:"-"`
	Salt         string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(idNumber, fullName, email string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		IDNumber:  idNumber,
		FullName:  fullName,
		Email:     email,
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RoleRecord is a row of the roles catalog.
type RoleRecord struct {
	ID   string `json:"id"`
	Code Role   `json:"code"`
}

// ProfileUpdate carries the optional profile fields of PATCH /users/me.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	FullName        *string
	Email           *string
	Phone           *string
	BirthDate       *time.Time
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(user *User, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated caller.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	// Create inserts the user with the given role catalog ID.
	Create(ctx context.Context, user *User, roleID string) error
	GetByIDNumber(ctx context.Context, idNumber string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// RoleRepository defines the interface for the roles catalog
type RoleRepository interface {
	GetByCode(ctx context.Context, code Role) (*RoleRecord, error)
}

// AuthService registers users and authenticates them by ID number and password.
type AuthService interface {
	// SignUp creates a participant account; other roles get ErrForbidden.
	SignUp(ctx context.Context, idNumber, password, fullName, email string, role Role) (*User, error)
	// CreateAccount lets an organizer provision an account with any stored role.
	CreateAccount(ctx context.Context, caller Principal, idNumber, password, fullName, email string, role Role) (*User, error)
	Login(ctx context.Context, idNumber, password string) (token string, user *User, err error)
}

// UserService defines the business logic for the user profile.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error)
}
