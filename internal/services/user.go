package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

type userService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	contextTimeout time.Duration
}

// NewUserService creates a UserService for profile reads and updates.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		hasher:         hasher,
		contextTimeout: timeout,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if upd.FullName != nil {
		name := strings.TrimSpace(*upd.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: full_name must not be empty", domain.ErrInvalidInput)
		}
		user.FullName = name
	}
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	if upd.Phone != nil {
		if phone := strings.TrimSpace(*upd.Phone); phone != "" {
			user.Phone = &phone
		} else {
			user.Phone = nil
		}
	}
	if upd.BirthDate != nil {
		bd := *upd.BirthDate
		user.BirthDate = &bd
	}

	if upd.NewPassword != "" || upd.ConfirmPassword != "" || upd.CurrentPassword != "" {
		if err := s.changePassword(user, upd); err != nil {
			return nil, err
		}
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// changePassword verifies the current password and stores a freshly salted hash of the new one.
func (s *userService) changePassword(user *domain.User, upd domain.ProfileUpdate) error {
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, upd.CurrentPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrWrongPassword)
		}
		return fmt.Errorf("compare password: %w", err)
	}
	if upd.NewPassword != upd.ConfirmPassword {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrPasswordMismatch)
	}
	if len(upd.NewPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, upd.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Salt = salt
	user.PasswordHash = hash
	return nil
}
