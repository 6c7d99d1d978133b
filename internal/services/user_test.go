package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencehub/internal/domain"
)

func strPtr(s string) *string { return &s }

func newTestUserService() (*userService, *fakeUserRepo) {
	phone := "+49 30 1234"
	users := newFakeUserRepo(
		&domain.User{ID: "u-1", IDNumber: "100200", FullName: "Ann", Email: "ann@example.com", Phone: &phone,
			Role: domain.RoleParticipant, Salt: "s0", PasswordHash: "s0|old-password"},
		&domain.User{ID: "u-2", IDNumber: "100201", FullName: "Bob", Email: "bob@example.com", Role: domain.RoleJury},
	)
	return NewUserService(users, &fakeHasher{}, testTimeout).(*userService), users
}

func TestUserService_GetByID(t *testing.T) {
	svc, _ := newTestUserService()

	u, err := svc.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleParticipant, u.Role)

	_, err = svc.GetByID(context.Background(), "u-404")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	birth := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		upd     domain.ProfileUpdate
		wantErr error
		check   func(t *testing.T, u *domain.User)
	}{
		{
			name: "contact fields",
			upd:  domain.ProfileUpdate{FullName: strPtr(" Ann Smith "), Email: strPtr("ANN.SMITH@example.com"), Phone: strPtr(""), BirthDate: &birth},
			check: func(t *testing.T, u *domain.User) {
				assert.Equal(t, "Ann Smith", u.FullName)
				assert.Equal(t, "ann.smith@example.com", u.Email)
				assert.Nil(t, u.Phone)
				require.NotNil(t, u.BirthDate)
				assert.Equal(t, birth, *u.BirthDate)
				assert.Equal(t, "s0|old-password", u.PasswordHash)
			},
		},
		{
			name: "password change",
			upd:  domain.ProfileUpdate{CurrentPassword: "old-password", NewPassword: "new-password", ConfirmPassword: "new-password"},
			check: func(t *testing.T, u *domain.User) {
				assert.NotEqual(t, "s0", u.Salt, "new password gets a new salt")
				assert.Equal(t, u.Salt+"|new-password", u.PasswordHash)
			},
		},
		{name: "empty name", upd: domain.ProfileUpdate{FullName: strPtr("  ")}, wantErr: domain.ErrInvalidInput},
		{name: "bad email", upd: domain.ProfileUpdate{Email: strPtr("ann@")}, wantErr: domain.ErrInvalidInput},
		{name: "email taken", upd: domain.ProfileUpdate{Email: strPtr("bob@example.com")}, wantErr: domain.ErrDuplicateEmail},
		{
			name:    "wrong current password",
			upd:     domain.ProfileUpdate{CurrentPassword: "nope", NewPassword: "new-password", ConfirmPassword: "new-password"},
			wantErr: domain.ErrWrongPassword,
		},
		{
			name:    "confirmation mismatch",
			upd:     domain.ProfileUpdate{CurrentPassword: "old-password", NewPassword: "new-password", ConfirmPassword: "new-passw0rd"},
			wantErr: domain.ErrPasswordMismatch,
		},
		{
			name:    "new password too short",
			upd:     domain.ProfileUpdate{CurrentPassword: "old-password", NewPassword: "short", ConfirmPassword: "short"},
			wantErr: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestUserService()

			got, err := svc.UpdateProfile(context.Background(), "u-1", tt.upd)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Ann", users.byID["u-1"].FullName)
				assert.Equal(t, "s0|old-password", users.byID["u-1"].PasswordHash)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
			tt.check(t, users.byID["u-1"])
		})
	}
}

func TestUserService_UpdateProfile_PasswordErrorsAreBadRequests(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.UpdateProfile(context.Background(), "u-1", domain.ProfileUpdate{CurrentPassword: "nope", NewPassword: "x", ConfirmPassword: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "current password is incorrect")
}
