package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("%w: name is required", domain.ErrInvalidInput), http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{fmt.Errorf("%w: day 4 of 3", domain.ErrDayOutOfRange), http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrWrongPassword), http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, helpers.ErrCodeUnauthorized},
		{fmt.Errorf("get event: %w", domain.ErrForbidden), http.StatusForbidden, helpers.ErrCodeForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{domain.ErrSlotUnavailable, http.StatusConflict, helpers.ErrCodeConflict},
		{domain.ErrEventHasActivities, http.StatusConflict, helpers.ErrCodeConflict},
		{domain.ErrActivityHasJury, http.StatusConflict, helpers.ErrCodeConflict},
		{domain.ErrAlreadyAssigned, http.StatusConflict, helpers.ErrCodeConflict},
		{domain.ErrHasModerator, http.StatusConflict, helpers.ErrCodeConflict},
		{domain.ErrDuplicateEmail, http.StatusConflict, helpers.ErrCodeConflict},
		{domain.ErrDuplicateIDNumber, http.StatusConflict, helpers.ErrCodeConflict},
		{errors.New("connection refused"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := statusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
