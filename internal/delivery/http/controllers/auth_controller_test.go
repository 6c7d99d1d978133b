package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

func TestAuthController_SignUp(t *testing.T) {
	user := &domain.User{ID: "user-1", IDNumber: "ID-1", FullName: "Ana Perez", Email: "ana@example.com", Role: domain.RoleParticipant}

	tests := []struct {
		name         string
		body         string
		svcErr       error
		wantStatus   int
		wantBodyCode string
		wantRole     domain.Role
	}{
		{
			name:       "success with default role",
			body:       `{"id_number":"ID-1","password":"secret123","full_name":"Ana Perez","email":"ana@example.com"}`,
			wantStatus: http.StatusCreated,
			wantRole:   "",
		},
		{
			name:         "staff role refused",
			body:         `{"id_number":"ID-1","password":"secret123","full_name":"Ana Perez","email":"ana@example.com","role":"jury"}`,
			svcErr:       domain.ErrForbidden,
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
		{
			name:         "missing fields",
			body:         `{"id_number":"","password":""}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unknown field rejected",
			body:         `{"id_number":"ID-1","password":"x","full_name":"A","email":"a@b.co","admin":true}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "duplicate id number",
			body:         `{"id_number":"ID-1","password":"secret123","full_name":"Ana Perez","email":"ana@example.com"}`,
			svcErr:       domain.ErrDuplicateIDNumber,
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
		{
			name:         "service validation",
			body:         `{"id_number":"ID-1","password":"short","full_name":"Ana Perez","email":"ana@example.com"}`,
			svcErr:       domain.ErrInvalidInput,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{user: user, err: tt.svcErr}
			ctrl := NewAuthController(testLogger(), svc)
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, newRequest(http.MethodPost, "/auth/signup", tt.body, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			var got domain.User
			envelope := decodeEnvelope(t, rr, &got)
			if tt.wantStatus == http.StatusCreated {
				assert.Nil(t, envelope.Error)
				assert.Equal(t, "user-1", got.ID)
				assert.Equal(t, tt.wantRole, svc.lastRole)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}
}

func TestAuthController_CreateAccount(t *testing.T) {
	user := &domain.User{ID: "user-9", IDNumber: "ID-9", FullName: "Jan Juror", Email: "jan@example.com", Role: domain.RoleJury}
	body := `{"id_number":"ID-9","password":"secret123","full_name":"Jan Juror","email":"jan@example.com","role":"jury"}`

	tests := []struct {
		name         string
		caller       *domain.Principal
		svcErr       error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "created", caller: organizerCaller, wantStatus: http.StatusCreated},
		{name: "no caller", wantStatus: http.StatusUnauthorized, wantBodyCode: helpers.ErrCodeUnauthorized},
		{name: "not an organizer", caller: participantCaller, svcErr: domain.ErrForbidden, wantStatus: http.StatusForbidden, wantBodyCode: helpers.ErrCodeForbidden},
		{name: "duplicate email", caller: organizerCaller, svcErr: domain.ErrDuplicateEmail, wantStatus: http.StatusConflict, wantBodyCode: helpers.ErrCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{user: user, err: tt.svcErr}
			rr := httptest.NewRecorder()

			NewAuthController(testLogger(), svc).CreateAccount(rr, newRequest(http.MethodPost, "/organizer/users", body, tt.caller))

			require.Equal(t, tt.wantStatus, rr.Code)
			var got domain.User
			envelope := decodeEnvelope(t, rr, &got)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
				return
			}
			assert.Equal(t, "user-9", got.ID)
			assert.Equal(t, *organizerCaller, svc.lastCaller)
			assert.Equal(t, domain.RoleJury, svc.lastRole)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	user := &domain.User{ID: "user-1", IDNumber: "ID-1", Role: domain.RoleOrganizer}

	tests := []struct {
		name         string
		body         string
		svcErr       error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "success", body: `{"id_number":" ID-1 ","password":"secret123"}`, wantStatus: http.StatusOK},
		{name: "invalid credentials", body: `{"id_number":"ID-1","password":"nope"}`, svcErr: domain.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantBodyCode: helpers.ErrCodeUnauthorized},
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "missing password", body: `{"id_number":"ID-1"}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "store failure", body: `{"id_number":"ID-1","password":"secret123"}`, svcErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantBodyCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{user: user, token: "jwt-token", err: tt.svcErr}
			ctrl := NewAuthController(testLogger(), svc)
			rr := httptest.NewRecorder()

			ctrl.Login(rr, newRequest(http.MethodPost, "/auth/login", tt.body, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			var got LoginResponse
			envelope := decodeEnvelope(t, rr, &got)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "jwt-token", got.Token)
				assert.Equal(t, "Bearer", got.TokenType)
				require.NotNil(t, got.User)
				assert.Equal(t, domain.RoleOrganizer, got.User.Role)
				assert.Equal(t, "ID-1", svc.lastIDNum)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, envelope.Error.Message, assert.AnError.Error())
			}
		})
	}
}
