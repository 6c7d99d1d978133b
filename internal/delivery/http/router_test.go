package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"conferencehub/internal/delivery/http/controllers"
	"conferencehub/internal/domain"
)

type tokenTable map[string]domain.Principal

func (t tokenTable) Verify(token string) (*domain.Principal, error) {
	p, ok := t[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &p, nil
}

type stubCatalog struct{}

func (stubCatalog) ListDirections(context.Context) ([]*domain.Direction, error) {
	return []*domain.Direction{}, nil
}

func (stubCatalog) ListCities(context.Context) ([]*domain.City, error) {
	return []*domain.City{}, nil
}

type stubUsers struct{}

func (stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (stubUsers) UpdateProfile(_ context.Context, id string, _ domain.ProfileUpdate) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

// Services other than catalog and users are nil: every request below is
// answered before reaching them.
func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	c := Controllers{
		Auth:     controllers.NewAuthController(logger, nil),
		User:     controllers.NewUserController(logger, stubUsers{}),
		Catalog:  controllers.NewCatalogController(logger, stubCatalog{}),
		Event:    controllers.NewEventController(logger, nil),
		Activity: controllers.NewActivityController(logger, nil),
		Staff:    controllers.NewStaffController(logger, nil),
		Attendee: controllers.NewAttendeeController(logger, nil),
	}
	tokens := tokenTable{
		"org":  {UserID: "org-1", Role: domain.RoleOrganizer},
		"part": {UserID: "user-1", Role: domain.RoleParticipant},
		"jury": {UserID: "jury-1", Role: domain.RoleJury},
		"mod":  {UserID: "mod-1", Role: domain.RoleModerator},
	}
	return NewRouter(c, tokens, logger)
}

func TestRouter_Access(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		target     string
		token      string
		wantStatus int
	}{
		{"public catalog", http.MethodGet, "/directions", "", http.StatusOK},
		{"public cities", http.MethodGet, "/cities", "", http.StatusOK},
		{"public event detail reaches handler", http.MethodGet, "/events/not-a-uuid", "", http.StatusBadRequest},
		{"profile needs token", http.MethodGet, "/users/me", "", http.StatusUnauthorized},
		{"profile with token", http.MethodGet, "/users/me", "jury", http.StatusOK},
		{"bad token", http.MethodGet, "/users/me", "forged", http.StatusUnauthorized},
		{"organizer route as guest", http.MethodGet, "/organizer/activities", "", http.StatusUnauthorized},
		{"organizer route as participant", http.MethodGet, "/organizer/activities", "part", http.StatusForbidden},
		{"organizer route as organizer", http.MethodGet, "/organizer/activities?sort=sideways", "org", http.StatusBadRequest},
		{"account creation as guest", http.MethodPost, "/organizer/users", "", http.StatusUnauthorized},
		{"account creation as jury", http.MethodPost, "/organizer/users", "jury", http.StatusForbidden},
		{"jury route as moderator", http.MethodPost, "/activities/x/jury", "mod", http.StatusForbidden},
		{"jury route as jury", http.MethodPost, "/activities/x/jury", "jury", http.StatusBadRequest},
		{"moderator route as jury", http.MethodPost, "/activities/x/moderator", "jury", http.StatusForbidden},
		{"register as organizer", http.MethodPost, "/events/x/registrations", "org", http.StatusForbidden},
		{"register as participant", http.MethodPost, "/events/x/registrations", "part", http.StatusBadRequest},
		{"participants as participant", http.MethodGet, "/events/x/participants", "part", http.StatusForbidden},
		{"participants as moderator", http.MethodGet, "/events/x/participants", "mod", http.StatusBadRequest},
		{"wrong method", http.MethodDelete, "/directions", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test"+tt.target, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
