package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
)

const (
	testEventID    = "5b0c7e0e-6a43-4c47-9a34-1f1d2f0a0b01"
	testActivityID = "8d2f4a6c-1b3e-4f5a-9c7d-2e4f6a8b0c02"
	testDirection  = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c04"
	testCity       = "1b2c3d4e-5f6a-4b7c-9d8e-0f1a2b3c4d05"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newRequest builds a request with an optional JSON body and caller.
func newRequest(method, target, body string, caller *domain.Principal) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://test"+target, r)
	if caller != nil {
		req = req.WithContext(middleware.SetPrincipal(req.Context(), *caller))
	}
	return req
}

// decodeEnvelope decodes the response envelope and, when dest is not nil, re-decodes data into it.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if dest != nil && envelope.Data != nil {
		b, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, dest))
	}
	return envelope
}

var (
	organizerCaller   = &domain.Principal{UserID: "org-1", Role: domain.RoleOrganizer}
	participantCaller = &domain.Principal{UserID: "user-1", Role: domain.RoleParticipant}
	juryCaller        = &domain.Principal{UserID: "jury-1", Role: domain.RoleJury}
	moderatorCaller   = &domain.Principal{UserID: "mod-1", Role: domain.RoleModerator}
)

type mockAuthService struct {
	user       *domain.User
	token      string
	err        error
	lastRole   domain.Role
	lastIDNum  string
	lastCaller domain.Principal
}

func (m *mockAuthService) SignUp(_ context.Context, idNumber, _, _, _ string, role domain.Role) (*domain.User, error) {
	m.lastIDNum = idNumber
	m.lastRole = role
	return m.user, m.err
}

func (m *mockAuthService) CreateAccount(_ context.Context, caller domain.Principal, idNumber, _, _, _ string, role domain.Role) (*domain.User, error) {
	m.lastCaller = caller
	m.lastIDNum = idNumber
	m.lastRole = role
	return m.user, m.err
}

func (m *mockAuthService) Login(_ context.Context, idNumber, _ string) (string, *domain.User, error) {
	m.lastIDNum = idNumber
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

type mockUserService struct {
	user       *domain.User
	err        error
	lastID     string
	lastUpdate domain.ProfileUpdate
}

func (m *mockUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.lastID = id
	return m.user, m.err
}

func (m *mockUserService) UpdateProfile(_ context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	m.lastID = id
	m.lastUpdate = upd
	return m.user, m.err
}

type mockCatalogService struct {
	directions []*domain.Direction
	cities     []*domain.City
	err        error
}

func (m *mockCatalogService) ListDirections(context.Context) ([]*domain.Direction, error) {
	return m.directions, m.err
}

func (m *mockCatalogService) ListCities(context.Context) ([]*domain.City, error) {
	return m.cities, m.err
}

type mockEventService struct {
	events     []*domain.EventView
	total      int
	detail     *domain.EventDetail
	ics        []byte
	event      *domain.Event
	generated  int
	err        error
	lastFilter domain.EventFilter
	lastParams domain.PaginationParams
	lastOwner  string
	lastInput  domain.EventInput
}

func (m *mockEventService) List(_ context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.EventView, int, error) {
	m.lastFilter = f
	m.lastParams = p
	return m.events, m.total, m.err
}

func (m *mockEventService) GetDetail(context.Context, string) (*domain.EventDetail, error) {
	return m.detail, m.err
}

func (m *mockEventService) ExportCalendar(context.Context, string) ([]byte, error) {
	return m.ics, m.err
}

func (m *mockEventService) Create(_ context.Context, organizerID string, in domain.EventInput) (*domain.Event, int, error) {
	m.lastOwner = organizerID
	m.lastInput = in
	return m.event, m.generated, m.err
}

func (m *mockEventService) Update(_ context.Context, organizerID, _ string, in domain.EventInput) (*domain.Event, error) {
	m.lastOwner = organizerID
	m.lastInput = in
	return m.event, m.err
}

func (m *mockEventService) Delete(_ context.Context, organizerID, _ string) error {
	m.lastOwner = organizerID
	return m.err
}

type mockActivityService struct {
	slots       *domain.SlotAvailability
	views       []*domain.ActivityView
	activity    *domain.Activity
	err         error
	lastExclude string
	lastDay     int
	lastFilter  domain.ActivityFilter
	lastInput   domain.ActivityInput
}

func (m *mockActivityService) AvailableSlots(_ context.Context, _, _ string, day int, exclude string) (*domain.SlotAvailability, error) {
	m.lastDay = day
	m.lastExclude = exclude
	return m.slots, m.err
}

func (m *mockActivityService) ListForOrganizer(_ context.Context, f domain.ActivityFilter) ([]*domain.ActivityView, error) {
	m.lastFilter = f
	return m.views, m.err
}

func (m *mockActivityService) Create(_ context.Context, _ string, in domain.ActivityInput) (*domain.Activity, error) {
	m.lastInput = in
	return m.activity, m.err
}

func (m *mockActivityService) Update(_ context.Context, _, _ string, in domain.ActivityInput) (*domain.Activity, error) {
	m.lastInput = in
	return m.activity, m.err
}

func (m *mockActivityService) Delete(context.Context, string, string) error {
	return m.err
}

type mockStaffService struct {
	activities []*domain.Activity
	moderator  *domain.ModeratorAssignment
	jury       *domain.JuryAssignment
	err        error
	lastCaller string
}

func (m *mockStaffService) AvailableForModeration(_ context.Context, moderatorID, _ string) ([]*domain.Activity, error) {
	m.lastCaller = moderatorID
	return m.activities, m.err
}

func (m *mockStaffService) AssignModerator(_ context.Context, moderatorID, _ string) (*domain.ModeratorAssignment, error) {
	m.lastCaller = moderatorID
	return m.moderator, m.err
}

func (m *mockStaffService) AvailableForJury(_ context.Context, juryID, _ string) ([]*domain.Activity, error) {
	m.lastCaller = juryID
	return m.activities, m.err
}

func (m *mockStaffService) MyJuryActivities(_ context.Context, juryID, _ string) ([]*domain.Activity, error) {
	m.lastCaller = juryID
	return m.activities, m.err
}

func (m *mockStaffService) JoinJury(_ context.Context, juryID, _ string) (*domain.JuryAssignment, error) {
	m.lastCaller = juryID
	return m.jury, m.err
}

func (m *mockStaffService) LeaveJury(_ context.Context, juryID, _ string) error {
	m.lastCaller = juryID
	return m.err
}

type mockAttendeeService struct {
	reg          *domain.EventRegistration
	created      bool
	mine         []*domain.EventRegistrationWithEvent
	participants []*domain.Participant
	err          error
	lastCaller   domain.Principal
}

func (m *mockAttendeeService) RegisterForEvent(_ context.Context, caller domain.Principal, _ string) (*domain.EventRegistration, bool, error) {
	m.lastCaller = caller
	return m.reg, m.created, m.err
}

func (m *mockAttendeeService) GetMyRegistration(context.Context, string, string) (*domain.EventRegistration, error) {
	return m.reg, m.err
}

func (m *mockAttendeeService) CancelRegistration(context.Context, string, string) error {
	return m.err
}

func (m *mockAttendeeService) ListMyRegisteredEvents(context.Context, string) ([]*domain.EventRegistrationWithEvent, error) {
	return m.mine, m.err
}

func (m *mockAttendeeService) ListParticipants(_ context.Context, caller domain.Principal, _ string) ([]*domain.Participant, error) {
	m.lastCaller = caller
	return m.participants, m.err
}
