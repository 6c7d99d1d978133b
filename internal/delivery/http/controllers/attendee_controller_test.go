package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

func TestAttendeeController_RegisterForEvent(t *testing.T) {
	reg := &domain.EventRegistration{ID: "reg-1", EventID: testEventID, UserID: "user-1", Status: domain.RegistrationStatusRegistered, RegisteredAt: time.Now()}

	tests := []struct {
		name         string
		eventID      string
		caller       *domain.Principal
		created      bool
		svcErr       error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "new registration", eventID: testEventID, caller: participantCaller, created: true, wantStatus: http.StatusCreated},
		{name: "already registered", eventID: testEventID, caller: participantCaller, wantStatus: http.StatusOK},
		{name: "invalid event id", eventID: "abc", caller: participantCaller, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "no caller", eventID: testEventID, wantStatus: http.StatusUnauthorized, wantBodyCode: helpers.ErrCodeUnauthorized},
		{name: "event not found", eventID: testEventID, caller: participantCaller, svcErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound},
		{name: "role cannot register", eventID: testEventID, caller: juryCaller, svcErr: domain.ErrForbidden, wantStatus: http.StatusForbidden, wantBodyCode: helpers.ErrCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAttendeeService{reg: reg, created: tt.created, err: tt.svcErr}
			req := newRequest(http.MethodPost, "/events/"+tt.eventID+"/registrations", "", tt.caller)
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			NewAttendeeController(testLogger(), svc).RegisterForEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var got domain.EventRegistration
			envelope := decodeEnvelope(t, rr, &got)
			if tt.caller != nil && tt.eventID == testEventID {
				assert.Equal(t, *tt.caller, svc.lastCaller)
			}
			if tt.wantBodyCode == "" {
				assert.Equal(t, "reg-1", got.ID)
				assert.Equal(t, domain.RegistrationStatusRegistered, got.Status)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}
}

func TestAttendeeController_MyRegistration(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		svcErr     error
		wantStatus int
	}{
		{"get", http.MethodGet, nil, http.StatusOK},
		{"get not registered", http.MethodGet, domain.ErrNotFound, http.StatusNotFound},
		{"cancel", http.MethodDelete, nil, http.StatusOK},
		{"cancel not registered", http.MethodDelete, domain.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAttendeeService{reg: &domain.EventRegistration{ID: "reg-1"}, err: tt.svcErr}
			ctrl := NewAttendeeController(testLogger(), svc)
			req := newRequest(tt.method, "/events/"+testEventID+"/registrations/me", "", participantCaller)
			req.SetPathValue("eventID", testEventID)
			rr := httptest.NewRecorder()

			if tt.method == http.MethodGet {
				ctrl.GetMyRegistration(rr, req)
			} else {
				ctrl.CancelRegistration(rr, req)
			}

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestAttendeeController_ListMyRegisteredEvents(t *testing.T) {
	svc := &mockAttendeeService{mine: []*domain.EventRegistrationWithEvent{
		{Registration: &domain.EventRegistration{ID: "reg-1"}, Event: &domain.EventView{Event: domain.Event{ID: testEventID, Name: "GopherCon"}}},
	}}
	rr := httptest.NewRecorder()

	NewAttendeeController(testLogger(), svc).ListMyRegisteredEvents(rr, newRequest(http.MethodGet, "/users/me/registrations", "", participantCaller))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []domain.EventRegistrationWithEvent
	decodeEnvelope(t, rr, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "GopherCon", got[0].Event.Name)
}

func TestAttendeeController_ListParticipants(t *testing.T) {
	phone := "+49 30 1234"
	tests := []struct {
		name       string
		caller     *domain.Principal
		svcErr     error
		wantStatus int
	}{
		{"jury sees participants", juryCaller, nil, http.StatusOK},
		{"organizer sees participants", organizerCaller, nil, http.StatusOK},
		{"participant forbidden", participantCaller, domain.ErrForbidden, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAttendeeService{participants: []*domain.Participant{{UserID: "user-1", FullName: "Ana", Phone: &phone}}, err: tt.svcErr}
			req := newRequest(http.MethodGet, "/events/"+testEventID+"/participants", "", tt.caller)
			req.SetPathValue("eventID", testEventID)
			rr := httptest.NewRecorder()

			NewAttendeeController(testLogger(), svc).ListParticipants(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, *tt.caller, svc.lastCaller)
			if tt.wantStatus == http.StatusOK {
				var got []domain.Participant
				decodeEnvelope(t, rr, &got)
				require.Len(t, got, 1)
				assert.Equal(t, phone, *got[0].Phone)
			}
		})
	}
}
