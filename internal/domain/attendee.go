package domain

import (
	"context"
	"time"
)

// RegistrationStatusRegistered is the status of an active registration.
const RegistrationStatusRegistered = "registered"

// EventRegistration represents an attendee's registration for an event.
// swagger:model EventRegistration
type EventRegistration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewEventRegistration creates a new EventRegistration. ID is typically set by the repository on create.
func NewEventRegistration(eventID, userID string, registeredAt time.Time) *EventRegistration {
	return &EventRegistration{
		EventID:      eventID,
		UserID:       userID,
		Status:       RegistrationStatusRegistered,
		RegisteredAt: registeredAt,
	}
}

// EventRegistrationWithEvent bundles a registration with its related event.
type EventRegistrationWithEvent struct {
	Registration *EventRegistration `json:"registration"`
	Event        *EventView         `json:"event"`
}

// Participant is a registered user as shown to event staff.
// swagger:model Participant
type Participant struct {
	UserID       string    `json:"user_id"`
	IDNumber     string    `json:"id_number"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// EventRegistrationRepository defines storage operations for event registrations.
type EventRegistrationRepository interface {
	Create(ctx context.Context, reg *EventRegistration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	Delete(ctx context.Context, eventID, userID string) error
	ListByUserID(ctx context.Context, userID string) ([]*EventRegistrationWithEvent, error)
	// ListParticipants returns the event's registered users ordered by registration date.
	ListParticipants(ctx context.Context, eventID string) ([]*Participant, error)
}

// AttendeeService defines attendee-facing operations such as event registration.
type AttendeeService interface {
	// RegisterForEvent registers the caller for the event. Returns (reg, created, err): created is true if a new registration was created, false if already registered.
	// Callers whose role cannot register get ErrForbidden.
	RegisterForEvent(ctx context.Context, caller Principal, eventID string) (*EventRegistration, bool, error)
	GetMyRegistration(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	CancelRegistration(ctx context.Context, eventID, userID string) error
	ListMyRegisteredEvents(ctx context.Context, userID string) ([]*EventRegistrationWithEvent, error)
	ListParticipants(ctx context.Context, caller Principal, eventID string) ([]*Participant, error)
}
