package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/schedule"
)

// Event represents a multi-day conference managed by an organizer.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DirectionID string    `json:"direction_id"`
	CityID      string    `json:"city_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	DaysCount   int       `json:"days_count"`
	LogoPath    *string   `json:"logo_path"`
	Description *string   `json:"description"`
	OrganizerID string    `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(organizerID string, in EventInput, createdAt, updatedAt time.Time) *Event {
	e := &Event{
		OrganizerID: organizerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	e.Apply(in)
	return e
}

// Apply copies the editable fields of in onto the event and recomputes DaysCount.
func (e *Event) Apply(in EventInput) {
	e.Name = strings.TrimSpace(in.Name)
	e.DirectionID = in.DirectionID
	e.CityID = in.CityID
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	e.DaysCount = schedule.DayCount(in.StartDate, in.EndDate)
	e.LogoPath = in.LogoPath
	e.Description = in.Description
}

// DateOfDay returns the calendar date of the 1-based event day.
func (e *Event) DateOfDay(day int) time.Time {
	return schedule.DateOfDay(e.StartDate, day)
}

// EventView is an event joined with its catalog and organizer names.
// swagger:model EventView
type EventView struct {
	Event
	DirectionName string `json:"direction_name"`
	CityName      string `json:"city_name"`
	OrganizerName string `json:"organizer_name"`
	ActivityCount int    `json:"activity_count"`
	IsUpcoming    bool   `json:"is_upcoming"`
}

// EventDetail is an event with its activities ordered by day and start time.
type EventDetail struct {
	Event      *EventView      `json:"event"`
	Activities []*ActivityView `json:"activities"`
}

// EventInput carries the editable event fields of create and update requests.
type EventInput struct {
	Name        string
	DirectionID string
	CityID      string
	StartDate   time.Time
	EndDate     time.Time
	LogoPath    *string
	Description *string
}

// MaxEventDays bounds the length of an event, and with it the activities bulk generation creates.
const MaxEventDays = 31

// Validate checks required fields and the date range.
func (in EventInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.DirectionID == "" {
		missing = append(missing, "direction_id")
	}
	if in.CityID == "" {
		missing = append(missing, "city_id")
	}
	if in.StartDate.IsZero() {
		missing = append(missing, "start_date")
	}
	if in.EndDate.IsZero() {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrInvalidInput, strings.Join(missing, ", "))
	}
	days := schedule.DayCount(in.StartDate, in.EndDate)
	if days == 0 {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	}
	if days > MaxEventDays {
		return fmt.Errorf("%w: events may last at most %d days", ErrInvalidInput, MaxEventDays)
	}
	return nil
}

// EventFilter narrows event listings. Zero values mean "no filter".
type EventFilter struct {
	OrganizerID string
	DirectionID string
	From        *time.Time // start_date >= From
	To          *time.Time // end_date <= To
	Search      string     // case-insensitive match on name
}

// Validate rejects an inverted date range.
func (f EventFilter) Validate() error {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	return nil
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// CreateWithActivities inserts the event and its generated activities in one transaction.
	CreateWithActivities(ctx context.Context, event *Event, activities []*Activity) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetView(ctx context.Context, id string) (*EventView, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*EventView, int, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for events.
type EventService interface {
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*EventView, int, error)
	GetDetail(ctx context.Context, id string) (*EventDetail, error)
	ExportCalendar(ctx context.Context, id string) ([]byte, error)
	// Create stores the event and generates one activity per free slot of every day.
	// It returns the event and the number of generated activities.
	Create(ctx context.Context, organizerID string, in EventInput) (*Event, int, error)
	Update(ctx context.Context, organizerID, eventID string, in EventInput) (*Event, error)
	Delete(ctx context.Context, organizerID, eventID string) error
}

// CalendarExporter renders an event schedule as an iCalendar document.
type CalendarExporter interface {
	Export(detail *EventDetail) ([]byte, error)
}
