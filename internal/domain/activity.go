package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/schedule"
)

// ActivityDurationMinutes is the length of an activity whose stored duration is unset.
const ActivityDurationMinutes = schedule.UnsetDurationMinutes

// Activity is a scheduled session within one day of an event.
// swagger:model Activity
type Activity struct {
	ID              string             `json:"id"`
	EventID         string             `json:"event_id"`
	Day             int                `json:"day"`
	StartTime       schedule.TimeOfDay `json:"start_time" swaggertype:"string" example:"09:00"`
	DurationMinutes int                `json:"duration_minutes"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
}

// Duration returns the stored duration, or ActivityDurationMinutes when unset.
func (a *Activity) Duration() int {
	if a.DurationMinutes <= 0 {
		return ActivityDurationMinutes
	}
	return a.DurationMinutes
}

// EndTime returns the time of day the activity ends.
func (a *Activity) EndTime() schedule.TimeOfDay {
	return a.StartTime.Add(time.Duration(a.Duration()) * time.Minute)
}

// Booking returns the allocator view of the activity.
func (a *Activity) Booking() schedule.Booking {
	return schedule.Booking{ActivityID: a.ID, Start: a.StartTime, DurationMinutes: a.DurationMinutes}
}

// Bookings converts activities to allocator bookings.
func Bookings(activities []*Activity) []schedule.Booking {
	out := make([]schedule.Booking, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.Booking())
	}
	return out
}

// GeneratedActivity returns the activity bulk generation creates for a slot.
func GeneratedActivity(eventID string, day int, start schedule.TimeOfDay, cfg schedule.Config) *Activity {
	end := start.Add(cfg.ActivityDuration)
	return &Activity{
		EventID:         eventID,
		Day:             day,
		StartTime:       start,
		DurationMinutes: cfg.ActivityMinutes(),
		Name:            fmt.Sprintf("Activity day %d - %s", day, start),
		Description:     fmt.Sprintf("Scheduled activity %s - %s", start, end),
	}
}

// ActivityView is an activity with the event context the organizer list shows.
// swagger:model ActivityView
type ActivityView struct {
	Activity
	EventName      string    `json:"event_name"`
	EventStartDate time.Time `json:"event_start_date"`
	Date           time.Time `json:"date"`
	HasJury        bool      `json:"has_jury"`
	FormattedStart string    `json:"formatted_start"`
}

// NewActivityView fills the derived fields of a view from its activity and event.
func NewActivityView(a *Activity, eventName string, eventStart time.Time, hasJury bool) *ActivityView {
	return &ActivityView{
		Activity:       *a,
		EventName:      eventName,
		EventStartDate: eventStart,
		Date:           schedule.DateOfDay(eventStart, a.Day),
		HasJury:        hasJury,
		FormattedStart: fmt.Sprintf("Day %d, %s - %s", a.Day, a.StartTime, a.EndTime()),
	}
}

// ActivityInput carries the editable activity fields of create and update requests.
type ActivityInput struct {
	EventID     string
	Day         int
	StartTime   schedule.TimeOfDay
	Name        string
	Description string
}

// Validate checks the fields that do not need storage.
func (in ActivityInput) Validate() error {
	var errs []string
	if in.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if in.Day < 1 {
		errs = append(errs, "day must be at least 1")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}

// SortOrder is the direction of the organizer activity list.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder parses "asc" or "desc"; empty means ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", fmt.Errorf("%w: sort must be asc or desc", ErrInvalidInput)
	}
}

// ActivityFilter narrows the organizer activity list.
type ActivityFilter struct {
	OrganizerID string
	EventID     string
	Search      string // case-insensitive match on name or description
	Sort        SortOrder
}

// SlotAvailability is the answer to a slot query for one event day.
// swagger:model SlotAvailability
type SlotAvailability struct {
	EventID string               `json:"event_id"`
	Day     int                  `json:"day"`
	Date    time.Time            `json:"date"`
	Slots   []schedule.TimeOfDay `json:"slots" swaggertype:"array,string"`
	Message string               `json:"message"`
}

// SlotMessage describes how many slots are free.
func SlotMessage(n int, cfg schedule.Config) string {
	if n == 0 {
		return "No slots available"
	}
	return fmt.Sprintf("%d slots available. Activities last %d minutes with %d minute breaks.",
		n, cfg.ActivityMinutes(), int(cfg.BreakDuration/time.Minute))
}

// ActivityRepository defines the interface for activity storage
type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Activity, error)
	ListByEventDay(ctx context.Context, eventID string, day int) ([]*Activity, error)
	ListForOrganizer(ctx context.Context, filter ActivityFilter) ([]*ActivityView, error)
	// MaxDay returns the highest day used by the event's activities, 0 when it has none.
	MaxDay(ctx context.Context, eventID string) (int, error)
	Update(ctx context.Context, a *Activity) error
	// Delete removes the activity together with its moderator assignments.
	Delete(ctx context.Context, id string) error
}

// ActivityService defines the organizer operations on activities.
type ActivityService interface {
	AvailableSlots(ctx context.Context, organizerID, eventID string, day int, excludeActivityID string) (*SlotAvailability, error)
	ListForOrganizer(ctx context.Context, filter ActivityFilter) ([]*ActivityView, error)
	Create(ctx context.Context, organizerID string, in ActivityInput) (*Activity, error)
	Update(ctx context.Context, organizerID, activityID string, in ActivityInput) (*Activity, error)
	Delete(ctx context.Context, organizerID, activityID string) error
}
