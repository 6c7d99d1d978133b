package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencehub/internal/schedule"
)

func TestGeneratedActivity(t *testing.T) {
	cfg := schedule.DefaultConfig()
	a := GeneratedActivity("ev-1", 2, schedule.NewTimeOfDay(10, 45), cfg)

	assert.Equal(t, "ev-1", a.EventID)
	assert.Equal(t, 2, a.Day)
	assert.Equal(t, 90, a.DurationMinutes)
	assert.Equal(t, "Activity day 2 - 10:45", a.Name)
	assert.Equal(t, "Scheduled activity 10:45 - 12:15", a.Description)
}

func TestActivity_Duration(t *testing.T) {
	a := &Activity{StartTime: schedule.NewTimeOfDay(16, 0)}
	assert.Equal(t, ActivityDurationMinutes, a.Duration())
	assert.Equal(t, "17:30", a.EndTime().String())

	a.DurationMinutes = 45
	assert.Equal(t, "16:45", a.EndTime().String())
	assert.Equal(t, schedule.Booking{Start: a.StartTime, DurationMinutes: 45}, a.Booking())
}

func TestActivity_UnsetDurationAgreesWithAllocator(t *testing.T) {
	cfg := schedule.DefaultConfig()
	cfg.ActivityDuration = 60 * time.Minute
	existing := &Activity{ID: "legacy", StartTime: schedule.NewTimeOfDay(9, 0)}

	// the allocator's first free slot starts one break after the end the activity reports
	first := existing.EndTime().Add(cfg.BreakDuration)
	slots := schedule.AvailableSlots(cfg, Bookings([]*Activity{existing}), nil)
	require.NotEmpty(t, slots)
	assert.LessOrEqual(t, first, slots[0])
	assert.False(t, schedule.Fits(cfg, Bookings([]*Activity{existing}), nil, schedule.NewTimeOfDay(10, 15)), "10:15 is within the break of a 90 minute booking")
}

func TestNewActivityView(t *testing.T) {
	a := &Activity{ID: "a1", Day: 3, StartTime: schedule.NewTimeOfDay(14, 15)}
	v := NewActivityView(a, "GopherCon", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), true)

	assert.Equal(t, "Day 3, 14:15 - 15:45", v.FormattedStart)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), v.Date)
	assert.True(t, v.HasJury)
	assert.Equal(t, "GopherCon", v.EventName)
}

func TestActivityInput_Validate(t *testing.T) {
	assert.NoError(t, ActivityInput{EventID: "ev-1", Day: 1, Name: "Keynote"}.Validate())

	err := ActivityInput{Day: 0, Name: " "}.Validate()
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "event_id is required")
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "day must be at least 1")
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{"": SortAsc, "asc": SortAsc, " DESC ": SortDesc} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSortOrder("newest")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSlotMessage(t *testing.T) {
	cfg := schedule.DefaultConfig()
	assert.Equal(t, "No slots available", SlotMessage(0, cfg))
	assert.Equal(t, "3 slots available. Activities last 90 minutes with 15 minute breaks.", SlotMessage(3, cfg))
}
