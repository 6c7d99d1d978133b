package domain

import "errors"

// Sentinel errors shared by services and repositories. Controllers map them
// to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Scheduling errors.
var (
	// ErrSlotUnavailable is returned when a requested activity start is not among the free slots of its day.
	ErrSlotUnavailable = errors.New("slot not available")
	// ErrDayOutOfRange is returned when an activity day lies outside 1..days_count of its event.
	ErrDayOutOfRange = errors.New("day is outside the event")
	// ErrEventHasActivities blocks deleting an event (or shrinking it) while activities remain.
	ErrEventHasActivities = errors.New("event has activities")
	// ErrActivityHasJury blocks deleting an activity once jury members are assigned.
	ErrActivityHasJury = errors.New("activity has jury assigned")
)

// Assignment errors.
var (
	ErrAlreadyAssigned = errors.New("already assigned")
	ErrHasModerator    = errors.New("activity already has a moderator")
)
