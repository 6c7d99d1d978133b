// Package schedule computes activity time slots inside a conference day.
//
// A day is a fixed window (09:00-18:00 by default) partitioned into activity
// slots of a fixed length separated by a mandatory break. Slots that would
// overlap an existing activity, or come within the break of one, are not
// offered.
package schedule

import (
	"errors"
	"time"
)

// Default schedule used when nothing is configured.
const (
	DefaultActivityDuration = 90 * time.Minute
	DefaultBreakDuration    = 15 * time.Minute
)

// UnsetDurationMinutes is the length assumed for a booking whose stored
// duration is unset, whatever the configured activity duration.
const UnsetDurationMinutes = 90

var (
	DefaultDayStart = NewTimeOfDay(9, 0)
	DefaultDayEnd   = NewTimeOfDay(18, 0)
)

// Config describes the daily window and slot geometry.
type Config struct {
	DayStart         TimeOfDay
	DayEnd           TimeOfDay
	ActivityDuration time.Duration
	BreakDuration    time.Duration
}

// DefaultConfig returns the 09:00-18:00 window with 90 minute activities and 15 minute breaks.
func DefaultConfig() Config {
	return Config{
		DayStart:         DefaultDayStart,
		DayEnd:           DefaultDayEnd,
		ActivityDuration: DefaultActivityDuration,
		BreakDuration:    DefaultBreakDuration,
	}
}

// Validate reports configuration values the allocator cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.ActivityDuration < time.Minute {
		errs = append(errs, errors.New("activity duration must be at least one minute"))
	}
	if c.BreakDuration < 0 {
		errs = append(errs, errors.New("break duration must not be negative"))
	}
	if c.DayStart < 0 || c.DayEnd > minutesPerDay {
		errs = append(errs, errors.New("day window must lie within 00:00-24:00"))
	}
	if c.DayEnd <= c.DayStart {
		errs = append(errs, errors.New("day end must be after day start"))
	}
	return errors.Join(errs...)
}

// ActivityMinutes returns the activity duration in whole minutes.
func (c Config) ActivityMinutes() int {
	return int(c.ActivityDuration / time.Minute)
}

// MaxSlots is the number of slots in an empty day.
func (c Config) MaxSlots() int {
	if c.Validate() != nil {
		return 0
	}
	span := c.DayEnd.Sub(c.DayStart)
	if span < c.ActivityDuration {
		return 0
	}
	return int((span-c.ActivityDuration)/(c.ActivityDuration+c.BreakDuration)) + 1
}

// Booking is an already scheduled activity on the day being allocated.
// DurationMinutes <= 0 means the stored duration is unset and counts as UnsetDurationMinutes.
type Booking struct {
	ActivityID      string
	Start           TimeOfDay
	DurationMinutes int
}

// Exemption lets the activity being edited keep its current slot.
type Exemption struct {
	ActivityID string
	Start      TimeOfDay
}

func (b Booking) end() TimeOfDay {
	if b.DurationMinutes <= 0 {
		return b.Start + UnsetDurationMinutes
	}
	return b.Start + TimeOfDay(b.DurationMinutes)
}

// conflicts reports whether a slot starting at start overlaps b once both are
// padded by the break on their trailing side.
func conflicts(cfg Config, start TimeOfDay, b Booking) bool {
	slotEnd := start.Add(cfg.ActivityDuration)
	return start < b.end().Add(cfg.BreakDuration) && slotEnd.Add(cfg.BreakDuration) > b.Start
}

func exempted(start TimeOfDay, b Booking, exempt *Exemption) bool {
	return exempt != nil &&
		b.ActivityID != "" &&
		b.ActivityID == exempt.ActivityID &&
		b.Start == exempt.Start &&
		start == exempt.Start
}

func free(cfg Config, start TimeOfDay, bookings []Booking, exempt *Exemption) bool {
	for _, b := range bookings {
		if !conflicts(cfg, start, b) {
			continue
		}
		if exempted(start, b, exempt) {
			continue
		}
		return false
	}
	return true
}

// AvailableSlots walks the day from DayStart in steps of duration+break and
// returns, in chronological order, every slot start that does not conflict
// with a booking. The cursor advances whether or not a slot was accepted, so
// the result is always a subset of Grid(cfg). A fully booked day yields an
// empty, non-nil slice.
func AvailableSlots(cfg Config, bookings []Booking, exempt *Exemption) []TimeOfDay {
	if cfg.Validate() != nil {
		return []TimeOfDay{}
	}
	slots := make([]TimeOfDay, 0, cfg.MaxSlots())
	step := cfg.ActivityDuration + cfg.BreakDuration
	for cursor := cfg.DayStart; cursor.Add(cfg.ActivityDuration) <= cfg.DayEnd; cursor = cursor.Add(step) {
		if free(cfg, cursor, bookings, exempt) {
			slots = append(slots, cursor)
		}
	}
	return slots
}

// Grid returns the slots of an empty day.
func Grid(cfg Config) []TimeOfDay {
	return AvailableSlots(cfg, nil, nil)
}

// Fits reports whether start is one of the available slots.
func Fits(cfg Config, bookings []Booking, exempt *Exemption, start TimeOfDay) bool {
	for _, s := range AvailableSlots(cfg, bookings, exempt) {
		if s == start {
			return true
		}
		if s > start {
			return false
		}
	}
	return false
}
