package schedule

import "time"

// DaySlots is the slot grid of one event day.
type DaySlots struct {
	Day   int         // 1-based day index within the event
	Date  time.Time   // calendar date of the day (midnight UTC)
	Slots []TimeOfDay // chronological slot starts
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayCount returns the number of calendar days from start to end inclusive,
// or 0 when end is before start.
func DayCount(start, end time.Time) int {
	s, e := truncateDate(start), truncateDate(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// DateOfDay returns the calendar date of the 1-based day within an event starting at start.
func DateOfDay(start time.Time, day int) time.Time {
	return truncateDate(start).AddDate(0, 0, day-1)
}

// GenerateDays runs the allocator on an empty schedule for every day from
// start to end inclusive.
func GenerateDays(cfg Config, start, end time.Time) []DaySlots {
	n := DayCount(start, end)
	days := make([]DaySlots, 0, n)
	for day := 1; day <= n; day++ {
		days = append(days, DaySlots{
			Day:   day,
			Date:  DateOfDay(start, day),
			Slots: Grid(cfg),
		})
	}
	return days
}
