// Package calendar exports event schedules as iCalendar documents.
package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"conferencehub/internal/domain"
)

const productID = "-//conferencehub//schedule//EN"

type icsExporter struct {
	now func() time.Time
}

// NewICSExporter returns a CalendarExporter producing one VEVENT per activity.
func NewICSExporter() domain.CalendarExporter {
	return &icsExporter{now: time.Now}
}

func (x *icsExporter) Export(detail *domain.EventDetail) ([]byte, error) {
	if detail == nil || detail.Event == nil {
		return nil, fmt.Errorf("%w: no event to export", domain.ErrInvalidInput)
	}
	ev := detail.Event

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(ev.Name)
	if ev.Description != nil {
		cal.SetDescription(*ev.Description)
	}

	stamp := x.now().UTC()
	for _, a := range detail.Activities {
		date := ev.DateOfDay(a.Day)
		ve := cal.AddEvent(fmt.Sprintf("%s@conferencehub", a.ID))
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(a.StartTime.On(date))
		ve.SetEndAt(a.EndTime().On(date))
		ve.SetSummary(a.Name)
		if a.Description != "" {
			ve.SetDescription(a.Description)
		}
		if ev.CityName != "" {
			ve.SetLocation(ev.CityName)
		}
	}
	return []byte(cal.Serialize()), nil
}
