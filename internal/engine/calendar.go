package engine

import (
	"time"

	"portfoliotracker/types"
)

// Calendar decides which days transactions may settle on and which days the
// replay grid visits.
type Calendar interface {
	IsBusinessDay(t time.Time) bool
}

// WeekdayCalendar treats Monday through Friday as business days. Holiday
// awareness is a policy choice, so the set of excluded dates is supplied by
// the caller; the zero-holiday calendar matches plain weekday behavior.
type WeekdayCalendar struct {
	holidays map[string]struct{}
}

func NewWeekdayCalendar(holidays ...time.Time) *WeekdayCalendar {
	c := &WeekdayCalendar{holidays: make(map[string]struct{}, len(holidays))}
	for _, h := range holidays {
		c.holidays[types.Midnight(h).Format(types.DateFormat)] = struct{}{}
	}
	return c
}

func (c *WeekdayCalendar) IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[types.Midnight(t).Format(types.DateFormat)]
	return !holiday
}

// businessDays builds the inclusive replay grid between two dates.
func businessDays(cal Calendar, start, end time.Time) []time.Time {
	var days []time.Time
	for d := types.Midnight(start); !d.After(types.Midnight(end)); d = d.AddDate(0, 0, 1) {
		if cal.IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}
