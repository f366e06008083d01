package service

import (
	"fmt"
	"time"

	"kairu/internal/model"
)

// Calendar resolves "now" and calendar days in the configured zone.
type Calendar struct {
	Now      func() time.Time
	Location *time.Location
}

func NewCalendar(now func() time.Time, loc *time.Location) Calendar {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return Calendar{Now: now, Location: loc}
}

func (c Calendar) LocalNow() time.Time {
	return c.Now().In(c.Location)
}

func (c Calendar) Today() string {
	return c.LocalNow().Format(model.DateLayout)
}

func (c Calendar) DateOf(t time.Time) string {
	return t.In(c.Location).Format(model.DateLayout)
}

// FormatMinutes renders a minute total the way the dashboard shows it:
// "45m" or "2h 15m".
func FormatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	hours := total / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, total%60)
	}
	return fmt.Sprintf("%dm", total)
}
