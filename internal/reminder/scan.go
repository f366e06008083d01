package reminder

import (
	"fmt"
	"time"

	"kairu/internal/model"
	"kairu/internal/notify"
)

// DefaultTolerance is the match window, in minutes, either side of the
// scheduled time.
const DefaultTolerance = 1

// Scan returns the active reminders due at now: same calendar date in now's
// location and a scheduled minute within tolerance of now's minute. A
// reminder whose time does not parse never matches.
func Scan(reminders []model.Reminder, now time.Time, tolerance int) []model.Reminder {
	if tolerance < 0 {
		tolerance = 0
	}
	today := now.Format(model.DateLayout)
	current := now.Hour()*60 + now.Minute()

	matches := make([]model.Reminder, 0)
	for _, r := range reminders {
		if !r.IsActive || r.Date != today {
			continue
		}
		scheduled, err := r.MinuteOfDay()
		if err != nil {
			continue
		}
		diff := current - scheduled
		if diff < 0 {
			diff = -diff
		}
		if diff <= tolerance {
			matches = append(matches, r)
		}
	}
	return matches
}

// Notification builds the message delivered for a due reminder.
func Notification(r model.Reminder, now time.Time) notify.Notification {
	body := r.Description
	if body == "" {
		body = "You have a task to complete!"
	}
	return notify.Notification{
		UserID: r.UserID,
		Title:  fmt.Sprintf("📅 Reminder: %s", r.Title),
		Body:   body,
		Tag:    "reminder-" + r.ID,
		Sound:  true,
		At:     now,
	}
}
