package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"

	// DefaultReminderTime applies to reminders saved without a time of day.
	DefaultReminderTime = "09:00"
)

type Reminder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EffectiveTime is the time of day the reminder fires at.
func (r Reminder) EffectiveTime() string {
	if r.Time == "" {
		return DefaultReminderTime
	}
	return r.Time
}

// MinuteOfDay returns the scheduled minute after midnight, falling back to
// 09:00 when no time is set.
func (r Reminder) MinuteOfDay() (int, error) {
	raw := r.EffectiveTime()
	parsed, err := time.Parse(TimeOfDayLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("parse reminder time %q: %w", raw, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// Validate checks a reminder before it is persisted.
func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	if r.Time != "" {
		if _, err := time.Parse(TimeOfDayLayout, r.Time); err != nil {
			return fmt.Errorf("time must be HH:MM: %w", err)
		}
	}
	return nil
}
