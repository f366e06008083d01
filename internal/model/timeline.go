package model

import "time"

const (
	TimelineCategoryFocus = "Focus Session"
	TimelineTagUntagged   = "Untagged"
)

type TimelineEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Date            string    `json:"date"`
	Tag             string    `json:"tag"`
	Category        string    `json:"category"`
	Productivity    int       `json:"productivity"`
	CreatedAt       time.Time `json:"createdAt"`
}
