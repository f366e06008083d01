package model

import "time"

// FocusSession is recorded once per completed focus phase.
type FocusSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Duration  int       `json:"duration"` // minutes
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Date      string    `json:"date"`
	MusicType string    `json:"musicType,omitempty"`
}

type DailyStats struct {
	UserID            string    `json:"userId"`
	Date              string    `json:"date"`
	SessionsCount     int       `json:"sessionsCount"`
	TotalFocusMinutes int       `json:"totalFocusMinutes"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
