package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

const (
	DefaultMaxWorkHours = 8
	MaxWorkHoursLimit   = 24
)

// UserProfile owns the user's reminders; insertion order is irrelevant.
type UserProfile struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	MaxWorkHours int        `json:"maxWorkHours"`
	PreparingFor string     `json:"preparingFor"`
	Reminders    []Reminder `json:"reminders"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
