package model

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	CategoryDaily   = "daily"
	CategoryWeekly  = "weekly"
	CategoryMonthly = "monthly"
)

type TodoItem struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Title           string     `json:"title"`
	Completed       bool       `json:"completed"`
	Priority        string     `json:"priority"`
	DueDate         string     `json:"dueDate,omitempty"`
	Category        string     `json:"category"`
	EstimateMinutes int        `json:"estimateMinutes"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

func IsValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func IsValidCategory(c string) bool {
	return c == CategoryDaily || c == CategoryWeekly || c == CategoryMonthly
}
