package domain

import "time"

// Priority of a watched trend.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Trend is a legal topic being watched.
type Trend struct {
	ID          string
	Title       string
	Category    string
	Description string
	Priority    Priority
	Searches    int
	Growth      int // percent
	Keywords    []string
	UpdatedAt   time.Time
}
