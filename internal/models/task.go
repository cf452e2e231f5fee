package models

import "time"

// TaskStatus is the closed set of states a task can be in.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is a member of the status set.
func ValidTaskStatus(s TaskStatus) bool {
	return s == TaskPending || s == TaskCompleted
}

// Task is a personally-owned unit of work. UserID is set once, at creation,
// from the authenticated caller and never changes afterwards.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
