package models

import "time"

// TimestampFormat is the storage format for task and event timestamps:
// UTC, second precision, Z suffix.
const TimestampFormat = "2006-01-02T15:04:05Z"

// DateFormat is the calendar-date format used for due dates.
const DateFormat = "2006-01-02"

// NowUTC returns the current time formatted for storage.
func NowUTC() string {
	return time.Now().UTC().Format(TimestampFormat)
}

// TodayUTC returns the current UTC calendar date.
func TodayUTC() string {
	return time.Now().UTC().Format(DateFormat)
}

// Task is a to-do item. Deleted is an explicit, restorable flag rather
// than gorm's soft delete: deleted tasks stay visible in their own list
// view and can be flipped back. Timestamps are stored as strings so the
// services control them on every mutation, including undo-driven ones.
type Task struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	DueDate   string `json:"due_date,omitempty"`
	Done      bool   `gorm:"not null;default:false" json:"done"`
	Deleted   bool   `gorm:"not null;default:false" json:"deleted"`
	CreatedAt string `gorm:"not null" json:"created_at"`
	UpdatedAt string `gorm:"not null" json:"updated_at"`
}

// TaskFilter selects which tasks a listing returns.
type TaskFilter string

const (
	FilterActive    TaskFilter = "active"
	FilterAll       TaskFilter = "all"
	FilterCompleted TaskFilter = "completed"
	FilterDeleted   TaskFilter = "deleted"
)

// ParseTaskFilter maps a query value to a filter, defaulting to active.
func ParseTaskFilter(s string) TaskFilter {
	switch TaskFilter(s) {
	case FilterAll, FilterCompleted, FilterDeleted:
		return TaskFilter(s)
	default:
		return FilterActive
	}
}

// TaskSort selects the listing order.
type TaskSort string

const (
	SortRecent TaskSort = "recent"
	SortDue    TaskSort = "due"
)

// ParseTaskSort maps a query value to a sort order, defaulting to recent.
func ParseTaskSort(s string) TaskSort {
	if TaskSort(s) == SortDue {
		return SortDue
	}
	return SortRecent
}
