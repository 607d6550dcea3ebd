package models

// Badge is a read-time classification of a task's due date against
// today's date. It is derived on every listing and never persisted.
type Badge string

const (
	BadgeNone      Badge = ""
	BadgeOverdue   Badge = "Overdue"
	BadgeDueToday  Badge = "Due today"
	BadgeScheduled Badge = "Scheduled"
)

// BadgeFor classifies a task for display. Only pending tasks with a due
// date carry a badge; done or deleted tasks never do. ISO dates compare
// correctly as strings, so no parsing is needed.
func BadgeFor(t Task, today string) Badge {
	if t.Deleted || t.Done || t.DueDate == "" {
		return BadgeNone
	}
	switch {
	case t.DueDate < today:
		return BadgeOverdue
	case t.DueDate == today:
		return BadgeDueToday
	default:
		return BadgeScheduled
	}
}
