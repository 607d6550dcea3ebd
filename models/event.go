package models

import (
	"encoding/json"
	"fmt"
)

// Action tags an event with the mutation it records.
type Action string

const (
	ActionCreate  Action = "create"
	ActionToggle  Action = "toggle"
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
)

// Event is an append-only record of one task mutation. The payload holds
// enough pre-mutation state to invert the action. Events are totally
// ordered by id; created_at is informational only.
type Event struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Action    Action          `gorm:"not null" json:"action"`
	TaskID    uint            `json:"task_id"`
	Payload   json.RawMessage `gorm:"not null" json:"payload"`
	CreatedAt string          `gorm:"not null" json:"created_at"`
}

// One payload variant per action. Each records the "before" state its
// inverse needs; create and restore need only the identifying fields for
// the activity feed, since their inverses work on the row as a whole.

type CreatePayload struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
}

type TogglePayload struct {
	BeforeDone bool `json:"before_done"`
	AfterDone  bool `json:"after_done"`
}

type EditPayload struct {
	BeforeTitle string `json:"before_title"`
	AfterTitle  string `json:"after_title"`
	BeforeDue   string `json:"before_due"`
	AfterDue    string `json:"after_due"`
}

type DeletePayload struct {
	Title   string `json:"title"`
	WasDone bool   `json:"was_done"`
	DueDate string `json:"due_date"`
}

type RestorePayload struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
}

// NewEvent builds an event for a task mutation with a server timestamp.
func NewEvent(action Action, taskID uint, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Action:    action,
		TaskID:    taskID,
		Payload:   data,
		CreatedAt: NowUTC(),
	}, nil
}

// DecodePayload unmarshals the payload into the variant matching the
// event's action tag. Unknown tags are an error; callers must not guess.
func (e *Event) DecodePayload() (interface{}, error) {
	switch e.Action {
	case ActionCreate:
		var p CreatePayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ActionToggle:
		var p TogglePayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ActionEdit:
		var p EditPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ActionDelete:
		var p DeletePayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ActionRestore:
		var p RestorePayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown event action %q", e.Action)
	}
}
