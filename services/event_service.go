package services

import (
	"errors"

	"tasktrail/tasktrail/models"

	"gorm.io/gorm"
)

// MaxRecentEvents caps the activity feed.
const MaxRecentEvents = 200

// EventServiceInterface is the append-only mutation log. Methods take a
// *gorm.DB so writes can join the caller's transaction: a mutation and
// its event commit together or not at all.
type EventServiceInterface interface {
	Append(tx *gorm.DB, action models.Action, taskID uint, payload interface{}) (*models.Event, error)
	MostRecent(tx *gorm.DB) (*models.Event, error)
	Recent(tx *gorm.DB, limit int) ([]models.Event, error)
	Remove(tx *gorm.DB, eventID uint) error
}

type EventService struct{}

var EventServiceInstance EventServiceInterface = &EventService{}

// Append inserts a new event with a server timestamp.
func (s *EventService) Append(tx *gorm.DB, action models.Action, taskID uint, payload interface{}) (*models.Event, error) {
	event, err := models.NewEvent(action, taskID, payload)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// MostRecent returns the newest event, or nil when the log is empty.
func (s *EventService) MostRecent(tx *gorm.DB) (*models.Event, error) {
	var event models.Event
	if err := tx.Order("id DESC").First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// Recent returns events newest-first, capped at MaxRecentEvents.
func (s *EventService) Recent(tx *gorm.DB, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > MaxRecentEvents {
		limit = MaxRecentEvents
	}
	var events []models.Event
	if err := tx.Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Remove hard-deletes one event. Only the undo engine calls this, for
// the exact event it just reversed.
func (s *EventService) Remove(tx *gorm.DB, eventID uint) error {
	result := tx.Delete(&models.Event{}, eventID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
