package services

import (
	"tasktrail/tasktrail/database"
	"tasktrail/tasktrail/models"

	"gorm.io/gorm"
)

type UndoServiceInterface interface {
	UndoLast(db *database.Database) (*models.Event, error)
}

type UndoService struct{}

var UndoServiceInstance UndoServiceInterface = &UndoService{}

// UndoLast reverses the most recent event and removes it, all in one
// transaction. The inverse is driven entirely by the event's stored
// payload, never by the task's current state. Repeated calls walk the
// log back one event at a time.
//
// Returns ErrNothingToUndo on an empty log, ErrUndoFailed when the
// inverse target row is gone (the event is preserved), and
// ErrUndoUnsupported for unknown action tags.
func (s *UndoService) UndoLast(db *database.Database) (*models.Event, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	event, err := EventServiceInstance.MostRecent(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if event == nil {
		tx.Rollback()
		return nil, ErrNothingToUndo
	}

	payload, err := event.DecodePayload()
	if err != nil {
		tx.Rollback()
		return nil, ErrUndoUnsupported
	}

	ts := models.NowUTC()
	switch p := payload.(type) {
	case models.CreatePayload:
		// Inverse of create is a hard delete. Deleting an already-gone
		// row affects nothing and is fine.
		if err := tx.Delete(&models.Task{}, event.TaskID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	case models.TogglePayload:
		if err := applyInverse(tx, event.TaskID, map[string]interface{}{
			"done":       p.BeforeDone,
			"updated_at": ts,
		}); err != nil {
			tx.Rollback()
			return nil, err
		}
	case models.EditPayload:
		if err := applyInverse(tx, event.TaskID, map[string]interface{}{
			"title":      p.BeforeTitle,
			"due_date":   p.BeforeDue,
			"updated_at": ts,
		}); err != nil {
			tx.Rollback()
			return nil, err
		}
	case models.DeletePayload:
		if err := applyInverse(tx, event.TaskID, map[string]interface{}{
			"deleted":    false,
			"updated_at": ts,
		}); err != nil {
			tx.Rollback()
			return nil, err
		}
	case models.RestorePayload:
		if err := applyInverse(tx, event.TaskID, map[string]interface{}{
			"deleted":    true,
			"updated_at": ts,
		}); err != nil {
			tx.Rollback()
			return nil, err
		}
	default:
		tx.Rollback()
		return nil, ErrUndoUnsupported
	}

	if err := EventServiceInstance.Remove(tx, event.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	publishEvent(EventUndone, event)
	return event, nil
}

// applyInverse updates the target task and fails with ErrUndoFailed when
// the row no longer exists, so the caller rolls back and the event stays.
func applyInverse(tx *gorm.DB, taskID uint, values map[string]interface{}) error {
	result := tx.Model(&models.Task{}).Where("id = ?", taskID).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUndoFailed
	}
	return nil
}
