package services

import (
	"errors"
	"strings"

	"tasktrail/tasktrail/database"
	"tasktrail/tasktrail/models"

	"gorm.io/gorm"
)

type TaskServiceInterface interface {
	Create(db *database.Database, title, dueDate string) (models.Task, error)
	Toggle(db *database.Database, id uint) (models.Task, error)
	Edit(db *database.Database, id uint, title, dueDate string) (models.Task, error)
	// SoftDelete and Restore are idempotent; the bool reports whether the
	// task actually changed. No-op calls write no event.
	SoftDelete(db *database.Database, id uint) (models.Task, bool, error)
	Restore(db *database.Database, id uint) (models.Task, bool, error)
	GetById(db *database.Database, id uint) (models.Task, error)
	List(db *database.Database, filter models.TaskFilter, sort models.TaskSort) ([]models.Task, error)
}

type TaskService struct{}

var TaskServiceInstance TaskServiceInterface = &TaskService{}

// Create inserts a new task and logs a create event in one transaction.
func (s *TaskService) Create(db *database.Database, title, dueDate string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrValidation
	}
	dueDate = strings.TrimSpace(dueDate)

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	ts := models.NowUTC()
	task := models.Task{
		Title:     title,
		DueDate:   dueDate,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := EventServiceInstance.Append(tx, models.ActionCreate, task.ID, models.CreatePayload{
		Title:   title,
		DueDate: dueDate,
	})
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	publishEvent(EventAppended, event)
	return task, nil
}

// Toggle flips a task's done flag. Deleted tasks are rejected.
func (s *TaskService) Toggle(db *database.Database, id uint) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	task, err := fetchTask(tx, id)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}
	if task.Deleted {
		tx.Rollback()
		return task, ErrTaskDeleted
	}

	before := task.Done
	task.Done = !before
	task.UpdatedAt = models.NowUTC()
	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := EventServiceInstance.Append(tx, models.ActionToggle, task.ID, models.TogglePayload{
		BeforeDone: before,
		AfterDone:  task.Done,
	})
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	publishEvent(EventAppended, event)
	return task, nil
}

// Edit replaces a task's title and due date. Deleted tasks may be edited.
func (s *TaskService) Edit(db *database.Database, id uint, title, dueDate string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrValidation
	}
	dueDate = strings.TrimSpace(dueDate)

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	task, err := fetchTask(tx, id)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	payload := models.EditPayload{
		BeforeTitle: task.Title,
		AfterTitle:  title,
		BeforeDue:   task.DueDate,
		AfterDue:    dueDate,
	}

	task.Title = title
	task.DueDate = dueDate
	task.UpdatedAt = models.NowUTC()
	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := EventServiceInstance.Append(tx, models.ActionEdit, task.ID, payload)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	publishEvent(EventAppended, event)
	return task, nil
}

// SoftDelete marks a task deleted. Deleting an already-deleted task is a
// no-op and logs nothing, so only the first delete is undoable.
func (s *TaskService) SoftDelete(db *database.Database, id uint) (models.Task, bool, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, false, tx.Error
	}

	task, err := fetchTask(tx, id)
	if err != nil {
		tx.Rollback()
		return models.Task{}, false, err
	}
	if task.Deleted {
		tx.Rollback()
		return task, false, nil
	}

	payload := models.DeletePayload{
		Title:   task.Title,
		WasDone: task.Done,
		DueDate: task.DueDate,
	}

	task.Deleted = true
	task.UpdatedAt = models.NowUTC()
	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, false, err
	}

	event, err := EventServiceInstance.Append(tx, models.ActionDelete, task.ID, payload)
	if err != nil {
		tx.Rollback()
		return models.Task{}, false, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, false, err
	}

	publishEvent(EventAppended, event)
	return task, true, nil
}

// Restore clears a task's deleted flag. Restoring a task that is not
// deleted is a no-op and logs nothing.
func (s *TaskService) Restore(db *database.Database, id uint) (models.Task, bool, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, false, tx.Error
	}

	task, err := fetchTask(tx, id)
	if err != nil {
		tx.Rollback()
		return models.Task{}, false, err
	}
	if !task.Deleted {
		tx.Rollback()
		return task, false, nil
	}

	payload := models.RestorePayload{
		Title:   task.Title,
		DueDate: task.DueDate,
	}

	task.Deleted = false
	task.UpdatedAt = models.NowUTC()
	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, false, err
	}

	event, err := EventServiceInstance.Append(tx, models.ActionRestore, task.ID, payload)
	if err != nil {
		tx.Rollback()
		return models.Task{}, false, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, false, err
	}

	publishEvent(EventAppended, event)
	return task, true, nil
}

func (s *TaskService) GetById(db *database.Database, id uint) (models.Task, error) {
	return fetchTask(db.DB, id)
}

// List returns tasks for one filter view in the requested order. The due
// sort puts dated tasks first in ascending date order, undated tasks
// last, with updated_at breaking ties.
func (s *TaskService) List(db *database.Database, filter models.TaskFilter, sort models.TaskSort) ([]models.Task, error) {
	query := db.DB.Model(&models.Task{})

	switch filter {
	case models.FilterAll:
		query = query.Where("deleted = ?", false)
	case models.FilterCompleted:
		query = query.Where("deleted = ? AND done = ?", false, true)
	case models.FilterDeleted:
		query = query.Where("deleted = ?", true)
	default:
		query = query.Where("deleted = ? AND done = ?", false, false)
	}

	if sort == models.SortDue {
		query = query.
			Order("CASE WHEN due_date IS NULL OR due_date = '' THEN 1 ELSE 0 END").
			Order("due_date ASC").
			Order("updated_at DESC")
	} else {
		query = query.Order("updated_at DESC")
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func fetchTask(tx *gorm.DB, id uint) (models.Task, error) {
	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}
