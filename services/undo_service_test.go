package services

import (
	"encoding/json"
	"testing"

	"tasktrail/tasktrail/models"
	"tasktrail/tasktrail/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoCreateRemovesTask(t *testing.T) {
	db := testutils.SetupTestDB(t)
	tasks := &TaskService{}
	undo := &UndoService{}

	task, err := tasks.Create(db, "ephemeral", "")
	require.NoError(t, err)

	event, err := undo.UndoLast(db)
	require.NoError(t, err)
	assert.Equal(t, models.ActionCreate, event.Action)

	_, err = tasks.GetById(db, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, int64(0), countEvents(t, db))
}

func TestUndoToggleRevertsOnlyDone(t *testing.T) {
	db := testutils.SetupTestDB(t)
	tasks := &TaskService{}
	undo := &UndoService{}

	task, err := tasks.Create(db, "original title", "2025-03-01")
	require.NoError(t, err)
	_, err = tasks.Toggle(db, task.ID)
	require.NoError(t, err)

	_, err = undo.UndoLast(db)
	require.NoError(t, err)

	got, err := tasks.GetById(db, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Done)
	assert.Equal(t, "original title", got.Title)
	assert.Equal(t, "2025-03-01", got.DueDate)

	// Only the create event remains.
	assert.Equal(t, int64(1), countEvents(t, db))
}

func TestUndoEditRevertsTitleAndDueDate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	tasks := &TaskService{}
	undo := &UndoService{}

	task, err := tasks.Create(db, "before", "2025-01-01")
	require.NoError(t, err)
	_, err = tasks.Edit(db, task.ID, "after", "2025-12-31")
	require.NoError(t, err)

	_, err = undo.UndoLast(db)
	require.NoError(t, err)

	got, err := tasks.GetById(db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Title)
	assert.Equal(t, "2025-01-01", got.DueDate)
}

func TestUndoDeleteRestores(t *testing.T) {
	db := testutils.SetupTestDB(t)
	tasks := &TaskService{}
	undo := &UndoService{}

	task, err := tasks.Create(db, "rescued", "")
	require.NoError(t, err)
	_, _, err = tasks.SoftDelete(db, task.ID)
	require.NoError(t, err)

	_, err = undo.UndoLast(db)
	require.NoError(t, err)

	got, err := tasks.GetById(db, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Deleted)
}

func TestUndoRestoreReDeletes(t *testing.T) {
	db := testutils.SetupTestDB(t)
	tasks := &TaskService{}
	undo := &UndoService{}

	task, err := tasks.Create(db, "yo-yo", "")
	require.NoError(t, err)
	_, _, err = tasks.SoftDelete(db, task.ID)
	require.NoError(t, err)
	_, _, err = tasks.Restore(db, task.ID)
	require.NoError(t, err)

	_, err = undo.UndoLast(db)
	require.NoError(t, err)

	got, err := tasks.GetById(db, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
}

func TestUndoChainErasesHistory(t *testing.T) {
	db := testutils.SetupTestDB(t)
	tasks := &TaskService{}
	undo := &UndoService{}

	task, err := tasks.Create(db, "short-lived", "")
	require.NoError(t, err)
	_, err = tasks.Edit(db, task.ID, "renamed", "2025-05-05")
	require.NoError(t, err)
	_, err = tasks.Toggle(db, task.ID)
	require.NoError(t, err)
	_, _, err = tasks.SoftDelete(db, task.ID)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := undo.UndoLast(db)
		require.NoError(t, err, "undo %d", i+1)
	}

	// The task is gone as if it never existed and the log is empty.
	_, err = tasks.GetById(db, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, int64(0), countTasks(t, db))
	assert.Equal(t, int64(0), countEvents(t, db))
}

func TestUndoEmptyLog(t *testing.T) {
	db := testutils.SetupTestDB(t)
	undo := &UndoService{}

	_, err := undo.UndoLast(db)
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.Equal(t, int64(0), countTasks(t, db))
}

func TestUndoStaleEventPreserved(t *testing.T) {
	db := testutils.SetupTestDB(t)
	tasks := &TaskService{}
	undo := &UndoService{}

	// A toggle event whose task was later hard-deleted by undoing its
	// own create: the inverse has no target.
	task, err := tasks.Create(db, "ghost", "")
	require.NoError(t, err)
	_, err = tasks.Toggle(db, task.ID)
	require.NoError(t, err)

	require.NoError(t, db.DB.Delete(&models.Task{}, task.ID).Error)

	before := countEvents(t, db)
	_, err = undo.UndoLast(db)
	assert.ErrorIs(t, err, ErrUndoFailed)

	// The event stays so the log and store remain consistent.
	assert.Equal(t, before, countEvents(t, db))
}

func TestUndoUnknownActionPreservesEvent(t *testing.T) {
	db := testutils.SetupTestDB(t)
	undo := &UndoService{}

	stray := models.Event{
		Action:    models.Action("archive"),
		TaskID:    1,
		Payload:   json.RawMessage(`{}`),
		CreatedAt: models.NowUTC(),
	}
	require.NoError(t, db.DB.Create(&stray).Error)

	_, err := undo.UndoLast(db)
	assert.ErrorIs(t, err, ErrUndoUnsupported)
	assert.Equal(t, int64(1), countEvents(t, db))
}
