package services

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"tasktrail/tasktrail/models"
	"tasktrail/tasktrail/testutils"

	"github.com/stretchr/testify/assert"
)

// Driver-level failures that a real sqlite database won't produce.

func TestCreateRollsBackWhenEventInsertFails(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "events"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := &TaskService{}
	_, err := s.Create(db, "doomed write", "")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPropagatesQueryError(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnError(errors.New("connection reset"))

	s := &TaskService{}
	_, err := s.List(db, models.FilterActive, models.SortRecent)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
