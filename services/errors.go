package services

import "errors"

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrValidation         = errors.New("task title is empty")
	ErrTaskDeleted        = errors.New("task is deleted")
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrUndoFailed         = errors.New("undo target no longer exists")
	ErrUndoUnsupported    = errors.New("undo not supported for this action")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
