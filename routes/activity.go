package routes

import (
	"errors"
	"net/http"

	"tasktrail/tasktrail/database"
	"tasktrail/tasktrail/services"

	"github.com/gin-gonic/gin"
)

// EventView renders one activity feed row with its payload as text.
type EventView struct {
	ID        uint
	Action    string
	TaskID    uint
	Payload   string
	CreatedAt string
}

func RegisterActivityRoutes(group *gin.RouterGroup, db *database.Database, eventService services.EventServiceInterface, undoService services.UndoServiceInterface, streamService services.StreamServiceInterface) {
	group.POST("/undo", func(c *gin.Context) { UndoLast(c, db, undoService) })
	group.GET("/activity", func(c *gin.Context) { Activity(c, db, eventService) })
	group.GET("/ws/activity", func(c *gin.Context) { streamService.HandleConnection(c) })
}

func UndoLast(c *gin.Context, db *database.Database, undoService services.UndoServiceInterface) {
	if _, err := undoService.UndoLast(db); err != nil {
		switch {
		case errors.Is(err, services.ErrNothingToUndo):
			setFlash(c, "info", "Nothing to undo yet.")
		case errors.Is(err, services.ErrUndoFailed):
			setFlash(c, "error", "Undo failed (task may have been removed).")
		case errors.Is(err, services.ErrUndoUnsupported):
			setFlash(c, "error", "Undo not supported for that action yet.")
		default:
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	setFlash(c, "success", "Undid last action.")
	c.Redirect(http.StatusSeeOther, "/")
}

func Activity(c *gin.Context, db *database.Database, eventService services.EventServiceInterface) {
	events, err := eventService.Recent(db.DB, services.MaxRecentEvents)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{
			ID:        e.ID,
			Action:    string(e.Action),
			TaskID:    e.TaskID,
			Payload:   string(e.Payload),
			CreatedAt: e.CreatedAt,
		})
	}

	c.HTML(http.StatusOK, "activity.html", gin.H{
		"Events": views,
		"Flash":  takeFlash(c),
	})
}
