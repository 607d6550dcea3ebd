package routes

import (
	"errors"
	"net/http"
	"strconv"

	"tasktrail/tasktrail/database"
	"tasktrail/tasktrail/models"
	"tasktrail/tasktrail/services"

	"github.com/gin-gonic/gin"
)

// TaskView pairs a task with its derived badge for rendering.
type TaskView struct {
	Task  models.Task
	Badge models.Badge
}

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface, eventService services.EventServiceInterface) {
	group.GET("/", func(c *gin.Context) { Index(c, db, taskService, eventService) })
	group.POST("/add", func(c *gin.Context) { AddTask(c, db, taskService) })
	group.POST("/toggle/:id", func(c *gin.Context) { ToggleTask(c, db, taskService) })
	group.GET("/edit/:id", func(c *gin.Context) { EditPage(c, db, taskService) })
	group.POST("/edit/:id", func(c *gin.Context) { EditTask(c, db, taskService) })
	group.POST("/delete/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	group.POST("/restore/:id", func(c *gin.Context) { RestoreTask(c, db, taskService) })
}

func Index(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, eventService services.EventServiceInterface) {
	filter := models.ParseTaskFilter(c.Query("show"))
	sort := models.ParseTaskSort(c.Query("sort"))

	tasks, err := taskService.List(db, filter, sort)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	today := models.TodayUTC()
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{Task: t, Badge: models.BadgeFor(t, today)})
	}

	lastEvent, err := eventService.MostRecent(db.DB)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Tasks":     views,
		"Show":      filter,
		"Sort":      sort,
		"LastEvent": lastEvent,
		"Flash":     takeFlash(c),
	})
}

func AddTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	title := c.PostForm("title")
	dueDate := c.PostForm("due_date")

	if _, err := taskService.Create(db, title, dueDate); err != nil {
		if errors.Is(err, services.ErrValidation) {
			setFlash(c, "error", "Task title can't be empty.")
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func ToggleTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if _, err := taskService.Toggle(db, id); err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.String(http.StatusNotFound, "Task not found")
		case errors.Is(err, services.ErrTaskDeleted):
			setFlash(c, "error", "Can't toggle a deleted task.")
			c.Redirect(http.StatusSeeOther, "/?show=deleted")
		default:
			c.String(http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func EditPage(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := taskService.GetById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.String(http.StatusNotFound, "Task not found")
			return
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.HTML(http.StatusOK, "edit.html", gin.H{
		"Task":  task,
		"Flash": takeFlash(c),
	})
}

func EditTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	dueDate := c.PostForm("due_date")

	if _, err := taskService.Edit(db, id, title, dueDate); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			setFlash(c, "error", "Task title can't be empty.")
			c.Redirect(http.StatusSeeOther, "/edit/"+strconv.FormatUint(uint64(id), 10))
		case errors.Is(err, services.ErrTaskNotFound):
			c.String(http.StatusNotFound, "Task not found")
		default:
			c.String(http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	_, changed, err := taskService.SoftDelete(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.String(http.StatusNotFound, "Task not found")
			return
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	if !changed {
		// Already deleted; nothing was logged.
		c.Redirect(http.StatusSeeOther, "/?show=deleted")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func RestoreTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	_, changed, err := taskService.Restore(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.String(http.StatusNotFound, "Task not found")
			return
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	if !changed {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.Redirect(http.StatusSeeOther, "/?show=deleted")
}

// taskID parses the :id path parameter, answering 404 itself on garbage.
func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Task not found")
		return 0, false
	}
	return uint(id), true
}
