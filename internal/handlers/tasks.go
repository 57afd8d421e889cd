package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO shared by task create and update.
type taskRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// parseTaskID reads the :id path parameter; writes a 400 and returns false
// on garbage input.
func parseTaskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

// writeTaskError maps service errors for task operations. Absent and
// foreign tasks both read as 404; ownership is never confirmed or denied.
func (h *Handler) writeTaskError(c *gin.Context, err error, logKey string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeValidationError(c, vErr)
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "task operation failed"})
	}
}

// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body  taskRequest  true  "Task payload"
// @Success      200  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /tasks [post]
// @Security     BearerAuth
func (h *Handler) createTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "invalid or expired token")
		return
	}

	var req taskRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	task, err := h.services.Tasks.Create(c.Request.Context(), user.ID, service.TaskInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeTaskError(c, err, "task_create_failed")
		return
	}

	c.JSON(http.StatusOK, task)
}

// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, tasks"
// @Failure      401  {object}  map[string]string
// @Router       /tasks [get]
// @Security     BearerAuth
func (h *Handler) listTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "invalid or expired token")
		return
	}

	tasks, err := h.services.Tasks.List(c.Request.Context(), user.ID)
	if err != nil {
		h.writeTaskError(c, err, "task_list_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// @Summary      Get one task
// @Tags         tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "invalid or expired token")
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.services.Tasks.GetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.writeTaskError(c, err, "task_get_failed")
		return
	}

	c.JSON(http.StatusOK, task)
}

// @Summary      Update task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Task ID"
// @Param        body  body  taskRequest  true  "Task payload"
// @Success      200  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "invalid or expired token")
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req taskRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	task, err := h.services.Tasks.Update(c.Request.Context(), user.ID, id, service.TaskInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeTaskError(c, err, "task_update_failed")
		return
	}

	c.JSON(http.StatusOK, task)
}

// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "invalid or expired token")
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.services.Tasks.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.writeTaskError(c, err, "task_delete_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
