package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/CWN221/Flask-To-Do-List/internal/errors"
	"github.com/CWN221/Flask-To-Do-List/internal/model"
	"github.com/CWN221/Flask-To-Do-List/internal/service"
)

// TaskHandler handles the task CRUD endpoints.
type TaskHandler struct {
	svc service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// TaskListResponse is the listing payload. Flash carries the notification
// left by the previous redirect, if any.
type TaskListResponse struct {
	Tasks []model.Task `json:"tasks"`
	Flash *Flash       `json:"flash,omitempty"`
}

// List godoc
// @Summary List tasks, most recently created first
// @Tags tasks
// @Produce json
// @Success 200 {object} TaskListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router / [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.svc.ListTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}
	return c.JSON(http.StatusOK, TaskListResponse{Tasks: tasks, Flash: popFlash(c)})
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept x-www-form-urlencoded
// @Param title formData string true "Task title"
// @Param priority formData string false "Priority, defaults to Medium"
// @Param due_date formData string false "Due date (YYYY-MM-DD)"
// @Success 303 {string} string "redirects to /"
// @Router / [post]
func (h *TaskHandler) Create(c echo.Context) error {
	title := c.FormValue("title")
	priority := c.FormValue("priority")
	dueDate := c.FormValue("due_date")

	_, err := h.svc.CreateTask(c.Request().Context(), title, priority, dueDate)
	switch {
	case errors.Is(err, apperrors.ErrTitleRequired):
		setFlash(c, flashError, "Task title is required!")
		return c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, apperrors.ErrInvalidDueDate):
		setFlash(c, flashError, "Due date must be in YYYY-MM-DD format.")
		return c.Redirect(http.StatusSeeOther, "/")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create task")
	}

	setFlash(c, flashSuccess, "Task added successfully.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// ToggleComplete godoc
// @Summary Invert the done flag of a task
// @Tags tasks
// @Param id path int true "Task ID"
// @Success 303 {string} string "redirects to /"
// @Failure 404 {object} errors.ErrorResponse
// @Router /complete/{id} [get]
func (h *TaskHandler) ToggleComplete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	if _, err := h.svc.ToggleDone(c.Request().Context(), id); err != nil {
		return mapTaskError(err)
	}

	setFlash(c, flashSuccess, "Task Updated.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditForm godoc
// @Summary Fetch a task's current values for editing
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /edit/{id} [get]
func (h *TaskHandler) EditForm(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	task, err := h.svc.GetTask(c.Request().Context(), id)
	if err != nil {
		return mapTaskError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Edit godoc
// @Summary Overwrite a task's title, priority and due date
// @Tags tasks
// @Accept x-www-form-urlencoded
// @Param id path int true "Task ID"
// @Param title formData string false "Task title (may be empty)"
// @Param priority formData string false "Priority"
// @Param due_date formData string false "Due date (YYYY-MM-DD)"
// @Success 303 {string} string "redirects to /"
// @Failure 404 {object} errors.ErrorResponse
// @Router /edit/{id} [post]
func (h *TaskHandler) Edit(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	title := c.FormValue("title")
	priority := c.FormValue("priority")
	dueDate := c.FormValue("due_date")

	if _, err := h.svc.UpdateTask(c.Request().Context(), id, title, priority, dueDate); err != nil {
		if errors.Is(err, apperrors.ErrInvalidDueDate) {
			setFlash(c, flashError, "Due date must be in YYYY-MM-DD format.")
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return mapTaskError(err)
	}

	setFlash(c, flashSuccess, "Task Updated successfully")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Delete godoc
// @Summary Delete a task permanently
// @Tags tasks
// @Param id path int true "Task ID"
// @Success 303 {string} string "redirects to /"
// @Failure 404 {object} errors.ErrorResponse
// @Router /delete/{id} [get]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	if err := h.svc.DeleteTask(c.Request().Context(), id); err != nil {
		return mapTaskError(err)
	}

	setFlash(c, flashSuccess, "Task deleted.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// taskID parses the :id path parameter. A non-numeric ID is treated the same
// as a missing task.
func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func mapTaskError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
