package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/auth"
	"example.com/lifeboard/backend/internal/config"
	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
	"example.com/lifeboard/backend/internal/notifications"
	"example.com/lifeboard/backend/internal/repository"
)

type TaskHandler struct {
	Tasks  *repository.TaskRepository
	XP     *repository.XPRepository
	Hub    *notifications.Hub
	Awards config.GamificationConfig
}

// NewTaskHandler создает обработчик задач.
func NewTaskHandler(tasks *repository.TaskRepository, xp *repository.XPRepository, hub *notifications.Hub, awards config.GamificationConfig) *TaskHandler {
	return &TaskHandler{Tasks: tasks, XP: xp, Hub: hub, Awards: awards}
}

type TaskRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Priority string  `json:"priority" validate:"required,oneof=high medium low"`
	DueOn    string  `json:"due_on" validate:"required"`
	GoalID   *string `json:"goal_id" validate:"omitempty,uuid"`
}

type ToggleTaskResponse struct {
	Task      models.Task `json:"task"`
	XPAwarded int64       `json:"xp_awarded"`
}

// List возвращает задачи пользователя.
func (h *TaskHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tasks, err := h.Tasks.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Task{"tasks": tasks})
}

// Create добавляет задачу.
func (h *TaskHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	task, err := h.bindTask(c, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.Tasks.Create(c.Request().Context(), task)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid task")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Update изменяет задачу.
func (h *TaskHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid task id")
	}

	task, err := h.bindTask(c, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}
	task.ID = id

	updated, err := h.Tasks.Update(c.Request().Context(), task)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "task not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid task")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет задачу.
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid task id")
	}

	if err := h.Tasks.Delete(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "task not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Toggle переключает статус задачи. XP начисляется при переходе в
// выполненное состояние; обратный переход ничего не отнимает.
func (h *TaskHandler) Toggle(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid task id")
	}

	task, err := h.Tasks.Toggle(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "task not found")
		}
		return serverError(c)
	}

	var awarded int64
	if task.IsCompleted {
		result, err := h.XP.Award(c.Request().Context(), userID, h.Awards.TaskXP)
		if err != nil {
			return serverError(c)
		}
		awarded = h.Awards.TaskXP
		publishXPResult(h.Hub, userID, "task", awarded, result)
	}

	return c.JSON(http.StatusOK, ToggleTaskResponse{Task: task, XPAwarded: awarded})
}

func (h *TaskHandler) bindTask(c echo.Context, userID uuid.UUID) (models.Task, error) {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return models.Task{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Task{}, errors.New("validation failed")
	}

	dueOn := dates.Key(req.DueOn)
	if !dueOn.Valid() {
		return models.Task{}, errors.New("due_on must be YYYY-MM-DD")
	}

	var goalID *uuid.UUID
	if req.GoalID != nil {
		parsed, err := uuid.Parse(*req.GoalID)
		if err != nil {
			return models.Task{}, errors.New("invalid goal id")
		}
		goalID = &parsed
	}

	return models.Task{
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Priority: models.TaskPriority(req.Priority),
		DueOn:    dueOn,
		GoalID:   goalID,
	}, nil
}
