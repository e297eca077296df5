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

type GoalHandler struct {
	Goals  *repository.GoalRepository
	XP     *repository.XPRepository
	Hub    *notifications.Hub
	Awards config.GamificationConfig
}

// NewGoalHandler создает обработчик целей.
func NewGoalHandler(goals *repository.GoalRepository, xp *repository.XPRepository, hub *notifications.Hub, awards config.GamificationConfig) *GoalHandler {
	return &GoalHandler{Goals: goals, XP: xp, Hub: hub, Awards: awards}
}

type GoalRequest struct {
	Title             string `json:"title" validate:"required,max=200"`
	Kind              string `json:"kind" validate:"required,oneof=long_term short_term"`
	Deadline          string `json:"deadline" validate:"required"`
	TargetAmountCents int64  `json:"target_amount_cents" validate:"min=0"`
}

type GoalProgressRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,min=1"`
}

type CompleteGoalResponse struct {
	Goal      models.Goal `json:"goal"`
	XPAwarded int64       `json:"xp_awarded"`
}

// List возвращает цели пользователя.
func (h *GoalHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goals, err := h.Goals.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Goal{"goals": goals})
}

// Create добавляет цель.
func (h *GoalHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goal, err := h.bindGoal(c, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.Goals.Create(c.Request().Context(), goal)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid goal")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Update изменяет цель.
func (h *GoalHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	goal, err := h.bindGoal(c, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}
	goal.ID = id

	updated, err := h.Goals.Update(c.Request().Context(), goal)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid goal")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет цель.
func (h *GoalHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	if err := h.Goals.Delete(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddProgress увеличивает накопленную сумму цели.
func (h *GoalHandler) AddProgress(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	var req GoalProgressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	goal, err := h.Goals.AddProgress(c.Request().Context(), userID, id, req.AmountCents)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, goal)
}

// Complete помечает цель выполненной. Повторный вызов идемпотентен:
// XP начисляется только за первое завершение.
func (h *GoalHandler) Complete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	goal, firstTime, err := h.Goals.Complete(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	var awarded int64
	if firstTime {
		result, err := h.XP.Award(c.Request().Context(), userID, h.Awards.GoalXP)
		if err != nil {
			return serverError(c)
		}
		awarded = h.Awards.GoalXP
		publishXPResult(h.Hub, userID, "goal", awarded, result)
	}

	return c.JSON(http.StatusOK, CompleteGoalResponse{Goal: goal, XPAwarded: awarded})
}

func (h *GoalHandler) bindGoal(c echo.Context, userID uuid.UUID) (models.Goal, error) {
	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return models.Goal{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Goal{}, errors.New("validation failed")
	}

	deadline := dates.Key(req.Deadline)
	if !deadline.Valid() {
		return models.Goal{}, errors.New("deadline must be YYYY-MM-DD")
	}

	return models.Goal{
		UserID:            userID,
		Title:             strings.TrimSpace(req.Title),
		Kind:              models.GoalKind(req.Kind),
		Deadline:          deadline,
		TargetAmountCents: req.TargetAmountCents,
	}, nil
}
