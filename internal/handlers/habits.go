package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/auth"
	"example.com/lifeboard/backend/internal/config"
	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
	"example.com/lifeboard/backend/internal/notifications"
	"example.com/lifeboard/backend/internal/repository"
)

type HabitHandler struct {
	Habits *repository.HabitRepository
	XP     *repository.XPRepository
	Hub    *notifications.Hub
	Awards config.GamificationConfig

	now func() time.Time
}

// NewHabitHandler создает обработчик привычек.
func NewHabitHandler(habits *repository.HabitRepository, xp *repository.XPRepository, hub *notifications.Hub, awards config.GamificationConfig) *HabitHandler {
	return &HabitHandler{
		Habits: habits,
		XP:     xp,
		Hub:    hub,
		Awards: awards,
		now:    time.Now,
	}
}

type HabitRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	TargetPerMonth int    `json:"target_per_month" validate:"min=1,max=31"`
}

type ToggleHabitRequest struct {
	Date string `json:"date" validate:"omitempty"`
}

type HabitResponse struct {
	Habit          models.Habit `json:"habit"`
	CompletedDates []dates.Key  `json:"completed_dates"`
}

type ToggleHabitResponse struct {
	Habit          models.Habit `json:"habit"`
	CompletedDates []dates.Key  `json:"completed_dates"`
	NowCompleted   bool         `json:"now_completed"`
	XPAwarded      int64        `json:"xp_awarded"`
}

// List возвращает привычки пользователя.
func (h *HabitHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	habits, err := h.Habits.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	responses := make([]HabitResponse, 0, len(habits))
	for _, habit := range habits {
		responses = append(responses, toHabitResponse(habit))
	}

	return c.JSON(http.StatusOK, map[string][]HabitResponse{"habits": responses})
}

// Create добавляет привычку.
func (h *HabitHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req HabitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	habit, err := h.Habits.Create(c.Request().Context(), models.Habit{
		UserID:         userID,
		Title:          strings.TrimSpace(req.Title),
		TargetPerMonth: req.TargetPerMonth,
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toHabitResponse(habit))
}

// Update изменяет привычку.
func (h *HabitHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid habit id")
	}

	var req HabitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	habit, err := h.Habits.Update(c.Request().Context(), userID, id, strings.TrimSpace(req.Title), req.TargetPerMonth)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "habit not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toHabitResponse(habit))
}

// Delete удаляет привычку.
func (h *HabitHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid habit id")
	}

	if err := h.Habits.Delete(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "habit not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Toggle переключает отметку выполнения за день. Отметка будущим числом
// отклоняется; XP начисляется только при выставлении отметки, снятие
// ничего не отнимает.
func (h *HabitHandler) Toggle(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid habit id")
	}

	var req ToggleHabitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	today := dates.KeyOf(h.now())
	day := today
	if req.Date != "" {
		day = dates.Key(req.Date)
		if !day.Valid() {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
	}

	if dates.IsFuture(day, today) {
		return badRequest(c, "cannot complete a habit in the future")
	}

	nowCompleted, err := h.Habits.Toggle(c.Request().Context(), userID, id, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "habit not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		return serverError(c)
	}

	var awarded int64
	if nowCompleted {
		result, err := h.XP.Award(c.Request().Context(), userID, h.Awards.HabitXP)
		if err != nil {
			return serverError(c)
		}
		awarded = h.Awards.HabitXP
		publishXPResult(h.Hub, userID, "habit", awarded, result)
	}

	habit, err := h.Habits.GetByID(c.Request().Context(), userID, id)
	if err != nil {
		return serverError(c)
	}

	response := toHabitResponse(habit)
	return c.JSON(http.StatusOK, ToggleHabitResponse{
		Habit:          response.Habit,
		CompletedDates: response.CompletedDates,
		NowCompleted:   nowCompleted,
		XPAwarded:      awarded,
	})
}

func toHabitResponse(habit models.Habit) HabitResponse {
	completed := make([]dates.Key, 0, len(habit.CompletedDates))
	for day := range habit.CompletedDates {
		completed = append(completed, day)
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i] < completed[j] })

	return HabitResponse{Habit: habit, CompletedDates: completed}
}
