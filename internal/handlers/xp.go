package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/auth"
	"example.com/lifeboard/backend/internal/repository"
)

type XPHandler struct {
	XP *repository.XPRepository
}

// NewXPHandler создает обработчик состояния XP.
func NewXPHandler(xp *repository.XPRepository) *XPHandler {
	return &XPHandler{XP: xp}
}

// Get возвращает уровень и прогресс пользователя.
func (h *XPHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	state, err := h.XP.Get(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, state)
}
