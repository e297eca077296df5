package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/auth"
	"example.com/lifeboard/backend/internal/models"
	"example.com/lifeboard/backend/internal/repository"
)

type NoteHandler struct {
	Notes *repository.NoteRepository
}

// NewNoteHandler создает обработчик заметок.
func NewNoteHandler(notes *repository.NoteRepository) *NoteHandler {
	return &NoteHandler{Notes: notes}
}

type NoteRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"max=10000"`
	IsPinned bool   `json:"is_pinned"`
}

// List возвращает заметки пользователя.
func (h *NoteHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	notes, err := h.Notes.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Note{"notes": notes})
}

// Create добавляет заметку.
func (h *NoteHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	note, err := h.Notes.Create(c.Request().Context(), models.Note{
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, note)
}

// Update изменяет заметку.
func (h *NoteHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid note id")
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	note, err := h.Notes.Update(c.Request().Context(), models.Note{
		ID:       id,
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "note not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, note)
}

// Delete удаляет заметку.
func (h *NoteHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid note id")
	}

	if err := h.Notes.Delete(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "note not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// TogglePin переключает закрепление заметки.
func (h *NoteHandler) TogglePin(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid note id")
	}

	note, err := h.Notes.TogglePin(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "note not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, note)
}
