package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/auth"
	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
	"example.com/lifeboard/backend/internal/repository"
)

type TransactionHandler struct {
	Transactions *repository.TransactionRepository
}

// NewTransactionHandler создает обработчик транзакций.
func NewTransactionHandler(transactions *repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions}
}

type TransactionRequest struct {
	AmountCents    int64   `json:"amount_cents" validate:"min=0"`
	Kind           string  `json:"kind" validate:"required,oneof=income expense transfer"`
	PaymentMode    string  `json:"payment_mode" validate:"required,oneof=cash bank investment"`
	Category       string  `json:"category" validate:"required,max=100"`
	InvestmentType *string `json:"investment_type" validate:"omitempty,max=50"`
	Note           *string `json:"note" validate:"omitempty,max=500"`
	OccurredOn     string  `json:"occurred_on" validate:"required"`
}

type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// List возвращает транзакции пользователя с опциональным диапазоном дат.
func (h *TransactionHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	filter := repository.TransactionFilter{}
	if from := c.QueryParam("from"); from != "" {
		if !dates.Key(from).Valid() {
			return badRequest(c, "invalid from date")
		}
		filter.From = dates.Key(from)
	}
	if to := c.QueryParam("to"); to != "" {
		if !dates.Key(to).Valid() {
			return badRequest(c, "invalid to date")
		}
		filter.To = dates.Key(to)
	}
	if filter.From != "" && filter.To != "" && string(filter.To) < string(filter.From) {
		return badRequest(c, "date range is inverted")
	}

	transactions, err := h.Transactions.List(c.Request().Context(), userID, filter)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TransactionListResponse{Transactions: transactions})
}

// Create добавляет транзакцию.
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tx, err := h.bindTransaction(c, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.Transactions.Create(c.Request().Context(), tx)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid transaction")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Update изменяет транзакцию.
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid transaction id")
	}

	tx, err := h.bindTransaction(c, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}
	tx.ID = id

	updated, err := h.Transactions.Update(c.Request().Context(), tx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "transaction not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid transaction")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет транзакцию.
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid transaction id")
	}

	if err := h.Transactions.Delete(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "transaction not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TransactionHandler) bindTransaction(c echo.Context, userID uuid.UUID) (models.Transaction, error) {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return models.Transaction{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Transaction{}, errors.New("validation failed")
	}

	occurredOn := dates.Key(req.OccurredOn)
	if !occurredOn.Valid() {
		return models.Transaction{}, errors.New("occurred_on must be YYYY-MM-DD")
	}

	kind := models.TransactionKind(req.Kind)
	mode := models.PaymentMode(req.PaymentMode)
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return models.Transaction{}, errors.New("category is required")
	}

	investmentType := normalizeOptional(req.InvestmentType)
	if investmentType != nil && !models.IsKnownInvestmentType(*investmentType) {
		return models.Transaction{}, errors.New("unknown investment type")
	}

	// Перевод без инвестиционной пометки не попадает ни в одну месячную
	// корзину, поэтому на границе он обязан быть переводом в инвестиции
	// или выводом из них.
	if kind == models.TransactionKindTransfer {
		flavored := category == models.InvestmentCategory ||
			investmentType != nil ||
			mode == models.PaymentModeInvestment
		if !flavored {
			return models.Transaction{}, errors.New("transfer must reference an investment")
		}
	}

	return models.Transaction{
		UserID:         userID,
		AmountCents:    req.AmountCents,
		Kind:           kind,
		PaymentMode:    mode,
		Category:       category,
		InvestmentType: investmentType,
		Note:           normalizeOptional(req.Note),
		OccurredOn:     occurredOn,
	}, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
