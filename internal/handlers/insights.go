package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/analytics"
	"example.com/lifeboard/backend/internal/auth"
	"example.com/lifeboard/backend/internal/config"
	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/repository"
)

type InsightHandler struct {
	Transactions *repository.TransactionRepository
	Tasks        *repository.TaskRepository
	Habits       *repository.HabitRepository
	Settings     config.InsightConfig

	now func() time.Time
}

// NewInsightHandler создает обработчик подсказок дашборда.
func NewInsightHandler(transactions *repository.TransactionRepository, tasks *repository.TaskRepository, habits *repository.HabitRepository, settings config.InsightConfig) *InsightHandler {
	return &InsightHandler{
		Transactions: transactions,
		Tasks:        tasks,
		Habits:       habits,
		Settings:     settings,
		now:          time.Now,
	}
}

// Get собирает сигналы трех доменов и возвращает одну подсказку.
func (h *InsightHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	ctx := c.Request().Context()
	now := h.now()
	today := dates.KeyOf(now)
	month := dates.MonthOf(now)

	txs, err := h.Transactions.List(ctx, userID, monthFilter(month))
	if err != nil {
		return serverError(c)
	}

	finance, err := analytics.ComputeFinanceSignals(txs, month, today)
	if err != nil {
		return malformedData(c, err)
	}

	tasks, err := h.Tasks.List(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	habits, err := h.Habits.List(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	insight := analytics.Evaluate(
		finance,
		analytics.ComputeTaskSignals(tasks, today),
		analytics.ComputeHabitSignals(habits, today),
		h.Settings.DailySpendThresholdCents,
	)

	return c.JSON(http.StatusOK, insight)
}
