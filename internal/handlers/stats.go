package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/analytics"
	"example.com/lifeboard/backend/internal/auth"
	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
	"example.com/lifeboard/backend/internal/repository"
)

type StatsHandler struct {
	Transactions *repository.TransactionRepository
	Habits       *repository.HabitRepository

	now func() time.Time
}

// NewStatsHandler создает обработчик статистики.
func NewStatsHandler(transactions *repository.TransactionRepository, habits *repository.HabitRepository) *StatsHandler {
	return &StatsHandler{Transactions: transactions, Habits: habits, now: time.Now}
}

// Balances возвращает остатки по банку, наличным и чистый капитал.
func (h *StatsHandler) Balances(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	txs, err := h.Transactions.List(c.Request().Context(), userID, repository.TransactionFilter{})
	if err != nil {
		return serverError(c)
	}

	balances, err := analytics.Balances(txs)
	if err != nil {
		return malformedData(c, err)
	}

	return c.JSON(http.StatusOK, balances)
}

// Monthly возвращает доход, расход и инвестиции за месяц.
func (h *StatsHandler) Monthly(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	month, err := h.monthParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	txs, err := h.Transactions.List(c.Request().Context(), userID, monthFilter(month))
	if err != nil {
		return serverError(c)
	}

	totals, err := analytics.MonthlyTotalsFor(txs, month)
	if err != nil {
		return malformedData(c, err)
	}

	return c.JSON(http.StatusOK, totals)
}

// CategoryBreakdown возвращает разбивку по категориям для income или expense.
func (h *StatsHandler) CategoryBreakdown(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	kind := models.TransactionKind(c.QueryParam("kind"))
	if kind == "" {
		kind = models.TransactionKindExpense
	}
	if kind != models.TransactionKindIncome && kind != models.TransactionKindExpense {
		return badRequest(c, "kind must be income or expense")
	}

	filter := repository.TransactionFilter{}
	if month, err := h.monthParamOptional(c); err != nil {
		return badRequest(c, err.Error())
	} else if month != nil {
		filter = monthFilter(*month)
	}

	txs, err := h.Transactions.List(c.Request().Context(), userID, filter)
	if err != nil {
		return serverError(c)
	}

	breakdown, err := analytics.CategoryBreakdown(txs, kind)
	if err != nil {
		return malformedData(c, err)
	}

	return c.JSON(http.StatusOK, map[string][]analytics.CategoryTotal{"categories": breakdown})
}

// DailySeries возвращает посуточный ряд сумм за диапазон дат.
func (h *StatsHandler) DailySeries(c echo.Context) error {
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

	txs, err := h.Transactions.List(c.Request().Context(), userID, filter)
	if err != nil {
		return serverError(c)
	}

	series, err := analytics.DailySeries(txs)
	if err != nil {
		return malformedData(c, err)
	}

	return c.JSON(http.StatusOK, map[string][]analytics.DailyPoint{"days": series})
}

// Portfolio возвращает чистые вклады по типам инвестиций.
func (h *StatsHandler) Portfolio(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	txs, err := h.Transactions.List(c.Request().Context(), userID, repository.TransactionFilter{})
	if err != nil {
		return serverError(c)
	}

	portfolio, err := analytics.PortfolioByType(txs, models.KnownInvestmentTypes)
	if err != nil {
		return malformedData(c, err)
	}

	return c.JSON(http.StatusOK, map[string][]analytics.InvestmentTotal{"portfolio": portfolio})
}

// HabitsDaily возвращает процент выполнения привычек за день (по умолчанию сегодня).
func (h *StatsHandler) HabitsDaily(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	day := dates.KeyOf(h.now())
	if raw := c.QueryParam("date"); raw != "" {
		day = dates.Key(raw)
		if !day.Valid() {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
	}

	habits, err := h.Habits.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, analytics.DailyCompletion(habits, day))
}

// HabitsWeekly возвращает посуточные счетчики за текущую неделю.
func (h *StatsHandler) HabitsWeekly(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	habits, err := h.Habits.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	week := dates.WeekOf(h.now())
	return c.JSON(http.StatusOK, map[string][]analytics.DayCount{"days": analytics.WeeklyTrend(habits, week)})
}

// HabitsMonthly возвращает календарь выполнения за месяц.
func (h *StatsHandler) HabitsMonthly(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	month, err := h.monthParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	habits, err := h.Habits.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	stats := analytics.MonthlyStats(habits, month.Days())
	return c.JSON(http.StatusOK, map[string][]analytics.MonthlyDayStat{"days": stats})
}

// HabitsLeaderboard возвращает привычки с наибольшим числом отметок за месяц.
func (h *StatsHandler) HabitsLeaderboard(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	month, err := h.monthParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	topN := analytics.DefaultLeaderboardSize
	if raw := c.QueryParam("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid top")
		}
		topN = parsed
	}

	habits, err := h.Habits.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	board := analytics.Leaderboard(habits, month, topN)
	return c.JSON(http.StatusOK, map[string][]analytics.LeaderboardEntry{"leaderboard": board})
}

// HabitsConsistency сравнивает консистентность текущего и прошлого месяца
// и возвращает привычки, которым нужно внимание.
func (h *StatsHandler) HabitsConsistency(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	habits, err := h.Habits.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	now := h.now()
	curr := dates.MonthOf(now)
	prev := curr.Prev()

	audit := analytics.ConsistencyAudit(habits, prev, curr, now.Day(), prev.Len(), analytics.DefaultAuditSize)
	return c.JSON(http.StatusOK, map[string][]analytics.ConsistencyEntry{"habits": audit})
}

func (h *StatsHandler) monthParam(c echo.Context) (dates.Month, error) {
	raw := c.QueryParam("month")
	if raw == "" {
		return dates.MonthOf(h.now()), nil
	}

	month, err := dates.ParseMonth(raw)
	if err != nil {
		return dates.Month{}, errors.New("month must be YYYY-MM")
	}

	return month, nil
}

func (h *StatsHandler) monthParamOptional(c echo.Context) (*dates.Month, error) {
	raw := c.QueryParam("month")
	if raw == "" {
		return nil, nil
	}

	month, err := dates.ParseMonth(raw)
	if err != nil {
		return nil, errors.New("month must be YYYY-MM")
	}

	return &month, nil
}

func monthFilter(month dates.Month) repository.TransactionFilter {
	days := month.Days()
	return repository.TransactionFilter{From: days[0], To: days[len(days)-1]}
}

// malformedData логирует испорченную запись и отвечает 500: такие данные
// не должны были пройти валидацию на записи.
func malformedData(c echo.Context, err error) error {
	slog.Warn("malformed transaction data", slog.String("error", err.Error()))
	return serverError(c)
}
