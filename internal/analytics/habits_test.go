package analytics

import (
	"reflect"
	"testing"
	"time"

	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
)

func habit(title string, completed ...dates.Key) models.Habit {
	set := make(map[dates.Key]struct{}, len(completed))
	for _, day := range completed {
		set[day] = struct{}{}
	}
	return models.Habit{Title: title, TargetPerMonth: 21, CompletedDates: set}
}

// TestDailyCompletion проверяет процент выполнения за день.
func TestDailyCompletion(t *testing.T) {
	today := dates.Key("2024-06-12")

	stat := DailyCompletion([]models.Habit{habit("Read", today)}, today)
	if stat.Completed != 1 || stat.Total != 1 || stat.Percent != 100 {
		t.Fatalf("unexpected stat: %+v", stat)
	}

	stat = DailyCompletion([]models.Habit{habit("Read", today), habit("Run")}, today)
	if stat.Percent != 50 {
		t.Fatalf("expected 50, got %d", stat.Percent)
	}
}

// TestDailyCompletionEmpty проверяет нулевой процент без деления на ноль.
func TestDailyCompletionEmpty(t *testing.T) {
	stat := DailyCompletion(nil, "2024-06-12")
	if stat.Percent != 0 || stat.Total != 0 {
		t.Fatalf("unexpected stat: %+v", stat)
	}
}

// TestWeeklyTrend проверяет посуточные счетчики за неделю.
func TestWeeklyTrend(t *testing.T) {
	week := dates.WeekOf(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC))
	habits := []models.Habit{
		habit("Read", "2024-06-10", "2024-06-11"),
		habit("Run", "2024-06-10"),
	}

	trend := WeeklyTrend(habits, week)
	if len(trend) != 7 {
		t.Fatalf("expected 7 days, got %d", len(trend))
	}
	if trend[0].CompletedCount != 2 {
		t.Fatalf("expected 2 on monday, got %d", trend[0].CompletedCount)
	}
	if trend[1].CompletedCount != 1 {
		t.Fatalf("expected 1 on tuesday, got %d", trend[1].CompletedCount)
	}
	if trend[6].CompletedCount != 0 {
		t.Fatalf("expected 0 on sunday, got %d", trend[6].CompletedCount)
	}
}

// TestMonthlyStats проверяет постоянную цель и границы процентов.
func TestMonthlyStats(t *testing.T) {
	month := dates.Month{Year: 2024, Month: time.June}
	habits := []models.Habit{
		habit("Read", "2024-06-01"),
		habit("Run", "2024-06-01"),
		habit("Meditate"),
	}

	stats := MonthlyStats(habits, month.Days())
	if len(stats) != 30 {
		t.Fatalf("expected 30 days, got %d", len(stats))
	}

	first := stats[0]
	if first.Completed != 2 || first.Goal != 3 || first.Left != 1 || first.Percent != 67 {
		t.Fatalf("unexpected first day: %+v", first)
	}

	for _, day := range stats {
		if day.Percent < 0 || day.Percent > 100 {
			t.Fatalf("percent out of bounds: %+v", day)
		}
		if day.Goal != 3 {
			t.Fatalf("goal must stay constant: %+v", day)
		}
	}
}

// TestLeaderboard проверяет ранжирование, стабильность и обрезку.
func TestLeaderboard(t *testing.T) {
	month := dates.Month{Year: 2024, Month: time.June}
	habits := []models.Habit{
		habit("Read", "2024-06-01", "2024-06-02"),
		habit("Run", "2024-06-01", "2024-06-02"),
		habit("Meditate", "2024-06-01", "2024-06-02", "2024-06-03"),
		habit("Journal"),
	}

	board := Leaderboard(habits, month, 3)
	if len(board) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(board))
	}
	if board[0].Title != "Meditate" || board[0].MonthlyCount != 3 {
		t.Fatalf("unexpected leader: %+v", board[0])
	}
	// Ничья 2:2 сохраняет входной порядок.
	if board[1].Title != "Read" || board[2].Title != "Run" {
		t.Fatalf("unexpected tie order: %+v", board[1:])
	}

	again := Leaderboard(habits, month, 3)
	if !reflect.DeepEqual(board, again) {
		t.Fatal("expected leaderboard to be deterministic")
	}
}

// TestConsistencyAudit проверяет фильтр, знаменатели и порядок.
func TestConsistencyAudit(t *testing.T) {
	curr := dates.Month{Year: 2024, Month: time.June}
	prev := curr.Prev()

	perfect := habit("Perfect", "2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04")
	slipping := habit("Slipping", "2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05", "2024-06-01")
	dead := habit("Dead", "2024-05-10")

	audit := ConsistencyAudit([]models.Habit{perfect, slipping, dead}, prev, curr, 4, prev.Len(), 5)

	// Perfect: 4/4 прошедших дней = 100%, отфильтрована.
	if len(audit) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(audit), audit)
	}
	// По возрастанию текущей консистентности: Dead (0%) раньше Slipping (25%).
	if audit[0].Title != "Dead" || audit[0].CurrConsistency != 0 {
		t.Fatalf("unexpected first entry: %+v", audit[0])
	}
	if audit[1].Title != "Slipping" || audit[1].CurrConsistency != 25 {
		t.Fatalf("unexpected second entry: %+v", audit[1])
	}
	// 5/31 мая = 16%, diff = 25 - 16.
	if audit[1].PrevConsistency != 16 || audit[1].Diff != 9 {
		t.Fatalf("unexpected prev/diff: %+v", audit[1])
	}
}

// TestStreak проверяет подсчет серии с сегодняшнего и вчерашнего дня.
func TestStreak(t *testing.T) {
	today := dates.Key("2024-06-12")

	done := habit("Read", "2024-06-10", "2024-06-11", "2024-06-12")
	if got := Streak(done, today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}

	// Сегодня еще не выполнено: серия считается со вчера и не рвется.
	pending := habit("Run", "2024-06-09", "2024-06-10", "2024-06-11")
	if got := Streak(pending, today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}

	broken := habit("Meditate", "2024-06-08", "2024-06-09")
	if got := Streak(broken, today); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}
