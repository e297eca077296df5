package analytics

import (
	"reflect"
	"testing"

	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
)

// TestEvaluateFallback проверяет фиксированную info-подсказку без сигналов.
func TestEvaluateFallback(t *testing.T) {
	insight := Evaluate(FinanceSignals{}, TaskSignals{}, HabitSignals{}, 0)

	if insight.Kind != InsightInfo || insight.Title != "All Systems Normal" {
		t.Fatalf("unexpected fallback: %+v", insight)
	}
}

// TestEvaluatePicksMaxWeight проверяет выбор подсказки с максимальным весом.
func TestEvaluatePicksMaxWeight(t *testing.T) {
	fin := FinanceSignals{MonthlyIncomeCents: 1000, MonthlyExpenseCents: 2000, SpentTodayCents: 5000}
	tasks := TaskSignals{OverdueCount: 2, HighPriorityPendingCount: 5}
	habits := HabitSignals{TotalHabits: 3, StreaksAtRisk: 1}

	insight := Evaluate(fin, tasks, habits, 2000)

	// Срабатывают правила с весами 10, 8, 9, 7, 6 — побеждает перерасход.
	if insight.Weight != 10 || insight.Kind != InsightDanger {
		t.Fatalf("expected overspend insight, got %+v", insight)
	}
}

// TestEvaluateDeterministic проверяет одинаковый результат на повторных вызовах.
func TestEvaluateDeterministic(t *testing.T) {
	fin := FinanceSignals{MonthlyIncomeCents: 10000, MonthlyExpenseCents: 2000}
	habits := HabitSignals{TotalHabits: 2, CompletedToday: 2}

	first := Evaluate(fin, TaskSignals{}, habits, 2000)
	second := Evaluate(fin, TaskSignals{}, habits, 2000)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic result: %+v vs %+v", first, second)
	}
	// Перфектный день (вес 5) бьет норму сбережений (вес 2).
	if first.Weight != 5 || first.Kind != InsightSuccess {
		t.Fatalf("unexpected insight: %+v", first)
	}
}

// TestEvaluateSavingsRate проверяет правило нормы сбережений выше 20%.
func TestEvaluateSavingsRate(t *testing.T) {
	fin := FinanceSignals{MonthlyIncomeCents: 10000, MonthlyExpenseCents: 7000}

	insight := Evaluate(fin, TaskSignals{}, HabitSignals{}, 2000)
	if insight.Weight != 2 || insight.Kind != InsightSuccess {
		t.Fatalf("expected savings insight, got %+v", insight)
	}

	// Ровно 20% — правило не срабатывает.
	fin.MonthlyExpenseCents = 8000
	insight = Evaluate(fin, TaskSignals{}, HabitSignals{}, 2000)
	if insight.Kind != InsightInfo {
		t.Fatalf("expected fallback at exactly 20%%, got %+v", insight)
	}
}

// TestComputeTaskSignals проверяет подсчет просроченных и приоритетных задач.
func TestComputeTaskSignals(t *testing.T) {
	today := dates.Key("2024-06-12")
	tasks := []models.Task{
		{Title: "Overdue", Priority: models.TaskPriorityHigh, DueOn: "2024-06-10"},
		{Title: "Due today", Priority: models.TaskPriorityHigh, DueOn: "2024-06-12"},
		{Title: "Done", Priority: models.TaskPriorityHigh, DueOn: "2024-06-01", IsCompleted: true},
		{Title: "Later", Priority: models.TaskPriorityLow, DueOn: "2024-06-20"},
	}

	signals := ComputeTaskSignals(tasks, today)
	if signals.OverdueCount != 1 {
		t.Fatalf("expected 1 overdue, got %d", signals.OverdueCount)
	}
	if signals.HighPriorityPendingCount != 2 {
		t.Fatalf("expected 2 high-priority pending, got %d", signals.HighPriorityPendingCount)
	}
}

// TestComputeHabitSignals проверяет привычки под угрозой и выполненные сегодня.
func TestComputeHabitSignals(t *testing.T) {
	today := dates.Key("2024-06-12")
	habits := []models.Habit{
		habit("Done today", "2024-06-10", "2024-06-11", "2024-06-12"),
		habit("At risk", "2024-06-09", "2024-06-10", "2024-06-11"),
		habit("Short streak", "2024-06-11"),
	}

	signals := ComputeHabitSignals(habits, today)
	if signals.TotalHabits != 3 || signals.CompletedToday != 1 {
		t.Fatalf("unexpected signals: %+v", signals)
	}
	if signals.StreaksAtRisk != 1 {
		t.Fatalf("expected 1 streak at risk, got %d", signals.StreaksAtRisk)
	}
}

// TestComputeFinanceSignals проверяет траты за сегодня без инвестиций.
func TestComputeFinanceSignals(t *testing.T) {
	today := dates.Key("2024-06-12")
	month := dates.Month{Year: 2024, Month: 6}

	txs := []models.Transaction{
		tx(models.TransactionKindIncome, models.PaymentModeBank, 10000, "Salary", "2024-06-01"),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 1500, "Food", today),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 700, "Food", "2024-06-11"),
		tx(models.TransactionKindExpense, models.PaymentModeInvestment, 3000, models.InvestmentCategory, today),
	}

	signals, err := ComputeFinanceSignals(txs, month, today)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if signals.SpentTodayCents != 1500 {
		t.Fatalf("expected 1500 spent today, got %d", signals.SpentTodayCents)
	}
	if signals.MonthlyIncomeCents != 10000 || signals.MonthlyExpenseCents != 2200 {
		t.Fatalf("unexpected monthly signals: %+v", signals)
	}
}
