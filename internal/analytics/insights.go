package analytics

import (
	"fmt"

	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
)

type InsightKind string

const (
	InsightDanger  InsightKind = "danger"
	InsightWarning InsightKind = "warning"
	InsightSuccess InsightKind = "success"
	InsightInfo    InsightKind = "info"
)

// Insight — единственная рекомендация, показываемая пользователю.
// Вычисляется заново при каждом вызове и нигде не хранится.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Weight  int         `json:"weight"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// DefaultDailySpendThresholdCents — порог дневных трат для предупреждения,
// в минорных единицах валюты.
const DefaultDailySpendThresholdCents = 2000

type FinanceSignals struct {
	MonthlyIncomeCents  int64
	MonthlyExpenseCents int64
	SpentTodayCents     int64
}

type TaskSignals struct {
	OverdueCount             int
	HighPriorityPendingCount int
}

type HabitSignals struct {
	TotalHabits    int
	CompletedToday int
	StreaksAtRisk  int
}

// ComputeFinanceSignals собирает финансовые сигналы для движка подсказок.
func ComputeFinanceSignals(txs []models.Transaction, month dates.Month, today dates.Key) (FinanceSignals, error) {
	totals, err := MonthlyTotalsFor(txs, month)
	if err != nil {
		return FinanceSignals{}, err
	}

	signals := FinanceSignals{
		MonthlyIncomeCents:  totals.IncomeCents,
		MonthlyExpenseCents: totals.ExpenseCents,
	}

	for _, tx := range txs {
		class, err := Classify(tx)
		if err != nil {
			return FinanceSignals{}, err
		}
		if class == ClassExpense && tx.OccurredOn == today {
			signals.SpentTodayCents += tx.AmountCents
		}
	}

	return signals, nil
}

// ComputeTaskSignals собирает сигналы по задачам: просроченные и
// невыполненные высокоприоритетные. Просрочка — строго раньше начала
// сегодняшнего дня.
func ComputeTaskSignals(tasks []models.Task, today dates.Key) TaskSignals {
	var signals TaskSignals
	for _, task := range tasks {
		if task.IsCompleted {
			continue
		}
		if dates.IsFuture(today, task.DueOn) {
			signals.OverdueCount++
		}
		if task.Priority == models.TaskPriorityHigh {
			signals.HighPriorityPendingCount++
		}
	}
	return signals
}

// ComputeHabitSignals собирает сигналы по привычкам. Привычка «под угрозой»,
// если ее текущая серия длиннее двух дней и сегодня она еще не выполнена.
func ComputeHabitSignals(habits []models.Habit, today dates.Key) HabitSignals {
	signals := HabitSignals{TotalHabits: len(habits)}
	for _, habit := range habits {
		if habit.Completed(today) {
			signals.CompletedToday++
			continue
		}
		if Streak(habit, today) > 2 {
			signals.StreaksAtRisk++
		}
	}
	return signals
}

type rule struct {
	fires   func() bool
	insight func() Insight
}

// Evaluate прогоняет все правила и возвращает подсказку с максимальным
// весом. Правила независимы: сработать может несколько, выбор идет только
// по весу, при равенстве побеждает правило, объявленное раньше. Если не
// сработало ни одно, возвращается фиксированная info-подсказка.
func Evaluate(fin FinanceSignals, tasks TaskSignals, habits HabitSignals, dailySpendThresholdCents int64) Insight {
	if dailySpendThresholdCents <= 0 {
		dailySpendThresholdCents = DefaultDailySpendThresholdCents
	}

	rules := []rule{
		{
			fires: func() bool {
				return fin.MonthlyExpenseCents > fin.MonthlyIncomeCents && fin.MonthlyIncomeCents > 0
			},
			insight: func() Insight {
				delta := fin.MonthlyExpenseCents - fin.MonthlyIncomeCents
				return Insight{
					Kind:    InsightDanger,
					Weight:  10,
					Title:   "Spending Alert",
					Message: fmt.Sprintf("You have overspent this month by %s. Review your expenses.", formatCents(delta)),
				}
			},
		},
		{
			fires: func() bool { return fin.SpentTodayCents > dailySpendThresholdCents },
			insight: func() Insight {
				return Insight{
					Kind:    InsightWarning,
					Weight:  8,
					Title:   "High Spending Today",
					Message: fmt.Sprintf("You have spent %s today, above your daily threshold of %s.", formatCents(fin.SpentTodayCents), formatCents(dailySpendThresholdCents)),
				}
			},
		},
		{
			fires: func() bool { return tasks.OverdueCount > 0 },
			insight: func() Insight {
				return Insight{
					Kind:    InsightDanger,
					Weight:  9,
					Title:   "Overdue Tasks",
					Message: fmt.Sprintf("You have %d overdue task(s). Clear them to stay on track.", tasks.OverdueCount),
				}
			},
		},
		{
			fires: func() bool { return tasks.HighPriorityPendingCount > 3 },
			insight: func() Insight {
				return Insight{
					Kind:    InsightWarning,
					Weight:  7,
					Title:   "High Priority Backlog",
					Message: fmt.Sprintf("%d high-priority tasks are still pending. Consider tackling one now.", tasks.HighPriorityPendingCount),
				}
			},
		},
		{
			fires: func() bool { return habits.TotalHabits > 0 && habits.StreaksAtRisk > 0 },
			insight: func() Insight {
				return Insight{
					Kind:    InsightWarning,
					Weight:  6,
					Title:   "Streaks at Risk",
					Message: fmt.Sprintf("%d habit streak(s) will break if you skip today.", habits.StreaksAtRisk),
				}
			},
		},
		{
			fires: func() bool {
				return habits.TotalHabits > 0 && habits.CompletedToday == habits.TotalHabits
			},
			insight: func() Insight {
				return Insight{
					Kind:    InsightSuccess,
					Weight:  5,
					Title:   "Perfect Day",
					Message: "All habits completed today. Keep the momentum going!",
				}
			},
		},
		{
			fires: func() bool {
				if fin.MonthlyIncomeCents <= fin.MonthlyExpenseCents {
					return false
				}
				saved := fin.MonthlyIncomeCents - fin.MonthlyExpenseCents
				return float64(saved)/float64(fin.MonthlyIncomeCents) > 0.20
			},
			insight: func() Insight {
				saved := fin.MonthlyIncomeCents - fin.MonthlyExpenseCents
				percentage := 100 * float64(saved) / float64(fin.MonthlyIncomeCents)
				return Insight{
					Kind:    InsightSuccess,
					Weight:  2,
					Title:   "Healthy Savings Rate",
					Message: fmt.Sprintf("You are saving %.0f%% of your income this month. Well done.", percentage),
				}
			},
		},
	}

	var best *Insight
	for _, r := range rules {
		if !r.fires() {
			continue
		}
		candidate := r.insight()
		if best == nil || candidate.Weight > best.Weight {
			best = &candidate
		}
	}

	if best == nil {
		return Insight{
			Kind:    InsightInfo,
			Weight:  0,
			Title:   "All Systems Normal",
			Message: "Nothing needs your attention right now. Keep going.",
		}
	}
	return *best
}

// formatCents переводит минорные единицы в десятичную запись.
// Локализация и символ валюты — забота слоя представления.
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
