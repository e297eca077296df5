package analytics

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
)

type CompletionStat struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

type DayCount struct {
	Date           dates.Key `json:"date"`
	CompletedCount int       `json:"completed_count"`
}

type MonthlyDayStat struct {
	Date      dates.Key `json:"date"`
	Completed int       `json:"completed"`
	Goal      int       `json:"goal"`
	Left      int       `json:"left"`
	Percent   int       `json:"percent"`
}

type LeaderboardEntry struct {
	HabitID      uuid.UUID `json:"habit_id"`
	Title        string    `json:"title"`
	MonthlyCount int       `json:"monthly_count"`
}

type ConsistencyEntry struct {
	HabitID         uuid.UUID `json:"habit_id"`
	Title           string    `json:"title"`
	PrevConsistency int       `json:"prev_consistency"`
	CurrConsistency int       `json:"curr_consistency"`
	Diff            int       `json:"diff"`
}

const (
	DefaultLeaderboardSize = 7
	DefaultAuditSize       = 5
)

// DailyCompletion считает долю привычек, выполненных в указанный день.
// Пустой список дает нулевой процент, а не деление на ноль.
func DailyCompletion(habits []models.Habit, day dates.Key) CompletionStat {
	stat := CompletionStat{Total: len(habits)}
	for _, habit := range habits {
		if habit.Completed(day) {
			stat.Completed++
		}
	}
	stat.Percent = percent(stat.Completed, stat.Total)
	return stat
}

// WeeklyTrend возвращает количество выполненных привычек на каждый день недели.
func WeeklyTrend(habits []models.Habit, week [7]dates.Key) []DayCount {
	trend := make([]DayCount, 0, len(week))
	for _, day := range week {
		count := 0
		for _, habit := range habits {
			if habit.Completed(day) {
				count++
			}
		}
		trend = append(trend, DayCount{Date: day, CompletedCount: count})
	}
	return trend
}

// MonthlyStats строит посуточную статистику месяца. Цель равна числу привычек
// в снимке и держится постоянной на весь месяц.
func MonthlyStats(habits []models.Habit, days []dates.Key) []MonthlyDayStat {
	goal := len(habits)

	stats := make([]MonthlyDayStat, 0, len(days))
	for _, day := range days {
		completed := 0
		for _, habit := range habits {
			if habit.Completed(day) {
				completed++
			}
		}
		stats = append(stats, MonthlyDayStat{
			Date:      day,
			Completed: completed,
			Goal:      goal,
			Left:      goal - completed,
			Percent:   percent(completed, goal),
		})
	}
	return stats
}

// Leaderboard ранжирует привычки по числу выполнений за месяц.
// Сортировка по убыванию, при равенстве сохраняется входной порядок,
// результат обрезается до topN.
func Leaderboard(habits []models.Habit, month dates.Month, topN int) []LeaderboardEntry {
	if topN <= 0 {
		topN = DefaultLeaderboardSize
	}

	entries := make([]LeaderboardEntry, 0, len(habits))
	for _, habit := range habits {
		entries = append(entries, LeaderboardEntry{
			HabitID:      habit.ID,
			Title:        habit.Title,
			MonthlyCount: completionsIn(habit, month),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MonthlyCount > entries[j].MonthlyCount
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// ConsistencyAudit находит привычки, проседающие месяц к месяцу.
// Для текущего (неполного) месяца знаменателем служит число прошедших дней,
// для предыдущего — полное число дней. Возвращаются только привычки с
// текущей консистентностью ниже 100%, по возрастанию, не более bottomN.
func ConsistencyAudit(habits []models.Habit, prev, curr dates.Month, daysElapsedInCurr, daysInPrev, bottomN int) []ConsistencyEntry {
	if bottomN <= 0 {
		bottomN = DefaultAuditSize
	}

	entries := make([]ConsistencyEntry, 0, len(habits))
	for _, habit := range habits {
		prevConsistency := percent(completionsIn(habit, prev), daysInPrev)
		currConsistency := percent(completionsIn(habit, curr), daysElapsedInCurr)
		if currConsistency >= 100 {
			continue
		}
		entries = append(entries, ConsistencyEntry{
			HabitID:         habit.ID,
			Title:           habit.Title,
			PrevConsistency: prevConsistency,
			CurrConsistency: currConsistency,
			Diff:            currConsistency - prevConsistency,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CurrConsistency < entries[j].CurrConsistency
	})

	if len(entries) > bottomN {
		entries = entries[:bottomN]
	}
	return entries
}

// Streak считает текущую серию: сколько последних дней подряд привычка
// выполнялась. Невыполненный сегодняшний день серию не рвет — отсчет
// просто начинается со вчерашнего.
func Streak(habit models.Habit, today dates.Key) int {
	day := today.Time()
	if !habit.Completed(today) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for habit.Completed(dates.KeyOf(day)) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func completionsIn(habit models.Habit, month dates.Month) int {
	count := 0
	for day := range habit.CompletedDates {
		if month.Contains(day) {
			count++
		}
	}
	return count
}

// percent округляет 100*num/den до ближайшего целого; при нулевом
// знаменателе возвращает 0.
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}
