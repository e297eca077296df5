package handlers

import (
	"testing"
	"time"

	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
)

// TestMonthFilter проверяет границы диапазона для месяца.
func TestMonthFilter(t *testing.T) {
	filter := monthFilter(dates.Month{Year: 2024, Month: time.June})
	if filter.From != "2024-06-01" || filter.To != "2024-06-30" {
		t.Fatalf("unexpected filter: %+v", filter)
	}

	leap := monthFilter(dates.Month{Year: 2024, Month: time.February})
	if leap.To != "2024-02-29" {
		t.Fatalf("expected leap february end, got %s", leap.To)
	}
}

// TestToHabitResponseOrder проверяет сортировку дат выполнения по возрастанию.
func TestToHabitResponseOrder(t *testing.T) {
	habit := models.Habit{
		Title: "Read",
		CompletedDates: map[dates.Key]struct{}{
			"2024-06-10": {},
			"2024-06-01": {},
			"2024-06-05": {},
		},
	}

	response := toHabitResponse(habit)
	want := []dates.Key{"2024-06-01", "2024-06-05", "2024-06-10"}
	if len(response.CompletedDates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(response.CompletedDates))
	}
	for i := range want {
		if response.CompletedDates[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], response.CompletedDates[i])
		}
	}
}
