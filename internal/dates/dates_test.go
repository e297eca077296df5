package dates

import (
	"testing"
	"time"
)

// TestWeekOfStartsMonday проверяет, что неделя всегда начинается с понедельника.
func TestWeekOfStartsMonday(t *testing.T) {
	// 2024-06-12 — среда.
	week := WeekOf(time.Date(2024, time.June, 12, 15, 30, 0, 0, time.UTC))

	if week[0] != "2024-06-10" {
		t.Fatalf("expected monday 2024-06-10, got %s", week[0])
	}
	if week[6] != "2024-06-16" {
		t.Fatalf("expected sunday 2024-06-16, got %s", week[6])
	}
}

// TestWeekOfSunday проверяет, что воскресенье относится к текущей ISO-неделе.
func TestWeekOfSunday(t *testing.T) {
	week := WeekOf(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC))

	if week[0] != "2024-06-10" {
		t.Fatalf("expected monday 2024-06-10, got %s", week[0])
	}
}

// TestWeekOfCrossesYear проверяет неделю на границе года.
func TestWeekOfCrossesYear(t *testing.T) {
	week := WeekOf(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	if week[0] != "2024-12-30" {
		t.Fatalf("expected monday 2024-12-30, got %s", week[0])
	}
	if week[2] != "2025-01-01" {
		t.Fatalf("expected wednesday 2025-01-01, got %s", week[2])
	}
}

// TestMonthDaysLeapFebruary проверяет високосный февраль.
func TestMonthDaysLeapFebruary(t *testing.T) {
	m := Month{Year: 2024, Month: time.February}

	days := m.Days()
	if len(days) != 29 {
		t.Fatalf("expected 29 days, got %d", len(days))
	}
	if days[0] != "2024-02-01" || days[28] != "2024-02-29" {
		t.Fatalf("unexpected bounds: %s .. %s", days[0], days[28])
	}
	if m.Len() != 29 {
		t.Fatalf("expected Len 29, got %d", m.Len())
	}
}

// TestIsFuture проверяет строгое календарное сравнение.
func TestIsFuture(t *testing.T) {
	today := Key("2024-06-12")

	if !IsFuture("2024-06-13", today) {
		t.Fatal("expected tomorrow to be future")
	}
	if IsFuture("2024-06-12", today) {
		t.Fatal("expected today not to be future")
	}
	if IsFuture("2024-06-11", today) {
		t.Fatal("expected yesterday not to be future")
	}
}

// TestMonthPrevAcrossYear проверяет переход предыдущего месяца через год.
func TestMonthPrevAcrossYear(t *testing.T) {
	m := Month{Year: 2024, Month: time.January}

	prev := m.Prev()
	if prev.Year != 2023 || prev.Month != time.December {
		t.Fatalf("expected 2023-12, got %s", prev.String())
	}
}

// TestParseMonth проверяет разбор YYYY-MM.
func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-06")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !m.Contains("2024-06-30") {
		t.Fatal("expected month to contain its last day")
	}
	if m.Contains("2024-07-01") {
		t.Fatal("expected month not to contain next month")
	}

	if _, err := ParseMonth("2024/06"); err == nil {
		t.Fatal("expected error for invalid format")
	}
}
