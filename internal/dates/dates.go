// Package dates содержит чистые календарные помощники для агрегаторов:
// ключи дат, границы недели и месяца. Все сравнения идут по календарному
// дню, никогда по моменту времени.
package dates

import "time"

// Layout — каноническое представление календарного дня.
const Layout = "2006-01-02"

// Key — календарный день в виде YYYY-MM-DD.
type Key string

// KeyOf возвращает ключ календарного дня для момента времени.
func KeyOf(t time.Time) Key {
	return Key(t.Format(Layout))
}

// Time возвращает полночь UTC для ключа. Невалидный ключ дает нулевое время.
func (k Key) Time() time.Time {
	t, err := time.Parse(Layout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid сообщает, является ли ключ корректной календарной датой.
func (k Key) Valid() bool {
	_, err := time.Parse(Layout, string(k))
	return err == nil
}

// IsFuture сравнивает два дня строго по календарю: key > today.
// Лексикографическое сравнение ключей совпадает с календарным порядком.
func IsFuture(key, today Key) bool {
	return string(key) > string(today)
}

// WeekOf возвращает дни ISO-недели (понедельник..воскресенье), содержащей ref.
// Понедельник всегда имеет индекс 0 независимо от локали.
func WeekOf(ref time.Time) [7]Key {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // воскресенье
	}
	monday := day.AddDate(0, 0, -offset)

	var week [7]Key
	for i := 0; i < 7; i++ {
		week[i] = KeyOf(monday.AddDate(0, 0, i))
	}
	return week
}

// Month — календарный месяц.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf возвращает месяц, содержащий момент времени.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth разбирает строку YYYY-MM.
func ParseMonth(value string) (Month, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return Month{}, err
	}
	return MonthOf(t), nil
}

// String возвращает представление YYYY-MM.
func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Days возвращает все дни месяца по возрастанию (28..31 элемент).
func (m Month) Days() []Key {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	days := make([]Key, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, KeyOf(d))
	}
	return days
}

// Len возвращает количество дней в месяце.
func (m Month) Len() int {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// Contains сообщает, принадлежит ли день месяцу.
func (m Month) Contains(key Key) bool {
	t := key.Time()
	return t.Year() == m.Year && t.Month() == m.Month
}

// Prev возвращает предыдущий календарный месяц.
func (m Month) Prev() Month {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return MonthOf(first.AddDate(0, -1, 0))
}
