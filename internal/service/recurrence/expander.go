package recurrence

import (
	"time"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// horizonYears ограничивает обход шаблона без end_date и max_occurrences
const horizonYears = 100

// Expander разворачивает шаблон в даты вхождений. Не имеет состояния и побочных эффектов.
type Expander struct{}

// NewExpander создает новый экземпляр Expander
func NewExpander() *Expander {
	return &Expander{}
}

// NextOccurrences возвращает до count дат вхождений начиная с max(start_date, from) по возрастанию
//
// Счётчик max_occurrences ведётся от start_date за всё время жизни шаблона,
// поэтому вызов относительно "сегодня" не может превысить общий лимит.
// Даты-исключения пропускаются и слот лимита не занимают.
func (e *Expander) NextOccurrences(pattern *domain.RecurringPattern, count int, from time.Time) []time.Time {
	result := make([]time.Time, 0)
	if pattern == nil || count <= 0 || pattern.Status != domain.PatternActive {
		return result
	}

	start := domain.DateOf(pattern.StartDate)
	cursor := domain.DateOf(from)
	if cursor.Before(start) {
		cursor = start
	}

	horizon := start.AddDate(horizonYears, 0, 0)
	if pattern.EndDate != nil {
		end := domain.DateOf(*pattern.EndDate)
		if end.Before(horizon) {
			horizon = end
		}
	}

	next := newSequence(pattern, start)
	produced := 0

	for {
		date := next()
		if date.After(horizon) {
			break
		}

		if pattern.ExceptionDates.Contains(date) {
			continue
		}

		produced++
		if pattern.MaxOccurrences != nil && produced > *pattern.MaxOccurrences {
			break
		}

		if date.Before(cursor) {
			continue
		}

		result = append(result, date)
		if len(result) == count {
			break
		}
	}

	return result
}

// sequence возвращает очередную дату-кандидат, каждый вызов строго позже предыдущего
type sequence func() time.Time

func newSequence(pattern *domain.RecurringPattern, start time.Time) sequence {
	interval := pattern.EffectiveInterval()

	switch pattern.Frequency {
	case domain.FrequencyWeekly:
		return weeklySequence(start, interval, pattern.DaysOfWeek)
	case domain.FrequencyMonthly:
		return monthlySequence(start, interval)
	default:
		return dailySequence(start, interval)
	}
}

func dailySequence(start time.Time, interval int) sequence {
	step := 0
	return func() time.Time {
		date := start.AddDate(0, 0, step*interval)
		step++
		return date
	}
}

// weeklySequence идёт по дням и оставляет дни из days в каждой interval-й неделе
// Неделя начинается с понедельника; пустой набор дней означает день недели start_date.
func weeklySequence(start time.Time, interval int, days domain.WeekdaySet) sequence {
	if days.IsEmpty() {
		days = domain.NewWeekdaySet(start.Weekday())
	}

	anchor := mondayOf(start)
	day := start.AddDate(0, 0, -1)

	return func() time.Time {
		for {
			day = day.AddDate(0, 0, 1)

			week := int(mondayOf(day).Sub(anchor).Hours()/24) / 7
			if week%interval != 0 {
				// пропускаем неактивную неделю целиком
				day = mondayOf(day).AddDate(0, 0, 6)
				continue
			}

			if days.Contains(day.Weekday()) {
				return day
			}
		}
	}
}

// monthlySequence сохраняет день месяца start_date, обрезая его по длине месяца
func monthlySequence(start time.Time, interval int) sequence {
	step := 0
	return func() time.Time {
		firstOfMonth := time.Date(start.Year(), start.Month()+time.Month(step*interval), 1, 0, 0, 0, 0, time.UTC)
		step++

		day := start.Day()
		if last := daysIn(firstOfMonth); day > last {
			day = last
		}
		return firstOfMonth.AddDate(0, 0, day-1)
	}
}

func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
