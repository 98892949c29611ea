package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/ptr"
)

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func dates(ss ...string) []time.Time {
	out := make([]time.Time, 0, len(ss))
	for _, s := range ss {
		out = append(out, date(s))
	}
	return out
}

func activePattern(freq domain.Frequency, start string) *domain.RecurringPattern {
	return &domain.RecurringPattern{
		Frequency:      freq,
		Interval:       1,
		StartDate:      date(start),
		ExceptionDates: domain.NewDateSet(),
		Status:         domain.PatternActive,
	}
}

func TestNextOccurrences_Daily(t *testing.T) {
	p := activePattern(domain.FrequencyDaily, "2026-05-04")
	p.Interval = 2

	got := NewExpander().NextOccurrences(p, 3, p.StartDate)

	assert.Equal(t, dates("2026-05-04", "2026-05-06", "2026-05-08"), got)
}

func TestNextOccurrences_WeeklyMondayOnly(t *testing.T) {
	// 2026-05-06 среда, первое вхождение следующий понедельник
	p := activePattern(domain.FrequencyWeekly, "2026-05-06")
	p.DaysOfWeek = domain.NewWeekdaySet(time.Monday)

	got := NewExpander().NextOccurrences(p, 4, p.StartDate)

	require.Len(t, got, 4)
	for _, d := range got {
		assert.Equal(t, time.Monday, d.Weekday(), d.Format(domain.DateFormat))
	}
	assert.Equal(t, date("2026-05-11"), got[0])
}

func TestNextOccurrences_WeeklyInterval(t *testing.T) {
	p := activePattern(domain.FrequencyWeekly, "2026-05-04")
	p.Interval = 2
	p.DaysOfWeek = domain.NewWeekdaySet(time.Monday, time.Wednesday)

	got := NewExpander().NextOccurrences(p, 4, p.StartDate)

	assert.Equal(t, dates("2026-05-04", "2026-05-06", "2026-05-18", "2026-05-20"), got)
}

func TestNextOccurrences_WeeklyEmptyDaysUsesStartWeekday(t *testing.T) {
	p := activePattern(domain.FrequencyWeekly, "2026-05-06")

	got := NewExpander().NextOccurrences(p, 2, p.StartDate)

	assert.Equal(t, dates("2026-05-06", "2026-05-13"), got)
}

func TestNextOccurrences_MonthlyClampsToMonthLength(t *testing.T) {
	p := activePattern(domain.FrequencyMonthly, "2026-01-31")

	got := NewExpander().NextOccurrences(p, 4, p.StartDate)

	assert.Equal(t, dates("2026-01-31", "2026-02-28", "2026-03-31", "2026-04-30"), got)
}

func TestNextOccurrences_ExceptionDoesNotConsumeLimit(t *testing.T) {
	p := activePattern(domain.FrequencyDaily, "2026-05-04")
	p.MaxOccurrences = ptr.Ptr(3)
	p.ExceptionDates = domain.NewDateSet(date("2026-05-05"))

	got := NewExpander().NextOccurrences(p, 10, p.StartDate)

	assert.Equal(t, dates("2026-05-04", "2026-05-06", "2026-05-07"), got)
	for _, d := range got {
		assert.False(t, p.ExceptionDates.Contains(d))
	}
}

func TestNextOccurrences_MaxOccurrencesIsLifetime(t *testing.T) {
	p := activePattern(domain.FrequencyDaily, "2026-05-04")
	p.MaxOccurrences = ptr.Ptr(5)

	got := NewExpander().NextOccurrences(p, 10, date("2026-05-07"))

	assert.Equal(t, dates("2026-05-07", "2026-05-08"), got)
}

func TestNextOccurrences_EndDate(t *testing.T) {
	p := activePattern(domain.FrequencyDaily, "2026-05-04")
	p.EndDate = ptr.Ptr(date("2026-05-06"))

	got := NewExpander().NextOccurrences(p, 10, p.StartDate)

	assert.Equal(t, dates("2026-05-04", "2026-05-05", "2026-05-06"), got)
}

func TestNextOccurrences_FromBeforeStart(t *testing.T) {
	p := activePattern(domain.FrequencyDaily, "2026-05-04")

	got := NewExpander().NextOccurrences(p, 1, date("2026-01-01"))

	assert.Equal(t, dates("2026-05-04"), got)
}

func TestNextOccurrences_InactivePattern(t *testing.T) {
	for _, status := range []domain.PatternStatus{domain.PatternPaused, domain.PatternCancelled} {
		p := activePattern(domain.FrequencyDaily, "2026-05-04")
		p.Status = status

		assert.Empty(t, NewExpander().NextOccurrences(p, 5, p.StartDate), status)
	}
}

func TestNextOccurrences_NonPositiveCount(t *testing.T) {
	p := activePattern(domain.FrequencyDaily, "2026-05-04")

	assert.Empty(t, NewExpander().NextOccurrences(p, 0, p.StartDate))
}
