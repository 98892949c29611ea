package rules

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Merge сворачивает применимые правила по возрастанию приоритета
// Непустое поле правила с большим приоритетом перезаписывает значение меньшего.
// При равном приоритете сохраняется порядок входного слайса.
func Merge(rules []*domain.BookingRule, scope domain.RuleScope, today time.Time) domain.MergedRules {
	applicable := make([]*domain.BookingRule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsEffective(today) && rule.AppliesTo(scope) {
			applicable = append(applicable, rule)
		}
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority < applicable[j].Priority
	})

	merged := domain.MergedRules{RuleIDs: make([]uuid.UUID, 0, len(applicable))}
	for _, rule := range applicable {
		overrideInt(&merged.MinBookingDuration, rule.MinBookingDuration)
		overrideInt(&merged.MaxBookingDuration, rule.MaxBookingDuration)
		overrideInt(&merged.MinNoticeHours, rule.MinNoticeHours)
		overrideInt(&merged.MaxAdvanceDays, rule.MaxAdvanceDays)
		overrideInt(&merged.FreeCancellationHours, rule.FreeCancellationHours)
		overrideDecimal(&merged.LateCancellationFeePercent, rule.LateCancellationFeePercent)
		overrideDecimal(&merged.NoShowFeePercent, rule.NoShowFeePercent)
		merged.RuleIDs = append(merged.RuleIDs, rule.ID)
	}

	return merged
}

func overrideInt(dst **int, src *int) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func overrideDecimal(dst **decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// ValidateAgainst проверяет бронирование по объединённым правилам и возвращает все нарушения
func ValidateAgainst(merged domain.MergedRules, start, end, now time.Time) []string {
	violations := make([]string, 0)

	if !end.After(start) {
		return append(violations, domain.MsgInvalidTimeRange)
	}

	duration := int(end.Sub(start) / time.Minute)
	if merged.MinBookingDuration != nil && duration < *merged.MinBookingDuration {
		violations = append(violations, fmt.Sprintf("%s: %d < %d minutes",
			domain.MsgDurationBelowMin, duration, *merged.MinBookingDuration))
	}
	if merged.MaxBookingDuration != nil && duration > *merged.MaxBookingDuration {
		violations = append(violations, fmt.Sprintf("%s: %d > %d minutes",
			domain.MsgDurationAboveMax, duration, *merged.MaxBookingDuration))
	}

	notice := start.Sub(now)
	if merged.MinNoticeHours != nil && notice < time.Duration(*merged.MinNoticeHours)*time.Hour {
		violations = append(violations, fmt.Sprintf("%s: %.1f < %d hours",
			domain.MsgInsufficientNotice, notice.Hours(), *merged.MinNoticeHours))
	}
	if merged.MaxAdvanceDays != nil && notice > time.Duration(*merged.MaxAdvanceDays)*24*time.Hour {
		violations = append(violations, fmt.Sprintf("%s: more than %d days",
			domain.MsgTooFarInAdvance, *merged.MaxAdvanceDays))
	}

	return violations
}

// CancellationFee считает плату за отмену за hoursUntilStart часов до начала
//
//	hours >= free_cancellation_hours -> 0, бесплатно
//	0 <= hours < free_cancellation_hours -> cost * late% / 100
//	hours < 0 -> cost * no_show% / 100
//
// Отсутствующие поля: 24 часа, 0%, 0%. Результат округляется до копеек.
func CancellationFee(merged domain.MergedRules, hoursUntilStart float64, estimatedCost decimal.Decimal) domain.CancellationFee {
	freeHours := domain.DefaultFreeCancellationHours
	if merged.FreeCancellationHours != nil {
		freeHours = *merged.FreeCancellationHours
	}

	latePercent := decimal.Zero
	if merged.LateCancellationFeePercent != nil {
		latePercent = *merged.LateCancellationFeePercent
	}

	noShowPercent := decimal.Zero
	if merged.NoShowFeePercent != nil {
		noShowPercent = *merged.NoShowFeePercent
	}

	switch {
	case hoursUntilStart >= float64(freeHours):
		return domain.CancellationFee{Fee: decimal.Zero, IsFree: true}
	case hoursUntilStart >= 0:
		return domain.CancellationFee{Fee: percentOf(estimatedCost, latePercent), IsLate: true}
	default:
		return domain.CancellationFee{Fee: percentOf(estimatedCost, noShowPercent)}
	}
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred).Round(domain.FeeDecimalPlaces)
}
