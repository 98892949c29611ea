package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// validateRequest проверяет входные данные и возвращает все нарушения сразу
func validateRequest(req *Request) error {
	var violations []string

	if !req.ScheduledEnd.After(req.ScheduledStart) {
		violations = append(violations, domain.MsgInvalidTimeRange)
	}

	if req.InstructorID == nil && req.StudentID == nil {
		violations = append(violations, domain.MsgMissingParticipant)
	}

	if !req.BookingType.IsValid() {
		violations = append(violations, fmt.Sprintf("%s: %q", domain.MsgInvalidBookingType, req.BookingType))
	}

	if isNegative(req.PreflightMinutes) || isNegative(req.PostflightMinutes) {
		violations = append(violations, domain.MsgNegativeBuffer)
	}

	if exceeds(req.PreflightMinutes, domain.MaxBufferMinutes) || exceeds(req.PostflightMinutes, domain.MaxBufferMinutes) {
		violations = append(violations, fmt.Sprintf("preflight and postflight minutes must not exceed %d", domain.MaxBufferMinutes))
	}

	if req.EstimatedCost.IsNegative() {
		violations = append(violations, domain.MsgNegativeCost)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		violations = append(violations, fmt.Sprintf("notes longer than %d characters", domain.MaxNotesLength))
	}

	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

func isNegative(v *int) bool {
	return v != nil && *v < 0
}

func exceeds(v *int, limit int) bool {
	return v != nil && *v > limit
}
