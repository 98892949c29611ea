package get_pattern_occurrences

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RecurrenceService interface {
	GetNextOccurrences(ctx context.Context, organizationID, patternID uuid.UUID, count int, relativeToStart bool) ([]time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
