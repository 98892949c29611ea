package check_availability

import (
	"time"

	"github.com/google/uuid"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	ResourceType string    `json:"resourceType" validate:"required,oneof=AIRCRAFT INSTRUCTOR STUDENT LOCATION"`
	ResourceID   uuid.UUID `json:"resourceId" validate:"required"`
	Start        time.Time `json:"start" validate:"required"`
	End          time.Time `json:"end" validate:"required"`
}
