package materialize_pattern

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// Request модель запроса на материализацию шаблона
type Request struct {
	OrganizationID  uuid.UUID
	PatternID       uuid.UUID
	ActorID         uuid.UUID
	Count           int
	RelativeToStart bool
	ValidateOnly    bool
}

// Occurrence результат по одной дате: Booking либо Err
type Occurrence struct {
	Date    time.Time
	Booking *domain.Booking
	Err     error
}

// Response модель ответа
type Response struct {
	PatternID   uuid.UUID
	Occurrences []Occurrence
	Created     int
	Failed      int
}
