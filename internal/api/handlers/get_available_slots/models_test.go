package get_available_slots

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

func TestToServiceRequest(t *testing.T) {
	org, aircraft := uuid.New(), uuid.New()
	r := httptest.NewRequest("GET",
		"/availability/slots?resourceType=AIRCRAFT&resourceId="+aircraft.String()+"&date=2026-05-04&durationMinutes=90", nil)

	req, err := ToServiceRequest(r, org)

	require.NoError(t, err)
	assert.Equal(t, org, req.OrganizationID)
	assert.Equal(t, domain.ResourceAircraft, req.ResourceType)
	assert.Equal(t, aircraft, req.ResourceID)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), req.Date)
	assert.Equal(t, 90, req.DurationMinutes)
	assert.Zero(t, req.SlotIntervalMinutes)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	id := uuid.New().String()
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing resource", query: "resourceType=AIRCRAFT&date=2026-05-04&durationMinutes=60"},
		{name: "bad date", query: "resourceType=AIRCRAFT&resourceId=" + id + "&date=04.05.2026&durationMinutes=60"},
		{name: "missing date", query: "resourceType=AIRCRAFT&resourceId=" + id + "&durationMinutes=60"},
		{name: "bad duration", query: "resourceType=AIRCRAFT&resourceId=" + id + "&date=2026-05-04&durationMinutes=long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToServiceRequest(httptest.NewRequest("GET", "/availability/slots?"+tt.query, nil), uuid.New())
			assert.Error(t, err)
		})
	}
}
