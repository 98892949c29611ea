package lock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

func TestResourceKeys_SortedAndUnique(t *testing.T) {
	orgID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	aircraft := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	instructor := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	keys := ResourceKeys(orgID, []domain.ResourceRef{
		{Type: domain.ResourceInstructor, ID: instructor},
		{Type: domain.ResourceAircraft, ID: aircraft},
		{Type: domain.ResourceInstructor, ID: instructor},
	})

	assert.Equal(t, []string{
		"lock:booking:11111111-1111-1111-1111-111111111111:AIRCRAFT:22222222-2222-2222-2222-222222222222",
		"lock:booking:11111111-1111-1111-1111-111111111111:INSTRUCTOR:33333333-3333-3333-3333-333333333333",
	}, keys)
}

func TestNopLocker(t *testing.T) {
	var locker NopLocker

	lock, err := locker.Acquire(context.Background(), []string{"a"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, lock.Keys())
	locker.Release(context.Background(), lock)
}
