package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM bookings"))
	assert.Equal(t, "update", operation("  UPDATE bookings SET status = $1"))
	assert.Equal(t, "unknown", operation(""))
}

func TestGetExecutor_WithoutTx(t *testing.T) {
	db := &PlainDB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))
}

func TestGetExecutor_WithTx(t *testing.T) {
	tx := &SqlTxWrapper{}
	ctx := WithTx(context.Background(), tx)

	assert.True(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(ctx, &PlainDB{}))
}
