package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(ctx, "jti-1", now.Add(time.Hour)))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = store.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = store.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked, "a token past its expiry no longer needs to be tracked")
}
