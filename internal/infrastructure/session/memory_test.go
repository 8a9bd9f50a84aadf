package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemory()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, s.Revoke(ctx, "jti-expired", 0))

	revoked, _ = s.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)
	revoked, _ = s.IsRevoked(ctx, "jti-expired")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = s.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-2", time.Minute))
	assert.Len(t, s.revoked, 1, "expired entries are swept on write")
}
