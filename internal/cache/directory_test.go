package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lexmarket/internal/domain"
)

func newTestCache(t *testing.T) (*DirectoryCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewDirectoryCacheWithClient(rdb, 30*time.Second, zap.NewNop()), mr
}

func TestDirectoryCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok, "empty cache must miss")

	profiles := []domain.LawyerProfile{
		{ID: "l1", FirstName: "Sarah", LastName: "Mitchell", Specialties: []string{"Family Law"}, HourlyRate: 150},
		{ID: "l2", FirstName: "David", LastName: "Chen", Specialties: []string{"Corporate Law"}, HourlyRate: 350},
	}
	c.Set(ctx, profiles)

	got, ok := c.Get(ctx)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "l1", got[0].ID)
	assert.Equal(t, []string{"Corporate Law"}, got[1].Specialties)
}

func TestDirectoryCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, []domain.LawyerProfile{{ID: "l1"}})
	c.Invalidate(ctx)

	_, ok := c.Get(ctx)
	assert.False(t, ok)
}

func TestDirectoryCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, []domain.LawyerProfile{{ID: "l1"}})
	mr.FastForward(time.Minute)

	_, ok := c.Get(ctx)
	assert.False(t, ok)
}

func TestDirectoryCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("lawyers:directory", "not-json"))

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	// The corrupt entry is dropped so the next write starts clean.
	assert.False(t, mr.Exists("lawyers:directory"))
}
