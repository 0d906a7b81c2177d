package history

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_AppendAndList(t *testing.T) {
	s, _ := newRedisStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, sampleTurn("sess-1", "failed logins")))
	require.NoError(t, s.Append(ctx, sampleTurn("sess-1", "only vpn")))

	turns, err := s.List(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "failed logins", turns[0].UserQuery)
	assert.Equal(t, "only vpn", turns[1].UserQuery)
	assert.Equal(t, "sess-1", turns[0].SessionID)
	assert.Equal(t, 3, turns[0].ResultCount)
}

func TestRedisStore_RoundTripsParsedQuery(t *testing.T) {
	s, _ := newRedisStore(t, 0)
	ctx := context.Background()

	turn := sampleTurn("sess-1", "failed logins yesterday")
	turn.Parsed.Filters.EventType = "failed_login"
	require.NoError(t, s.Append(ctx, turn))

	turns, err := s.List(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "failed_login", turns[0].Parsed.Filters.EventType)
}

func TestRedisStore_UnknownSession(t *testing.T) {
	s, _ := newRedisStore(t, 0)
	turns, err := s.List(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, sampleTurn("sess-1", "failed logins")))
	assert.Greater(t, mr.TTL("turns:sess-1"), time.Duration(0))

	mr.FastForward(2 * time.Hour)
	turns, err := s.List(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}
