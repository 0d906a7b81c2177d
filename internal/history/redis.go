package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seclens/seclens/internal/models"
)

// RedisStore keeps each session's turn log as a Redis list of JSON blobs.
// RPUSH is atomic per key, which gives the per-session append serialization
// the contract requires without any client-side locking.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a turn store backed by the given Redis client.
// A zero ttl keeps sessions forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Append serializes the turn and pushes it onto the session's list.
func (s *RedisStore) Append(ctx context.Context, turn *models.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}
	key := turnKey(turn.SessionID)
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("refresh session ttl: %w", err)
		}
	}
	return nil
}

// List returns the session's turns in append order.
func (s *RedisStore) List(ctx context.Context, sessionID string) ([]models.Turn, error) {
	entries, err := s.client.LRange(ctx, turnKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}

	turns := make([]models.Turn, 0, len(entries))
	for _, entry := range entries {
		var turn models.Turn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			return nil, fmt.Errorf("unmarshal turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func turnKey(sessionID string) string {
	return fmt.Sprintf("turns:%s", sessionID)
}
