package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 7 * 24 * time.Hour

// SessionStore keeps the server-side half of each session in Redis.
// The browser cookie is only valid while its record exists here.
type SessionStore struct {
	redis *redis.Client
}

func NewSessionStore(redisClient *redis.Client) *SessionStore {
	return &SessionStore{redis: redisClient}
}

func (s *SessionStore) Create(ctx context.Context, sid string, userID uuid.UUID) error {
	err := s.redis.Set(ctx, "session:"+sid, userID.String(), sessionTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Exists(ctx context.Context, sid string) (bool, error) {
	n, err := s.redis.Exists(ctx, "session:"+sid).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	return s.redis.Del(ctx, "session:"+sid).Err()
}
