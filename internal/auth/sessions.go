package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const refreshKeyPrefix = "refresh:"

// ConnectRedis returns a client for url, or nil when url is empty or the
// server does not answer. A nil client disables session tracking.
func ConnectRedis(ctx context.Context, url string, log *zap.Logger) *redis.Client {
	if url == "" {
		log.Warn("REDIS_URL not set, refresh sessions are not tracked")
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Invalid REDIS_URL, refresh sessions are not tracked", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis connection failed, refresh sessions are not tracked", zap.Error(err))
		client.Close()
		return nil
	}

	log.Info("Connected to Redis", zap.String("addr", opt.Addr))
	return client
}

// SessionStore remembers live refresh tokens by id so they can be revoked.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *SessionStore) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.client.Set(ctx, refreshKeyPrefix+tokenID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh session: %w", err)
	}
	return nil
}

// Active reports whether the refresh token id is still live for the user.
// Without Redis every signed token is accepted.
func (s *SessionStore) Active(ctx context.Context, tokenID string, userID int64) (bool, error) {
	if !s.Enabled() {
		return true, nil
	}
	stored, err := s.client.Get(ctx, refreshKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read refresh session: %w", err)
	}
	return stored == strconv.FormatInt(userID, 10), nil
}

func (s *SessionStore) Revoke(ctx context.Context, tokenID string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.client.Del(ctx, refreshKeyPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh session: %w", err)
	}
	return nil
}
