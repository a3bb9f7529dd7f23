package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/internal/domain/entities"
	"github.com/meetinglens/meetinglens/pkg/config"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = time.Hour
)

// SessionStore keeps session state in Redis with a bounded TTL. Sessions are
// status records only; finished reports are returned inline and never stored
// here.
type SessionStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSessionStore connects to Redis and verifies the connection.
func NewSessionStore(cfg *config.RedisConfig, addr string, logger *zap.Logger) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &SessionStore{client: client, logger: logger}, nil
}

// Save writes the session, refreshing its TTL.
func (s *SessionStore) Save(ctx context.Context, session *entities.Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return apperrors.ErrCacheFailed("encode session", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, b, sessionTTL).Err(); err != nil {
		return apperrors.ErrCacheFailed("save session", err)
	}
	return nil
}

// Get fetches a session by id.
func (s *SessionStore) Get(ctx context.Context, id string) (*entities.Session, error) {
	b, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrSessionNotFound(id)
		}
		return nil, apperrors.ErrCacheFailed("fetch session", err)
	}

	var session entities.Session
	if err := json.Unmarshal(b, &session); err != nil {
		return nil, apperrors.ErrCacheFailed("decode session", err)
	}
	return &session, nil
}

// Delete removes a session by id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return apperrors.ErrCacheFailed("delete session", err)
	}
	if n == 0 {
		return apperrors.ErrSessionNotFound(id)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client connection pool.
func (s *SessionStore) Close() error {
	return s.client.Close()
}
