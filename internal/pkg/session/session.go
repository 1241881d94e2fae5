// Package session implements cookie sessions backed by redis.
//
// A session id is a UUID stored under "sess:<id>" with the identity as JSON.
// The cookie carries "s:<id>.<signature>" so a forged or altered id is rejected
// before any store lookup.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/uid"
)

// Identity is what a session remembers about the logged-in user.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// Store persists sessions by id.
type Store interface {
	Create(ctx context.Context, identity Identity) (string, error)
	Get(ctx context.Context, id string) (*Identity, error)
	Destroy(ctx context.Context, id string) error
}

// RedisStore keeps sessions in redis with a fixed TTL.
type RedisStore struct {
	client redis.UniversalClient
	ids    uid.StringID
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a RedisStore. A non-positive ttl means 10 minutes.
func NewRedisStore(client redis.UniversalClient, ids uid.StringID, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &RedisStore{client: client, ids: ids, prefix: "sess:", ttl: ttl}
}

// TTL reports how long a session lives.
func (s *RedisStore) TTL() time.Duration {
	return s.ttl
}

// Create stores identity under a fresh id and returns the id.
func (s *RedisStore) Create(ctx context.Context, identity Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}

	id := s.ids.Generate()
	if err := s.client.Set(ctx, s.prefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: store: %w", err)
	}

	return id, nil
}

// Get returns the identity for id, or goerror.ErrNotFound when it expired or never existed.
func (s *RedisStore) Get(ctx context.Context, id string) (*Identity, error) {
	payload, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}

	return &identity, nil
}

// Destroy removes id; removing an unknown id is not an error.
func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.prefix+id).Err()
}
