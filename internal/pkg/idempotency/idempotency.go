package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrAlreadyInProgress is returned when another request holds the key.
	ErrAlreadyInProgress = errors.New("operation already in progress")
	// ErrAlreadyCompleted is returned when the key finished successfully within its TTL.
	ErrAlreadyCompleted = errors.New("operation already completed")
	// ErrInvalidState is returned when the stored value is not a known state.
	ErrInvalidState = errors.New("invalid state")
)

// State is the stored progress of an idempotent operation.
type State string

const (
	StateNone       State = "none"        // operation can proceed
	StateInProgress State = "in_progress" // operation already in progress
	StateCompleted  State = "completed"   // operation already completed
	StateError      State = "error"       // store could not be read
)

func (s State) String() string {
	return string(s)
}

// Idempotency tracks operations by key so that a retried request runs at most once.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
	Exec(ctx context.Context, key string, fn func() bool, opts ...Option) error
}

// RedisStore implements Idempotency with one redis key per operation.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// New returns a RedisStore keeping keys under "idem:".
func New(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: "idem:"}
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
)

// Option tunes a single Exec call.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

func resolveOptions(opts []Option) execOptions {
	var o execOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}
	return o
}

// WithLockDuration bounds how long an in-progress key blocks retries.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long a completed key is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// Acquire claims key for lockDuration. It reports StateNone when the caller now
// owns the key, or the state an earlier request left behind. SET NX GET claims
// and reads in one round trip (redis >= 7).
func (s *RedisStore) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	prev, err := s.client.SetArgs(ctx, s.prefix+key, StateInProgress.String(), redis.SetArgs{
		Mode: "NX",
		TTL:  lockDuration,
		Get:  true,
	}).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return StateNone, nil
	case err != nil:
		return StateError, err
	}

	if st := State(prev); st == StateInProgress || st == StateCompleted {
		return st, nil
	}
	return StateError, ErrInvalidState
}

func (s *RedisStore) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

// Release forgets key so the operation may be attempted again.
func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Exec runs fn at most once per key. fn reports success; on failure the key
// is released so a retry can run. The outcome is stored even if ctx was
// cancelled meanwhile.
func (s *RedisStore) Exec(ctx context.Context, key string, fn func() bool, opts ...Option) error {
	o := resolveOptions(opts)

	state, err := s.Acquire(ctx, key, o.lockDuration)
	switch {
	case err != nil:
		return err
	case state == StateInProgress:
		return ErrAlreadyInProgress
	case state == StateCompleted:
		return ErrAlreadyCompleted
	}

	detached := context.WithoutCancel(ctx)
	if !fn() {
		return s.Release(detached, key)
	}
	return s.MarkCompleted(detached, key, o.stateTTL)
}
