package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ctxKey struct{}

func TestManager_Go(t *testing.T) {
	m := NewManager(4)

	var ran atomic.Int32
	errBoom := errors.New("boom")

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "cid"))
	cancel()

	assert.True(t, m.Go(ctx, "ok", func(ctx context.Context) error {
		ran.Add(1)
		assert.NoError(t, ctx.Err())
		assert.Equal(t, "cid", ctx.Value(ctxKey{}))
		return nil
	}))
	assert.True(t, m.Go(context.Background(), "fail", func(context.Context) error {
		ran.Add(1)
		return errBoom
	}))
	assert.True(t, m.Go(context.Background(), "panic", func(context.Context) error {
		ran.Add(1)
		panic("oops")
	}))

	err := m.Wait()
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorContains(t, err, "task panic panicked: oops")
	assert.Equal(t, int32(3), ran.Load())

	assert.False(t, m.Go(context.Background(), "late", func(context.Context) error { return nil }))
}

func TestManager_Limit(t *testing.T) {
	m := NewManager(1)

	release := make(chan struct{})
	started := make(chan struct{})

	assert.True(t, m.Go(context.Background(), "slow", func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	assert.False(t, m.Go(context.Background(), "extra", func(context.Context) error { return nil }))

	close(release)
	assert.NoError(t, m.Wait())
}

func TestManager_Nil(t *testing.T) {
	var m *Manager
	assert.False(t, m.Go(context.Background(), "nil", func(context.Context) error { return nil }))
	assert.NoError(t, m.Wait())
}
