// Package goroutine runs bounded fire-and-forget background work, such as
// publishing domain events after a request has been answered.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/gopost/internal/pkg/stacktrace"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager gets a
// non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager schedules tasks on an errgroup with a concurrency limit. Tasks get
// the caller's context values without its cancellation. Every task error is
// logged and kept for Wait.
type Manager struct {
	group errgroup.Group

	gate   sync.RWMutex
	closed bool

	errMu sync.Mutex
	errs  []error
}

// NewManager creates a Manager running at most maxGoroutine tasks at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	m := &Manager{}
	m.group.SetLimit(maxGoroutine)
	return m
}

// Go starts f unless the manager is closed or saturated, and reports whether
// it did. Dropped tasks are logged.
func (m *Manager) Go(parent context.Context, name string, f func(ctx context.Context) error) bool {
	if m == nil {
		return false
	}

	m.gate.RLock()
	defer m.gate.RUnlock()

	if m.closed {
		slog.WarnContext(parent, "goroutine manager is closed, skipping task", "task", name)
		return false
	}

	ctx := context.WithoutCancel(parent)
	if !m.group.TryGo(func() error {
		m.run(ctx, name, f)
		return nil
	}) {
		slog.WarnContext(parent, "maximum goroutine limit reached, skipping task", "task", name)
		return false
	}

	return true
}

func (m *Manager) run(ctx context.Context, name string, f func(ctx context.Context) error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		raw := debug.Stack()
		var stack any = string(raw)
		if paths := stacktrace.InternalPaths(raw); len(paths) > 0 {
			stack = paths
		}
		slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "panic", rvr, "stack", stack)
		m.record(fmt.Errorf("task %s panicked: %v", name, rvr))
	}()

	if err := f(ctx); err != nil {
		slog.ErrorContext(ctx, "background task failed", "task", name, "error", err)
		m.record(err)
	}
}

func (m *Manager) record(err error) {
	m.errMu.Lock()
	m.errs = append(m.errs, err)
	m.errMu.Unlock()
}

// Wait closes the manager, waits for running tasks and joins their errors.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.gate.Lock()
	m.closed = true
	m.gate.Unlock()

	_ = m.group.Wait()

	m.errMu.Lock()
	defer m.errMu.Unlock()
	return errors.Join(m.errs...)
}
