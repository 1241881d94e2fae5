package messaging

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/atomic"
)

var (
	// ErrUnsupported reports a message option the selected broker cannot honour.
	ErrUnsupported = errors.New("messaging: unsupported operation")
	// ErrClosed reports a publish after Close.
	ErrClosed = errors.New("messaging: client is closed")
	// ErrDestinationRequired reports an empty topic or subject.
	ErrDestinationRequired = errors.New("messaging: destination is required")
)

// Messaging publishes messages to a broker topic (a subject on NATS).
type Messaging interface {
	io.Closer
	Publish(ctx context.Context, topic string, msg Message) (Receipt, error)
}

// Message is a broker-agnostic event payload.
type Message struct {
	Body []byte
	// Key selects the Kafka partition; other brokers ignore it.
	Key string
	// Headers travel as Kafka and NATS headers and as Pub/Sub attributes.
	// NSQ has no header support and drops them.
	Headers map[string]string
	// Delay defers delivery. Only NSQ supports it.
	Delay time.Duration
}

// Receipt describes an accepted publish. ID is set only by brokers that
// assign one.
type Receipt struct {
	ID    string
	Topic string
	At    time.Time
}

// gate holds the lifecycle state shared by every driver.
type gate struct {
	closed atomic.Bool
}

// admit rejects publishes that must not reach the broker.
func (g *gate) admit(ctx context.Context, topic string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.closed.Load() {
		return ErrClosed
	}
	if topic == "" {
		return ErrDestinationRequired
	}
	return nil
}

// shut marks the gate closed and reports whether this call closed it.
func (g *gate) shut() bool {
	return g.closed.CompareAndSwap(false, true)
}
