package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired is returned when the NATS server URL is missing.
var ErrNATSURLRequired = errors.New("messaging: nats url is required")

// NATSConfig configures the NATS implementation.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS publishes to core NATS subjects.
type NATS struct {
	gate
	conn *nats.Conn
}

func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Close drains buffered messages before closing the connection.
func (n *NATS) Close() error {
	if !n.shut() {
		return nil
	}
	defer n.conn.Close()
	return n.conn.Drain()
}

// Publish sends msg and flushes, so a nil error means the server has it.
func (n *NATS) Publish(ctx context.Context, topic string, msg Message) (Receipt, error) {
	if err := n.admit(ctx, topic); err != nil {
		return Receipt{}, err
	}
	if msg.Delay > 0 {
		return Receipt{}, ErrUnsupported
	}

	out := &nats.Msg{Subject: topic, Data: msg.Body, Header: nats.Header{}}
	for k, v := range msg.Headers {
		out.Header.Set(k, v)
	}

	if err := n.conn.PublishMsg(out); err != nil {
		return Receipt{}, fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return Receipt{}, fmt.Errorf("messaging: nats flush: %w", err)
	}

	return Receipt{Topic: topic, At: time.Now()}, nil
}
