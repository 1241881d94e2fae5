package messaging

import (
	"context"
	"time"
)

// Noop accepts every message and drops it.
type Noop struct {
	gate
}

// NewNoop returns a Messaging that discards published messages.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Publish(ctx context.Context, topic string, _ Message) (Receipt, error) {
	if err := n.admit(ctx, topic); err != nil {
		return Receipt{}, err
	}
	return Receipt{Topic: topic, At: time.Now()}, nil
}

func (n *Noop) Close() error {
	n.shut()
	return nil
}
