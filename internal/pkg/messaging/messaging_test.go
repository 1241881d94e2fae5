package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDriver(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		opts    FactoryOptions
		wantErr error
	}{
		{name: "empty driver is noop", driver: ""},
		{name: "none", driver: " NONE "},
		{name: "unknown", driver: "rabbit", wantErr: ErrUnknownDriver},
		{name: "nsq without address", driver: DriverNSQ, wantErr: ErrNSQProducerAddrRequired},
		{name: "kafka without brokers", driver: DriverKafka, wantErr: ErrKafkaBrokersRequired},
		{name: "nats without url", driver: DriverNATS, wantErr: ErrNATSURLRequired},
		{name: "pubsub without project", driver: DriverGooglePubSub, wantErr: ErrPubSubProjectIDRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewFromDriver(context.Background(), tt.driver, tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &Noop{}, m)
		})
	}
}

func TestNewFromDriver_NSQIsLazy(t *testing.T) {
	m, err := NewFromDriver(context.Background(), DriverNSQ, FactoryOptions{
		NSQ: NSQConfig{ProducerAddr: "127.0.0.1:4150"},
	})
	require.NoError(t, err)
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())

	_, err = m.Publish(context.Background(), "user.created", Message{Body: []byte("{}")})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNoop_Publish(t *testing.T) {
	n := NewNoop()

	res, err := n.Publish(context.Background(), "post.created", Message{Body: []byte(`{"id":1}`)})
	require.NoError(t, err)
	assert.Equal(t, "post.created", res.Topic)
	assert.False(t, res.At.IsZero())

	_, err = n.Publish(context.Background(), "", Message{})
	assert.ErrorIs(t, err, ErrDestinationRequired)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = n.Publish(ctx, "post.created", Message{})
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, n.Close())
	_, err = n.Publish(context.Background(), "post.created", Message{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestGate(t *testing.T) {
	var g gate

	assert.NoError(t, g.admit(context.Background(), "user.created"))
	assert.True(t, g.shut())
	assert.False(t, g.shut())
	assert.ErrorIs(t, g.admit(context.Background(), "user.created"), ErrClosed)
}
