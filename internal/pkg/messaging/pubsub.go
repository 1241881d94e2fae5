package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

// ErrPubSubProjectIDRequired is returned when the project id is missing.
var ErrPubSubProjectIDRequired = errors.New("messaging: pubsub project id is required")

// PubSubConfig configures the Google Pub/Sub implementation.
type PubSubConfig struct {
	ProjectID string
	// CredentialsFile points at a service account JSON; empty uses ADC.
	CredentialsFile string
	// Endpoint overrides the API endpoint, e.g. the local emulator.
	Endpoint string
}

// PubSub publishes to Google Pub/Sub topics, one cached publisher per topic.
type PubSub struct {
	gate
	client *pubsub.Client

	mu   sync.Mutex
	pubs map[string]*pubsub.Publisher
}

func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	}

	c, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub new client: %w", err)
	}

	return &PubSub{client: c, pubs: map[string]*pubsub.Publisher{}}, nil
}

// Close flushes every cached publisher, then closes the client.
func (p *PubSub) Close() error {
	if !p.shut() {
		return nil
	}

	p.mu.Lock()
	pubs := p.pubs
	p.pubs = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}
	return p.client.Close()
}

// Publish waits for the server-assigned message id. Headers become attributes.
func (p *PubSub) Publish(ctx context.Context, topic string, msg Message) (Receipt, error) {
	if err := p.admit(ctx, topic); err != nil {
		return Receipt{}, err
	}
	if msg.Delay > 0 {
		return Receipt{}, ErrUnsupported
	}

	pub, err := p.publisher(topic)
	if err != nil {
		return Receipt{}, err
	}

	id, err := pub.Publish(ctx, &pubsub.Message{Data: msg.Body, Attributes: msg.Headers}).Get(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("messaging: pubsub publish: %w", err)
	}

	return Receipt{ID: id, Topic: topic, At: time.Now()}, nil
}

func (p *PubSub) publisher(topic string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pubs == nil {
		return nil, ErrClosed
	}
	pub, ok := p.pubs[topic]
	if !ok {
		pub = p.client.Publisher(topic)
		p.pubs[topic] = pub
	}
	return pub, nil
}
