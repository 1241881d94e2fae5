package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

// ErrNSQProducerAddrRequired is returned when the producer address is missing.
var ErrNSQProducerAddrRequired = errors.New("messaging: nsq producer address is required")

// NSQConfig configures the NSQ implementation.
type NSQConfig struct {
	// ProducerAddr is the nsqd TCP address.
	ProducerAddr string
	// Config overrides nsq.NewConfig().
	Config *nsq.Config
}

// NSQ publishes to nsqd topics. The TCP connection is opened on first publish.
type NSQ struct {
	gate
	producer *nsq.Producer
}

func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	if cfg.ProducerAddr == "" {
		return nil, ErrNSQProducerAddrRequired
	}

	conf := cfg.Config
	if conf == nil {
		conf = nsq.NewConfig()
	}

	p, err := nsq.NewProducer(cfg.ProducerAddr, conf)
	if err != nil {
		return nil, fmt.Errorf("messaging: nsq new producer: %w", err)
	}
	p.SetLoggerLevel(nsq.LogLevelError)

	return &NSQ{producer: p}, nil
}

func (n *NSQ) Close() error {
	if n.shut() {
		n.producer.Stop()
	}
	return nil
}

// Publish sends only the body; a positive Delay uses deferred publish.
func (n *NSQ) Publish(ctx context.Context, topic string, msg Message) (Receipt, error) {
	if err := n.admit(ctx, topic); err != nil {
		return Receipt{}, err
	}

	var err error
	if msg.Delay > 0 {
		err = n.producer.DeferredPublish(topic, msg.Delay, msg.Body)
	} else {
		err = n.producer.Publish(topic, msg.Body)
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return Receipt{Topic: topic, At: time.Now()}, nil
}
