package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
var ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")

const defaultKafkaBatchTimeout = 10 * time.Millisecond

// KafkaConfig configures the Kafka implementation.
type KafkaConfig struct {
	Brokers []string
	// BatchTimeout bounds how long the writer waits to fill a batch.
	BatchTimeout time.Duration
}

// Kafka publishes through a single writer; the topic is chosen per message.
type Kafka struct {
	gate
	writer *kafka.Writer
}

func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	batch := cfg.BatchTimeout
	if batch <= 0 {
		batch = defaultKafkaBatchTimeout
	}

	return &Kafka{writer: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batch,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}, nil
}

func (k *Kafka) Close() error {
	if !k.shut() {
		return nil
	}
	return k.writer.Close()
}

// Publish writes synchronously; messages sharing a Key land on one partition.
func (k *Kafka) Publish(ctx context.Context, topic string, msg Message) (Receipt, error) {
	if err := k.admit(ctx, topic); err != nil {
		return Receipt{}, err
	}
	if msg.Delay > 0 {
		return Receipt{}, ErrUnsupported
	}

	out := kafka.Message{Topic: topic, Value: msg.Body, Time: time.Now()}
	if msg.Key != "" {
		out.Key = []byte(msg.Key)
	}
	for k, v := range msg.Headers {
		out.Headers = append(out.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	if err := k.writer.WriteMessages(ctx, out); err != nil {
		return Receipt{}, fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return Receipt{Topic: topic, At: out.Time}, nil
}
