package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

// Producer publishes outbox payloads to a single topic with bounded
// retries.
type Producer struct {
	writer *kafkago.Writer
	config ProducerConfig
	logger zerolog.Logger
}

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	MaxRetries   int           // default 3
	RetryBackoff time.Duration // default 100ms
	WriteTimeout time.Duration // default 10s
	BatchSize    int           // default 100
	Async        bool
	Logger       zerolog.Logger
}

func NewProducer(cfg ProducerConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers list is empty")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic is empty")
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("max_retries cannot be negative")
	}
	if cfg.RetryBackoff < 0 {
		return nil, fmt.Errorf("retry_backoff cannot be negative")
	}
	if cfg.WriteTimeout < 0 {
		return nil, fmt.Errorf("write_timeout cannot be negative")
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}

	return &Producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.LeastBytes{},
			BatchSize:    cfg.BatchSize,
			WriteTimeout: cfg.WriteTimeout,
			Async:        cfg.Async,
		},
		config: cfg,
		logger: cfg.Logger.With().Str("component", "kafka_producer").Logger(),
	}, nil
}

// Publish writes one message keyed by key, retrying transient write
// failures up to MaxRetries times.
func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	msg := kafkago.Message{
		Key:   []byte(key),
		Value: value,
	}

	var err error
	for attempt := 0; attempt <= p.config.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Str("key", key).
				Msg("retrying publish")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.config.RetryBackoff):
			}
		}

		if err = p.writer.WriteMessages(ctx, msg); err == nil {
			return nil
		}
	}
	return fmt.Errorf("kafka publish: %w", err)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
