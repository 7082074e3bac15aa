package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/romariotrain/video-catalog/internal/storage/postgres"
	"github.com/romariotrain/video-catalog/internal/video/kafka"
	"github.com/romariotrain/video-catalog/internal/video/outbox"
)

func run(ctx context.Context, logger zerolog.Logger) error {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return fmt.Errorf("KAFKA_BROKERS is empty")
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "video-events"
	}

	db, err := postgres.Connect(ctx, dsn, postgres.PoolConfig{})
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   topic,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer producer.Close()

	publisher, err := outbox.NewPublisher(outbox.PublisherConfig{
		OutboxRepo: postgres.NewOutboxRepo(db),
		Producer:   producer,
		Interval:   time.Second,
		BatchSize:  100,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("outbox publisher: %w", err)
	}

	if err := publisher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
