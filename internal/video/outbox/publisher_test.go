package outbox

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/romariotrain/video-catalog/internal/storage/postgres"
	"github.com/romariotrain/video-catalog/internal/video/kafka"
)

func testProducer(t *testing.T) *kafka.Producer {
	t.Helper()
	p, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "video-events",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestNewPublisher_Validation(t *testing.T) {
	producer := testProducer(t)
	repo := &postgres.OutboxRepo{}

	tests := []struct {
		name    string
		cfg     PublisherConfig
		wantErr string
	}{
		{
			name:    "missing outbox repo",
			cfg:     PublisherConfig{Producer: producer, Interval: time.Second, BatchSize: 10},
			wantErr: "outbox repository is required",
		},
		{
			name:    "missing producer",
			cfg:     PublisherConfig{OutboxRepo: repo, Interval: time.Second, BatchSize: 10},
			wantErr: "kafka producer is required",
		},
		{
			name:    "zero interval",
			cfg:     PublisherConfig{OutboxRepo: repo, Producer: producer, BatchSize: 10},
			wantErr: "interval must be positive, got: 0s",
		},
		{
			name:    "zero batch size",
			cfg:     PublisherConfig{OutboxRepo: repo, Producer: producer, Interval: time.Second},
			wantErr: "batch size must be positive, got: 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPublisher(tt.cfg)
			require.Nil(t, p)
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestNewPublisher_Valid(t *testing.T) {
	p, err := NewPublisher(PublisherConfig{
		OutboxRepo: &postgres.OutboxRepo{},
		Producer:   testProducer(t),
		Interval:   time.Second,
		BatchSize:  100,
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)
	require.Equal(t, time.Second, p.interval)
	require.Equal(t, 100, p.batchSize)
}
