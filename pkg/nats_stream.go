package pkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamMessage is one retained message returned by Fetch.
type StreamMessage struct {
	Data      []byte
	Sequence  uint64
	Timestamp int64
}

// NATSStream publishes into a JetStream stream so snapshots outlive
// subscribers, and replays them through a durable consumer.
type NATSStream struct {
	conn     *nats.Conn
	js       jetstream.JetStream
	stream   jetstream.Stream
	consumer jetstream.Consumer
	subject  string
}

type NATSStreamConfig struct {
	URL          string
	Name         string        // client connection name
	StreamName   string        // e.g. "FLOORSYNC_SNAPSHOTS"
	Subject      string        // subject pattern, wildcards allowed
	ConsumerName string        // durable consumer used by Fetch
	MaxAge       time.Duration // retention
	MaxMsgs      int64         // 0 = unlimited
}

// NewNATSStream connects and makes sure the stream and consumer exist.
func NewNATSStream(ctx context.Context, cfg NATSStreamConfig) (*NATSStream, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	streamConfig := jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.Subject},
		MaxAge:   cfg.MaxAge,
	}
	if cfg.MaxMsgs > 0 {
		streamConfig.MaxMsgs = cfg.MaxMsgs
	}

	stream, err := js.CreateOrUpdateStream(ctx, streamConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create/update stream %s: %w", cfg.StreamName, err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          cfg.ConsumerName,
		Durable:       cfg.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		FilterSubject: cfg.Subject,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create/update consumer %s: %w", cfg.ConsumerName, err)
	}

	return &NATSStream{
		conn:     conn,
		js:       js,
		stream:   stream,
		consumer: consumer,
		subject:  cfg.Subject,
	}, nil
}

func (s *NATSStream) Publish(ctx context.Context, topic string, msg []byte) error {
	if _, err := s.js.Publish(ctx, topic, msg); err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}
	return nil
}

// Fetch returns up to limit retained messages, acknowledging each one.
func (s *NATSStream) Fetch(ctx context.Context, limit int) ([]StreamMessage, error) {
	if limit <= 0 {
		limit = 1000
	}

	batch, err := s.consumer.Fetch(limit, jetstream.FetchMaxWait(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []StreamMessage
	for msg := range batch.Messages() {
		metadata, err := msg.Metadata()
		if err != nil {
			_ = msg.Ack()
			continue
		}
		messages = append(messages, StreamMessage{
			Data:      msg.Data(),
			Sequence:  metadata.Sequence.Stream,
			Timestamp: metadata.Timestamp.UnixNano(),
		})
		_ = msg.Ack()
	}
	if err := batch.Error(); err != nil && !errors.Is(err, nats.ErrTimeout) && len(messages) == 0 {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

func (s *NATSStream) Close() error {
	s.conn.Close()
	return nil
}
