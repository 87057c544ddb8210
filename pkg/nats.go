package pkg

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// HandlerFunc processes one message payload.
type HandlerFunc func(ctx context.Context, data []byte) error

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url, name string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name(name))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(topic, msg)
}

// Close flushes pending messages before closing the connection.
func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

type NATSSubscriber struct {
	conn *nats.Conn
	subs []*nats.Subscription
}

func NewNATSSubscriber(url, name string) (*NATSSubscriber, error) {
	conn, err := nats.Connect(url, nats.Name(name))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSSubscriber{conn: conn}, nil
}

// Subscribe delivers every message on topic to handler. Handler errors are
// passed to onError when it is set.
func (s *NATSSubscriber) Subscribe(ctx context.Context, topic string, handler HandlerFunc, onError func(error)) error {
	sub, err := s.conn.Subscribe(topic, func(msg *nats.Msg) {
		if err := handler(ctx, msg.Data); err != nil && onError != nil {
			onError(err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *NATSSubscriber) Close() error {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.conn.Close()
	return nil
}
