package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
)

// NATSConfig configures the NATS notifier.
type NATSConfig struct {
	// URL of the NATS server, e.g. "nats://127.0.0.1:4222".
	URL string
	// Name is reported to the server for the connection.
	Name string
	// Timeout bounds the initial connection attempt.
	Timeout time.Duration
}

// publisher is the subset of *nats.Conn used for publishing.
type publisher interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSNotifier publishes events as JSON messages. *nats.Conn is safe for
// concurrent use, so one notifier serves all tool calls.
type NATSNotifier struct {
	conn publisher
}

// NewNATSNotifier connects to the configured server.
func NewNATSNotifier(config *NATSConfig) (*NATSNotifier, error) {
	name := config.Name
	if name == "" {
		name = constants.ServerName
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = constants.ShortHTTPTimeout
	}

	conn, err := nats.Connect(config.URL, nats.Name(name), nats.Timeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", config.URL, err)
	}

	return &NATSNotifier{conn: conn}, nil
}

// Publish sends event on its content subject.
func (n *NATSNotifier) Publish(ctx context.Context, event Event) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}

	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	subject := Subject(event.Endpoint, event.Action)

	err = n.conn.Publish(subject, data)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	return nil
}

// Close flushes pending messages and closes the connection.
func (n *NATSNotifier) Close() error {
	err := n.conn.Drain()
	if err != nil {
		return fmt.Errorf("draining NATS connection: %w", err)
	}

	return nil
}
