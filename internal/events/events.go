// Package events publishes content change notifications after successful
// writes.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
)

// Action names the kind of write that happened.
type Action string

// Content change actions.
const (
	ActionCreated Action = "created"
	ActionPut     Action = "put"
	ActionPatched Action = "patched"
	ActionDeleted Action = "deleted"
)

// Event is the JSON payload published for each successful write.
type Event struct {
	Action   Action    `json:"action"`
	Endpoint string    `json:"endpoint"`
	ID       string    `json:"id,omitempty"`
	TraceID  string    `json:"trace_id,omitempty"`
	Time     time.Time `json:"time"`
}

// Notifier publishes content change events.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NotifierType selects a notifier backend.
type NotifierType string

const (
	// NotifierTypeNATS publishes to a NATS server.
	NotifierTypeNATS NotifierType = "nats"

	// NotifierTypeNone drops every event.
	NotifierTypeNone NotifierType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired      = errors.New("NATS configuration required for NATS notifier")
	ErrUnsupportedNotifierType = errors.New("unsupported notifier type")
)

// NotifierConfig configures the notifier backend.
type NotifierConfig struct {
	Type NotifierType
	NATS *NATSConfig
}

// ConfigForURL returns a NATS config when url is set and a no-op config
// otherwise.
func ConfigForURL(url string) *NotifierConfig {
	if strings.TrimSpace(url) == "" {
		return &NotifierConfig{Type: NotifierTypeNone}
	}

	return &NotifierConfig{
		Type: NotifierTypeNATS,
		NATS: &NATSConfig{URL: strings.TrimSpace(url)},
	}
}

// NewNotifierFromConfig creates a notifier backend from configuration.
func NewNotifierFromConfig(config *NotifierConfig) (Notifier, error) {
	if config == nil {
		return NewNoOpNotifier(), nil
	}

	switch config.Type {
	case NotifierTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		notifier, err := NewNATSNotifier(config.NATS)
		if err != nil {
			return nil, err
		}

		return notifier, nil

	case NotifierTypeNone, "":
		return NewNoOpNotifier(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedNotifierType, config.Type)
	}
}

// Subject returns "microcms.content.{endpoint}.{action}". Characters that
// have a meaning in NATS subjects are replaced in the endpoint token.
func Subject(endpoint string, action Action) string {
	return constants.EventSubjectPrefix + "." + subjectToken(endpoint) + "." + string(action)
}

func subjectToken(value string) string {
	if value == "" {
		return "_"
	}

	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		default:
			return r
		}
	}, value)
}

// NoOpNotifier drops every event.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new no-op notifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Publish does nothing.
func (n *NoOpNotifier) Publish(ctx context.Context, event Event) error {
	return nil
}

// Close does nothing.
func (n *NoOpNotifier) Close() error {
	return nil
}
