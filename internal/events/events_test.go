package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPublishFailed = errors.New("publish failed")

type fakePublisher struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}

	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)

	return nil
}

func (p *fakePublisher) Drain() error {
	p.drained = true

	return nil
}

func TestSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		action   Action
		expected string
	}{
		{name: "simple", endpoint: "blog", action: ActionCreated, expected: "microcms.content.blog.created"},
		{name: "dotted endpoint", endpoint: "a.b", action: ActionDeleted, expected: "microcms.content.a_b.deleted"},
		{name: "wildcards", endpoint: "x*>", action: ActionPut, expected: "microcms.content.x__.put"},
		{name: "empty endpoint", endpoint: "", action: ActionPatched, expected: "microcms.content._.patched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Subject(tt.endpoint, tt.action))
		})
	}
}

func TestNATSNotifier_Publish(t *testing.T) {
	t.Parallel()
	t.Run("publishes json on content subject", func(t *testing.T) {
		t.Parallel()

		conn := &fakePublisher{}
		notifier := &NATSNotifier{conn: conn}

		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		err := notifier.Publish(context.Background(), Event{
			Action:   ActionCreated,
			Endpoint: "blog",
			ID:       "abc",
			TraceID:  "trace-1",
			Time:     at,
		})
		require.NoError(t, err)
		require.Len(t, conn.subjects, 1)
		assert.Equal(t, "microcms.content.blog.created", conn.subjects[0])

		var decoded map[string]interface{}

		require.NoError(t, json.Unmarshal(conn.payloads[0], &decoded))
		assert.Equal(t, "created", decoded["action"])
		assert.Equal(t, "blog", decoded["endpoint"])
		assert.Equal(t, "abc", decoded["id"])
		assert.Equal(t, "trace-1", decoded["trace_id"])
		assert.Equal(t, "2026-01-02T03:04:05Z", decoded["time"])
	})

	t.Run("fills missing time", func(t *testing.T) {
		t.Parallel()

		conn := &fakePublisher{}
		notifier := &NATSNotifier{conn: conn}

		require.NoError(t, notifier.Publish(context.Background(), Event{Action: ActionDeleted, Endpoint: "blog"}))

		var decoded Event

		require.NoError(t, json.Unmarshal(conn.payloads[0], &decoded))
		assert.False(t, decoded.Time.IsZero())
	})

	t.Run("wraps publish errors", func(t *testing.T) {
		t.Parallel()

		notifier := &NATSNotifier{conn: &fakePublisher{err: errPublishFailed}}

		err := notifier.Publish(context.Background(), Event{Action: ActionPut, Endpoint: "blog"})
		require.ErrorIs(t, err, errPublishFailed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		conn := &fakePublisher{}
		notifier := &NATSNotifier{conn: conn}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := notifier.Publish(ctx, Event{Action: ActionPut, Endpoint: "blog"})
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, conn.subjects)
	})

	t.Run("close drains", func(t *testing.T) {
		t.Parallel()

		conn := &fakePublisher{}
		notifier := &NATSNotifier{conn: conn}

		require.NoError(t, notifier.Close())
		assert.True(t, conn.drained)
	})
}

func TestNewNotifierFromConfig(t *testing.T) {
	t.Parallel()
	t.Run("no url gives no-op", func(t *testing.T) {
		t.Parallel()

		notifier, err := NewNotifierFromConfig(ConfigForURL("  "))
		require.NoError(t, err)
		assert.IsType(t, &NoOpNotifier{}, notifier)
		require.NoError(t, notifier.Publish(context.Background(), Event{}))
		require.NoError(t, notifier.Close())
	})

	t.Run("nil config gives no-op", func(t *testing.T) {
		t.Parallel()

		notifier, err := NewNotifierFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &NoOpNotifier{}, notifier)
	})

	t.Run("nats without settings", func(t *testing.T) {
		t.Parallel()

		_, err := NewNotifierFromConfig(&NotifierConfig{Type: NotifierTypeNATS})
		require.ErrorIs(t, err, ErrNATSConfigRequired)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := NewNotifierFromConfig(&NotifierConfig{Type: "kafka"})
		require.ErrorIs(t, err, ErrUnsupportedNotifierType)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		_, err := NewNotifierFromConfig(&NotifierConfig{
			Type: NotifierTypeNATS,
			NATS: &NATSConfig{URL: "nats://127.0.0.1:1", Timeout: 200 * time.Millisecond},
		})
		require.Error(t, err)
	})
}
