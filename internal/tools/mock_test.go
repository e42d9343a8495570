package tools_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/events"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// MockContentClient is a testify mock of cms.ContentClient.
type MockContentClient struct {
	mock.Mock
}

func (m *MockContentClient) List(ctx context.Context, endpoint string, params *cms.QueryParams) (*cms.ListResponse, error) {
	args := m.Called(ctx, endpoint, params)

	list, _ := args.Get(0).(*cms.ListResponse)

	return list, args.Error(1)
}

func (m *MockContentClient) Get(ctx context.Context, endpoint, contentID string, params *cms.QueryParams) (cms.Content, error) {
	args := m.Called(ctx, endpoint, contentID, params)

	content, _ := args.Get(0).(cms.Content)

	return content, args.Error(1)
}

func (m *MockContentClient) Create(ctx context.Context, endpoint string, data cms.Content) (cms.Content, error) {
	args := m.Called(ctx, endpoint, data)

	content, _ := args.Get(0).(cms.Content)

	return content, args.Error(1)
}

func (m *MockContentClient) Put(ctx context.Context, endpoint, contentID string, data cms.Content) (cms.Content, error) {
	args := m.Called(ctx, endpoint, contentID, data)

	content, _ := args.Get(0).(cms.Content)

	return content, args.Error(1)
}

func (m *MockContentClient) Patch(ctx context.Context, endpoint, contentID string, data cms.Content) (cms.Content, error) {
	args := m.Called(ctx, endpoint, contentID, data)

	content, _ := args.Get(0).(cms.Content)

	return content, args.Error(1)
}

func (m *MockContentClient) Delete(ctx context.Context, endpoint, contentID string) (*cms.DeleteResult, error) {
	args := m.Called(ctx, endpoint, contentID)

	result, _ := args.Get(0).(*cms.DeleteResult)

	return result, args.Error(1)
}

// recordingNotifier keeps every published event.
type recordingNotifier struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, event events.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)

	return n.err
}

func (n *recordingNotifier) Close() error {
	return nil
}

func (n *recordingNotifier) published() []events.Event {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]events.Event, len(n.events))
	copy(out, n.events)

	return out
}

func queryEncodes(expected string) interface{} {
	return mock.MatchedBy(func(params *cms.QueryParams) bool {
		return params.Encode() == expected
	})
}
