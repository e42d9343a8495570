package cms_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

var errConflict = &cms.APIError{StatusCode: 409, StatusText: "Conflict"}

// MockContentWriter is a testify mock of cms.ContentWriter.
type MockContentWriter struct {
	mock.Mock
}

func (m *MockContentWriter) Create(ctx context.Context, endpoint string, data cms.Content) (cms.Content, error) {
	args := m.Called(ctx, endpoint, data)

	content, _ := args.Get(0).(cms.Content)

	return content, args.Error(1)
}

func (m *MockContentWriter) Put(ctx context.Context, endpoint, contentID string, data cms.Content) (cms.Content, error) {
	args := m.Called(ctx, endpoint, contentID, data)

	content, _ := args.Get(0).(cms.Content)

	return content, args.Error(1)
}

func (m *MockContentWriter) Patch(ctx context.Context, endpoint, contentID string, data cms.Content) (cms.Content, error) {
	args := m.Called(ctx, endpoint, contentID, data)

	content, _ := args.Get(0).(cms.Content)

	return content, args.Error(1)
}

func (m *MockContentWriter) Delete(ctx context.Context, endpoint, contentID string) (*cms.DeleteResult, error) {
	args := m.Called(ctx, endpoint, contentID)

	result, _ := args.Get(0).(*cms.DeleteResult)

	return result, args.Error(1)
}

func TestParseBatchMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected cms.BatchMethod
		wantErr  bool
	}{
		{input: "", expected: cms.BatchMethodPost},
		{input: "post", expected: cms.BatchMethodPost},
		{input: "PUT", expected: cms.BatchMethodPut},
		{input: "patch", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			method, err := cms.ParseBatchMethod(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, cms.ErrUnsupportedMethod)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, method)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestBatchExecutor_Post(t *testing.T) {
	t.Parallel()
	t.Run("failures are isolated and ordered", func(t *testing.T) {
		t.Parallel()

		writer := &MockContentWriter{}
		writer.On("Create", mock.Anything, "blog", cms.Content{"title": "a"}).Return(cms.Content{"id": "1"}, nil).Once()
		writer.On("Create", mock.Anything, "blog", cms.Content{"title": "b"}).Return(nil, errConflict).Once()
		writer.On("Create", mock.Anything, "blog", cms.Content{"title": "c"}).Return(cms.Content{"id": "3"}, nil).Once()

		items := []cms.Content{{"title": "a"}, {"title": "b"}, {"title": "c"}}
		report := cms.NewBatchExecutor(writer).Execute(context.Background(), "blog", items, "")

		assert.Equal(t, cms.BatchMethodPost, report.Method)
		assert.Equal(t, 3, report.Total)
		assert.Equal(t, 2, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, cms.BatchStatusPartial, report.Status())

		require.Len(t, report.Results, 3)

		for i, result := range report.Results {
			assert.Equal(t, i, result.Index)
		}

		assert.True(t, report.Results[0].Success)
		assert.Equal(t, "1", report.Results[0].Data["id"])

		failed := report.Results[1]
		assert.False(t, failed.Success)
		assert.Equal(t, cms.Content{"title": "b"}, failed.Data)
		assert.Contains(t, failed.Error, "409")

		var itemErr *cms.ItemError

		require.ErrorAs(t, failed.Err, &itemErr)
		assert.Equal(t, 1, itemErr.Index)
		assert.Equal(t, 409, cms.StatusCode(failed.Err))

		assert.True(t, report.Results[2].Success)

		aggregated := report.Err()
		require.Error(t, aggregated)
		assert.Equal(t, 409, cms.StatusCode(aggregated))
		writer.AssertExpectations(t)
	})

	t.Run("all succeed", func(t *testing.T) {
		t.Parallel()

		writer := &MockContentWriter{}
		writer.On("Create", mock.Anything, "blog", mock.Anything).Return(cms.Content{"id": "x"}, nil)

		report := cms.NewBatchExecutor(writer).Execute(context.Background(), "blog", []cms.Content{{}, {}}, cms.BatchMethodPost)

		assert.Equal(t, cms.BatchStatusOK, report.Status())
		assert.NoError(t, report.Err())
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		report := cms.NewBatchExecutor(&MockContentWriter{}).Execute(context.Background(), "blog", nil, cms.BatchMethodPost)

		assert.Equal(t, 0, report.Total)
		assert.Empty(t, report.Results)
		assert.Equal(t, cms.BatchStatusOK, report.Status())
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestBatchExecutor_Put(t *testing.T) {
	t.Parallel()
	t.Run("id moves from payload to path and back", func(t *testing.T) {
		t.Parallel()

		writer := &MockContentWriter{}
		writer.On("Put", mock.Anything, "authors", "alice", cms.Content{"name": "Alice"}).Return(cms.Content{}, nil)

		item := cms.Content{"id": "alice", "name": "Alice"}
		report := cms.NewBatchExecutor(writer).Execute(context.Background(), "authors", []cms.Content{item}, cms.BatchMethodPut)

		require.Len(t, report.Results, 1)
		assert.True(t, report.Results[0].Success)
		assert.Equal(t, "alice", report.Results[0].Data["id"])
		assert.Equal(t, "alice", item["id"])
		writer.AssertExpectations(t)
	})

	t.Run("items without usable id fail alone", func(t *testing.T) {
		t.Parallel()

		writer := &MockContentWriter{}
		writer.On("Put", mock.Anything, "authors", "a", cms.Content{}).Return(cms.Content{"id": "a"}, nil)

		items := []cms.Content{
			{"id": "a"},
			{"name": "no id"},
			{"id": true},
			{"id": ""},
			{"id": map[string]any{"nested": "x"}},
			{"id": nil},
		}
		report := cms.NewBatchExecutor(writer).Execute(context.Background(), "authors", items, cms.BatchMethodPut)

		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 5, report.Failed)
		require.ErrorIs(t, report.Results[1].Err, cms.ErrMissingContentID)

		for _, result := range report.Results[2:] {
			require.ErrorIs(t, result.Err, cms.ErrInvalidContentID)
		}

		writer.AssertNumberOfCalls(t, "Put", 1)
		writer.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("numeric ids become path segments", func(t *testing.T) {
		t.Parallel()

		writer := &MockContentWriter{}
		writer.On("Put", mock.Anything, "authors", "123", cms.Content{"name": "A"}).Return(cms.Content{}, nil)
		writer.On("Put", mock.Anything, "authors", "42", cms.Content{"name": "B"}).Return(cms.Content{}, nil)
		writer.On("Put", mock.Anything, "authors", "7", cms.Content{"name": "C"}).Return(cms.Content{}, nil)

		items := []cms.Content{
			{"id": json.Number("123"), "name": "A"},
			{"id": 42, "name": "B"},
			{"id": float64(7), "name": "C"},
		}
		report := cms.NewBatchExecutor(writer).Execute(context.Background(), "authors", items, cms.BatchMethodPut)

		assert.Equal(t, 3, report.Succeeded)
		assert.Equal(t, "123", report.Results[0].Data["id"])
		assert.Equal(t, "42", report.Results[1].Data["id"])
		assert.Equal(t, "7", report.Results[2].Data["id"])
		writer.AssertExpectations(t)
	})

	t.Run("all fail", func(t *testing.T) {
		t.Parallel()

		report := cms.NewBatchExecutor(&MockContentWriter{}).
			Execute(context.Background(), "authors", []cms.Content{{}}, cms.BatchMethodPut)

		assert.Equal(t, cms.BatchStatusFail, report.Status())
	})
}

func TestBatchExecutor_Concurrency(t *testing.T) {
	t.Parallel()

	writer := &MockContentWriter{}
	writer.On("Create", mock.Anything, "blog", mock.MatchedBy(func(c cms.Content) bool { return c["fail"] == nil })).
		Return(cms.Content{"id": "ok"}, nil)
	writer.On("Create", mock.Anything, "blog", mock.MatchedBy(func(c cms.Content) bool { return c["fail"] != nil })).
		Return(nil, errConflict)

	items := make([]cms.Content, 20)
	for i := range items {
		items[i] = cms.Content{"n": i}
		if i%5 == 0 {
			items[i]["fail"] = true
		}
	}

	var (
		mu       sync.Mutex
		observed int
	)

	report := cms.NewBatchExecutor(writer,
		cms.WithConcurrency(4),
		cms.WithProgress(func(cms.BatchItemResult) {
			mu.Lock()
			observed++
			mu.Unlock()
		}),
	).Execute(context.Background(), "blog", items, cms.BatchMethodPost)

	assert.Equal(t, 20, observed)
	assert.Equal(t, 16, report.Succeeded)
	assert.Equal(t, 4, report.Failed)

	for i, result := range report.Results {
		assert.Equal(t, i, result.Index)
		assert.Equal(t, i%5 != 0, result.Success)
	}
}
