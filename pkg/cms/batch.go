package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
)

// BatchMethod selects how each batch item is created.
type BatchMethod string

const (
	// BatchMethodPost creates each item with POST; the API assigns the id.
	BatchMethodPost BatchMethod = "post"
	// BatchMethodPut creates or replaces each item with PUT using its "id" field.
	BatchMethodPut BatchMethod = "put"
)

// ParseBatchMethod parses a method name. An empty value selects POST.
func ParseBatchMethod(value string) (BatchMethod, error) {
	method := BatchMethod(strings.ToLower(strings.TrimSpace(value)))
	switch method {
	case "":
		return BatchMethodPost, nil
	case BatchMethodPost, BatchMethodPut:
		return method, nil
	default:
		return "", fmt.Errorf("%w: %q, expected post or put", ErrUnsupportedMethod, value)
	}
}

// Batch status values.
const (
	BatchStatusOK      = "ok"
	BatchStatusPartial = "partial"
	BatchStatusFail    = "fail"
)

// BatchItemResult is the outcome of one batch item.
type BatchItemResult struct {
	Index    int           `json:"index"           yaml:"index"`
	Success  bool          `json:"success"         yaml:"success"`
	Data     Content       `json:"data,omitempty"  yaml:"data,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Err      error         `json:"-"               yaml:"-"`
	Duration time.Duration `json:"-"               yaml:"-"`
}

// BatchReport summarises a batch run. Results are in input order.
type BatchReport struct {
	Endpoint  string            `json:"endpoint"  yaml:"endpoint"`
	Method    BatchMethod       `json:"method"    yaml:"method"`
	Total     int               `json:"total"     yaml:"total"`
	Succeeded int               `json:"succeeded" yaml:"succeeded"`
	Failed    int               `json:"failed"    yaml:"failed"`
	Results   []BatchItemResult `json:"results"   yaml:"results"`
}

// Status returns ok, partial or fail.
func (r *BatchReport) Status() string {
	switch {
	case r.Failed == 0:
		return BatchStatusOK
	case r.Succeeded == 0:
		return BatchStatusFail
	default:
		return BatchStatusPartial
	}
}

// Err aggregates every item failure, or returns nil when all succeeded.
func (r *BatchReport) Err() error {
	var result *multierror.Error

	for _, item := range r.Results {
		if item.Err != nil {
			result = multierror.Append(result, item.Err)
		}
	}

	return result.ErrorOrNil()
}

// BatchOption configures a BatchExecutor.
type BatchOption func(*BatchExecutor)

// WithConcurrency bounds the number of items processed at once. Values below
// one keep processing sequential.
func WithConcurrency(concurrency int) BatchOption {
	return func(b *BatchExecutor) {
		if concurrency < 1 {
			concurrency = 1
		}

		b.concurrency = concurrency
	}
}

// WithProgress registers a callback invoked after each item finishes.
func WithProgress(callback func(result BatchItemResult)) BatchOption {
	return func(b *BatchExecutor) {
		b.progress = callback
	}
}

// WithBatchLogger sets the logger used for per-item diagnostics.
func WithBatchLogger(logger Logger) BatchOption {
	return func(b *BatchExecutor) {
		b.logger = logger
	}
}

// BatchExecutor runs independent create operations and isolates failures.
type BatchExecutor struct {
	client      ContentWriter
	concurrency int
	progress    func(result BatchItemResult)
	logger      Logger

	progressMu sync.Mutex
}

// NewBatchExecutor creates a new batch executor. Items are processed one at
// a time unless WithConcurrency is given.
func NewBatchExecutor(client ContentWriter, opts ...BatchOption) *BatchExecutor {
	executor := &BatchExecutor{
		client:      client,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Execute runs every item against endpoint. A failing item never stops the
// rest of the batch.
func (b *BatchExecutor) Execute(ctx context.Context, endpoint string, items []Content, method BatchMethod) *BatchReport {
	if method == "" {
		method = BatchMethodPost
	}

	results := make([]BatchItemResult, len(items))

	if b.concurrency <= 1 {
		for index, item := range items {
			results[index] = b.runItem(ctx, endpoint, index, item, method)
		}
	} else {
		var waitGroup sync.WaitGroup

		semaphore := make(chan struct{}, b.concurrency)

		for index, item := range items {
			waitGroup.Add(1)

			go func(index int, item Content) {
				defer waitGroup.Done()

				semaphore <- struct{}{}

				defer func() { <-semaphore }()

				results[index] = b.runItem(ctx, endpoint, index, item, method)
			}(index, item)
		}

		waitGroup.Wait()
	}

	report := &BatchReport{
		Endpoint: endpoint,
		Method:   method,
		Total:    len(items),
		Results:  results,
	}

	for _, result := range results {
		if result.Success {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	return report
}

// runItem executes one item and converts any failure into its result record.
func (b *BatchExecutor) runItem(ctx context.Context, endpoint string, index int, item Content, method BatchMethod) BatchItemResult {
	start := time.Now()

	data, err := b.createItem(ctx, endpoint, item, method)

	result := BatchItemResult{
		Index:    index,
		Success:  err == nil,
		Data:     data,
		Duration: time.Since(start),
	}

	if err != nil {
		itemErr := &ItemError{Index: index, Err: err}
		result.Err = itemErr
		result.Error = err.Error()
		result.Data = item

		if b.logger != nil {
			b.logger.Warn("batch item failed", map[string]interface{}{
				"endpoint": endpoint,
				"index":    index,
				"method":   string(method),
				"error":    err.Error(),
			})
		}
	}

	if b.progress != nil {
		b.progressMu.Lock()
		b.progress(result)
		b.progressMu.Unlock()
	}

	return result
}

func (b *BatchExecutor) createItem(ctx context.Context, endpoint string, item Content, method BatchMethod) (Content, error) {
	switch method {
	case BatchMethodPut:
		raw, exists := item["id"]
		if !exists {
			return nil, ErrMissingContentID
		}

		contentID, ok := scalarID(raw)
		if !ok {
			return nil, ErrInvalidContentID
		}

		created, err := b.client.Put(ctx, endpoint, contentID, item.Without("id"))
		if err != nil {
			return nil, err
		}

		if created == nil {
			created = Content{}
		}

		created["id"] = contentID

		return created, nil
	case BatchMethodPost:
		return b.client.Create(ctx, endpoint, item)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}

// scalarID formats a string or numeric id as a path segment.
func scalarID(value any) (string, bool) {
	var id string

	switch typed := value.(type) {
	case string:
		id = typed
	case json.Number:
		id = typed.String()
	case float64:
		id = strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		id = strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		id = fmt.Sprint(typed)
	default:
		return "", false
	}

	return id, id != ""
}
