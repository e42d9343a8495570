// Package tools maps MCP tool calls and resource reads onto the content
// client and the batch executor. Every call yields exactly one Result;
// errors and panics are converted into error results.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/events"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/logging"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// Tool names.
const (
	ToolGetContents         = "get_contents"
	ToolGetContent          = "get_content"
	ToolSearchContents      = "search_contents"
	ToolFilterContents      = "filter_contents"
	ToolCreateContent       = "create_content"
	ToolPutContent          = "put_content"
	ToolPatchContent        = "patch_content"
	ToolUpdateContent       = "update_content"
	ToolDeleteContent       = "delete_content"
	ToolBatchCreateContents = "batch_create_contents"
)

// Static errors for err113 compliance.
var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrInvalidParams = errors.New("invalid parameters")
	ErrHandlerPanic  = errors.New("internal error while handling the call")
)

// Result is the rendered outcome of a tool call.
type Result struct {
	Text    string
	IsError bool
}

// Router executes tool calls against a content client.
type Router struct {
	client      cms.ContentClient
	notifier    events.Notifier
	logger      cms.Logger
	concurrency int
	now         func() time.Time
}

// Option configures a Router.
type Option func(*Router)

// WithNotifier publishes a change event after each successful write.
func WithNotifier(notifier events.Notifier) Option {
	return func(r *Router) {
		if notifier != nil {
			r.notifier = notifier
		}
	}
}

// WithLogger sets the logger for call diagnostics.
func WithLogger(logger cms.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithBatchConcurrency bounds parallel items in batch_create_contents.
func WithBatchConcurrency(concurrency int) Option {
	return func(r *Router) {
		if concurrency < constants.DefaultBatchConcurrency {
			concurrency = constants.DefaultBatchConcurrency
		}

		if concurrency > constants.MaxBatchConcurrency {
			concurrency = constants.MaxBatchConcurrency
		}

		r.concurrency = concurrency
	}
}

// NewRouter creates a router for client.
func NewRouter(client cms.ContentClient, opts ...Option) *Router {
	router := &Router{
		client:      client,
		notifier:    events.NewNoOpNotifier(),
		logger:      logging.NewNullLogger(),
		concurrency: constants.DefaultBatchConcurrency,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(router)
	}

	return router
}

// ToolSpec describes a registered tool.
type ToolSpec struct {
	Name        string
	Description string
}

var toolDescriptions = map[string]string{
	ToolGetContents:         "List contents of a microCMS API endpoint with optional paging, ordering, search, filters, field selection and reference depth.",
	ToolGetContent:          "Get a single content item by ID, optionally a draft via draftKey.",
	ToolSearchContents:      "Full-text search the contents of an endpoint.",
	ToolFilterContents:      "List contents of an endpoint that match a filter expression.",
	ToolCreateContent:       "Create a content item with POST. The API assigns the ID.",
	ToolPutContent:          "Create or fully replace a content item with PUT under a caller supplied ID.",
	ToolPatchContent:        "Partially update a content item with PATCH. Only the given fields change.",
	ToolUpdateContent:       "Deprecated: replace a content item with PUT. Use put_content or patch_content instead.",
	ToolDeleteContent:       "Delete a content item by ID.",
	ToolBatchCreateContents: "Create many content items. Each item succeeds or fails on its own; method put uses each item's 'id' field.",
}

// Tools lists every tool the router handles, sorted by name.
func Tools() []ToolSpec {
	specs := make([]ToolSpec, 0, len(toolDescriptions))
	for name, description := range toolDescriptions {
		specs = append(specs, ToolSpec{Name: name, Description: description})
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

	return specs
}

// Description returns the description for a tool name.
func Description(name string) string {
	return toolDescriptions[name]
}

// Call decodes raw JSON arguments for the named tool and runs it.
func (r *Router) Call(ctx context.Context, name string, arguments json.RawMessage) Result {
	switch name {
	case ToolGetContents:
		return callWith(ctx, arguments, r.GetContents)
	case ToolGetContent:
		return callWith(ctx, arguments, r.GetContent)
	case ToolSearchContents:
		return callWith(ctx, arguments, r.SearchContents)
	case ToolFilterContents:
		return callWith(ctx, arguments, r.FilterContents)
	case ToolCreateContent:
		return callWith(ctx, arguments, r.CreateContent)
	case ToolPutContent:
		return callWith(ctx, arguments, r.PutContent)
	case ToolPatchContent:
		return callWith(ctx, arguments, r.PatchContent)
	case ToolUpdateContent:
		return callWith(ctx, arguments, r.UpdateContent)
	case ToolDeleteContent:
		return callWith(ctx, arguments, r.DeleteContent)
	case ToolBatchCreateContents:
		return callWith(ctx, arguments, r.BatchCreateContents)
	default:
		return errorResult("Error", fmt.Errorf("%w: %q", ErrUnknownTool, name))
	}
}

func callWith[P any](ctx context.Context, arguments json.RawMessage, handler func(context.Context, P) Result) Result {
	var params P

	if len(bytes.TrimSpace(arguments)) > 0 {
		err := json.Unmarshal(arguments, &params)
		if err != nil {
			return errorResult("Error", fmt.Errorf("%w: %w", ErrInvalidParams, err))
		}
	}

	return handler(ctx, params)
}

// validatable matches the param structs.
type validatable interface {
	Validate() error
}

// call is the single catch point: it validates params, assigns a trace id,
// recovers panics and logs the outcome.
func (r *Router) call(ctx context.Context, tool, errLabel string, params validatable, fn func(ctx context.Context, traceID string) (string, error)) (result Result) {
	traceID := uuid.NewString()
	start := time.Now()

	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Error("tool call panicked", map[string]interface{}{
				"tool":     tool,
				"trace_id": traceID,
				"panic":    fmt.Sprint(recovered),
			})

			result = errorResult(errLabel, fmt.Errorf("%w: %v", ErrHandlerPanic, recovered))
		}
	}()

	err := params.Validate()
	if err != nil {
		r.logger.Warn("tool call rejected", map[string]interface{}{
			"tool":     tool,
			"trace_id": traceID,
			"error":    err.Error(),
		})

		return errorResult(errLabel, fmt.Errorf("%w: %w", ErrInvalidParams, err))
	}

	text, err := fn(ctx, traceID)

	fields := map[string]interface{}{
		"tool":     tool,
		"trace_id": traceID,
		"duration": time.Since(start).String(),
	}

	if err != nil {
		fields["error"] = err.Error()
		if status := cms.StatusCode(err); status != 0 {
			fields["status_code"] = status
		}

		r.logger.Warn("tool call failed", fields)

		return errorResult(errLabel, err)
	}

	r.logger.Info("tool call completed", fields)

	return Result{Text: text}
}

// publish sends a change event. Failures are logged and never alter the
// tool result.
func (r *Router) publish(ctx context.Context, traceID string, action events.Action, endpoint, contentID string) {
	err := r.notifier.Publish(ctx, events.Event{
		Action:   action,
		Endpoint: endpoint,
		ID:       contentID,
		TraceID:  traceID,
		Time:     r.now().UTC(),
	})
	if err != nil {
		r.logger.Warn("publishing content event failed", map[string]interface{}{
			"action":   string(action),
			"endpoint": endpoint,
			"trace_id": traceID,
			"error":    err.Error(),
		})
	}
}

func errorResult(label string, err error) Result {
	return Result{
		Text:    label + ": " + err.Error(),
		IsError: true,
	}
}

// renderJSON formats v as indented JSON without HTML escaping, since rich
// text fields routinely contain markup.
func renderJSON(v any) (string, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", constants.JSONIndent)

	err := encoder.Encode(v)
	if err != nil {
		return "", fmt.Errorf("rendering result: %w", err)
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
