package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/events"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

const updateDeprecationNote = "⚠️ update_content is deprecated. Use put_content or patch_content instead."

// GetContents lists contents of an endpoint.
func (r *Router) GetContents(ctx context.Context, params GetContentsParams) Result {
	return r.call(ctx, ToolGetContents, "Error", params, func(ctx context.Context, _ string) (string, error) {
		return r.list(ctx, params.Endpoint, params.Query())
	})
}

// SearchContents lists contents matching a full-text query.
func (r *Router) SearchContents(ctx context.Context, params SearchContentsParams) Result {
	return r.call(ctx, ToolSearchContents, "Error", params, func(ctx context.Context, _ string) (string, error) {
		return r.list(ctx, params.Endpoint, params.Query())
	})
}

// FilterContents lists contents matching a filter expression.
func (r *Router) FilterContents(ctx context.Context, params FilterContentsParams) Result {
	return r.call(ctx, ToolFilterContents, "Error", params, func(ctx context.Context, _ string) (string, error) {
		return r.list(ctx, params.Endpoint, params.Query())
	})
}

func (r *Router) list(ctx context.Context, endpoint string, query *cms.QueryParams) (string, error) {
	list, err := r.client.List(ctx, endpoint, query)
	if err != nil {
		return "", err
	}

	return renderJSON(list)
}

// GetContent reads one item.
func (r *Router) GetContent(ctx context.Context, params GetContentParams) Result {
	return r.call(ctx, ToolGetContent, "Error", params, func(ctx context.Context, _ string) (string, error) {
		content, err := r.client.Get(ctx, params.Endpoint, params.ContentID, params.Query())
		if err != nil {
			return "", err
		}

		return renderJSON(content)
	})
}

// CreateContent creates an item with an API assigned id. Status is accepted
// and passed through without changing the request.
func (r *Router) CreateContent(ctx context.Context, params CreateContentParams) Result {
	return r.call(ctx, ToolCreateContent, "❌ Create error", params, func(ctx context.Context, traceID string) (string, error) {
		created, err := r.client.Create(ctx, params.Endpoint, cms.Content(params.Data))
		if err != nil {
			return "", err
		}

		contentID, _ := created.ID()
		r.publish(ctx, traceID, events.ActionCreated, params.Endpoint, contentID)

		return withSummary(fmt.Sprintf("✅ Content created (ID: %s):", contentID), created)
	})
}

// PutContent creates or replaces an item under the given id.
func (r *Router) PutContent(ctx context.Context, params PutContentParams) Result {
	return r.call(ctx, ToolPutContent, "❌ Create/update error", params, func(ctx context.Context, traceID string) (string, error) {
		result, err := r.client.Put(ctx, params.Endpoint, params.ContentID, cms.Content(params.Data))
		if err != nil {
			return "", err
		}

		r.publish(ctx, traceID, events.ActionPut, params.Endpoint, params.ContentID)

		return withSummary(fmt.Sprintf("✅ Content created/updated (ID: %s):", params.ContentID), result)
	})
}

// PatchContent changes only the given fields.
func (r *Router) PatchContent(ctx context.Context, params PatchContentParams) Result {
	return r.call(ctx, ToolPatchContent, "❌ Patch error", params, func(ctx context.Context, traceID string) (string, error) {
		result, err := r.client.Patch(ctx, params.Endpoint, params.ContentID, cms.Content(params.Data))
		if err != nil {
			return "", err
		}

		r.publish(ctx, traceID, events.ActionPatched, params.Endpoint, params.ContentID)

		return withSummary(fmt.Sprintf("✅ Content partially updated (ID: %s):", params.ContentID), result)
	})
}

// UpdateContent is the deprecated alias that replaces an item with PUT.
func (r *Router) UpdateContent(ctx context.Context, params PatchContentParams) Result {
	return r.call(ctx, ToolUpdateContent, "❌ Update error", params, func(ctx context.Context, traceID string) (string, error) {
		result, err := r.client.Put(ctx, params.Endpoint, params.ContentID, cms.Content(params.Data))
		if err != nil {
			return "", err
		}

		r.publish(ctx, traceID, events.ActionPut, params.Endpoint, params.ContentID)

		text, err := withSummary(fmt.Sprintf("✅ Content updated (ID: %s):", params.ContentID), result)
		if err != nil {
			return "", err
		}

		return text + "\n\n" + updateDeprecationNote, nil
	})
}

// DeleteContent removes an item.
func (r *Router) DeleteContent(ctx context.Context, params DeleteContentParams) Result {
	return r.call(ctx, ToolDeleteContent, "❌ Delete error", params, func(ctx context.Context, traceID string) (string, error) {
		_, err := r.client.Delete(ctx, params.Endpoint, params.ContentID)
		if err != nil {
			return "", err
		}

		r.publish(ctx, traceID, events.ActionDeleted, params.Endpoint, params.ContentID)

		return fmt.Sprintf("✅ Content (ID: %s) deleted", params.ContentID), nil
	})
}

// BatchCreateContents runs the batch executor. Item failures are part of a
// successful result; only invalid parameters produce an error result.
func (r *Router) BatchCreateContents(ctx context.Context, params BatchCreateContentsParams) Result {
	return r.call(ctx, ToolBatchCreateContents, "❌ Batch create error", params, func(ctx context.Context, traceID string) (string, error) {
		method, err := cms.ParseBatchMethod(params.Method)
		if err != nil {
			return "", err
		}

		action := events.ActionCreated
		if method == cms.BatchMethodPut {
			action = events.ActionPut
		}

		executor := cms.NewBatchExecutor(r.client,
			cms.WithConcurrency(r.concurrency),
			cms.WithBatchLogger(r.logger),
			cms.WithProgress(func(result cms.BatchItemResult) {
				if !result.Success {
					return
				}

				contentID, _ := result.Data.ID()
				r.publish(ctx, traceID, action, params.Endpoint, contentID)
			}),
		)

		report := executor.Execute(ctx, params.Endpoint, params.Items(), method)

		return renderBatchReport(report)
	})
}

func renderBatchReport(report *cms.BatchReport) (string, error) {
	details, err := renderJSON(report.Results)
	if err != nil {
		return "", err
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "📊 Batch create result (%s):\n", strings.ToUpper(string(report.Method)))
	fmt.Fprintf(&builder, "✅ Succeeded: %d\n", report.Succeeded)
	fmt.Fprintf(&builder, "❌ Failed: %d\n\n", report.Failed)
	builder.WriteString("Details:\n")
	builder.WriteString(details)

	return builder.String(), nil
}

func withSummary(summary string, data any) (string, error) {
	body, err := renderJSON(data)
	if err != nil {
		return "", err
	}

	return summary + "\n" + body, nil
}
