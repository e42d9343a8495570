package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// Resource URI templates.
const (
	ContentResourceTemplate  = constants.ResourceScheme + "://{endpoint}/{contentId}"
	ContentsResourceTemplate = constants.ResourceScheme + "://{endpoint}"
)

// ResourceRef is a parsed resource URI. ContentID is empty for a list.
type ResourceRef struct {
	Endpoint  string
	ContentID string
}

// ParseResourceURI parses "microcms://{endpoint}" and
// "microcms://{endpoint}/{contentId}".
func ParseResourceURI(uri string) (ResourceRef, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return ResourceRef{}, fmt.Errorf("%w: %w", cms.ErrInvalidResourceURI, err)
	}

	if parsed.Scheme != constants.ResourceScheme || parsed.Host == "" {
		return ResourceRef{}, fmt.Errorf("%w: %q", cms.ErrInvalidResourceURI, uri)
	}

	ref := ResourceRef{Endpoint: parsed.Host}

	contentID := strings.Trim(parsed.Path, "/")
	if strings.Contains(contentID, "/") {
		return ResourceRef{}, fmt.Errorf("%w: %q", cms.ErrInvalidResourceURI, uri)
	}

	ref.ContentID = contentID

	return ref, nil
}

// ReadResource returns the JSON text of a resource. Failures are rendered
// as the resource text.
func (r *Router) ReadResource(ctx context.Context, uri string) (text string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Error("resource read panicked", map[string]interface{}{
				"uri":   uri,
				"panic": fmt.Sprint(recovered),
			})

			text = "Error: " + fmt.Errorf("%w: %v", ErrHandlerPanic, recovered).Error()
		}
	}()

	body, err := r.readResource(ctx, uri)
	if err != nil {
		r.logger.Warn("resource read failed", map[string]interface{}{
			"uri":   uri,
			"error": err.Error(),
		})

		return "Error: " + err.Error()
	}

	return body
}

func (r *Router) readResource(ctx context.Context, uri string) (string, error) {
	ref, err := ParseResourceURI(uri)
	if err != nil {
		return "", err
	}

	if ref.ContentID == "" {
		list, err := r.client.List(ctx, ref.Endpoint, nil)
		if err != nil {
			return "", err
		}

		return renderJSON(list)
	}

	content, err := r.client.Get(ctx, ref.Endpoint, ref.ContentID, nil)
	if err != nil {
		return "", err
	}

	return renderJSON(content)
}
