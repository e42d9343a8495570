package cms

import (
	"context"
)

// ContentReader provides read access to content endpoints.
type ContentReader interface {
	List(ctx context.Context, endpoint string, params *QueryParams) (*ListResponse, error)
	Get(ctx context.Context, endpoint, contentID string, params *QueryParams) (Content, error)
}

// ContentWriter provides write access to content endpoints. Create lets the
// API assign the identifier; Put uses the caller's identifier. The choice is
// always made by the caller.
type ContentWriter interface {
	Create(ctx context.Context, endpoint string, data Content) (Content, error)
	Put(ctx context.Context, endpoint, contentID string, data Content) (Content, error)
	Patch(ctx context.Context, endpoint, contentID string, data Content) (Content, error)
	Delete(ctx context.Context, endpoint, contentID string) (*DeleteResult, error)
}

// ContentClient is the full set of operations supported by the content API.
type ContentClient interface {
	ContentReader
	ContentWriter
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a ContentClient.
//
// # Base URL
//
// BaseURL takes precedence. When it is empty and ServiceDomain is set, the
// base URL becomes "https://<ServiceDomain>.microcms.io". Trailing slashes are
// stripped and "https://" is added when no scheme is present.
//
// # Retries and timeouts
//
// There are none. A failed request surfaces immediately as an error and
// per-request deadlines are controlled through the context passed to each
// call.
type Config struct {
	// APIKey is sent in the X-MICROCMS-API-KEY header of every request.
	APIKey string
	// BaseURL is the service URL, e.g. "https://example.microcms.io".
	BaseURL string
	// ServiceDomain is the microCMS service subdomain, e.g. "example".
	ServiceDomain string

	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
