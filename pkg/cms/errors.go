package cms

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any non-2xx response from the content API.
type APIError struct {
	Method     string `json:"method,omitempty" yaml:"method,omitempty"`
	Path       string `json:"path,omitempty"   yaml:"path,omitempty"`
	StatusCode int    `json:"status_code"      yaml:"status_code"`
	StatusText string `json:"status_text"      yaml:"status_text"`
	Body       string `json:"body,omitempty"   yaml:"body,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("microCMS API error: %d %s", e.StatusCode, e.StatusText)
	if e.Body != "" {
		msg += " - " + e.Body
	}

	return msg
}

// ConfigurationError reports a missing or invalid setting. It is fatal at
// startup.
type ConfigurationError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}

	return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ItemError is a failure scoped to a single batch item.
type ItemError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *ItemError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrMissingContentID     = errors.New("content has no \"id\" field, which is required for PUT")
	ErrInvalidContentID     = errors.New("content \"id\" must be a non-empty string or number")
	ErrUnsupportedMethod    = errors.New("unsupported batch method")
	ErrEndpointRequired     = errors.New("endpoint is required")
	ErrContentIDRequired    = errors.New("content ID is required")
	ErrConfigRequired       = errors.New("config is required")
	ErrInvalidResourceURI   = errors.New("invalid resource URI")
	ErrResponseNotJSONValue = errors.New("response body is not a JSON object")
)

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}
