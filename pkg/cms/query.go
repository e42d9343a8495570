package cms

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams is an insertion-ordered set of query parameters. Only values
// that were actually provided are kept, so optional parameters never show up
// as empty placeholders.
type QueryParams struct {
	keys   []string
	values map[string]string
}

// NewQueryParams creates an empty parameter set.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		keys:   make([]string, 0),
		values: make(map[string]string),
	}
}

// Set adds key with value. Setting an existing key replaces its value and
// keeps its original position.
func (q *QueryParams) Set(key, value string) *QueryParams {
	if q.values == nil {
		q.values = make(map[string]string)
	}

	if _, exists := q.values[key]; !exists {
		q.keys = append(q.keys, key)
	}

	q.values[key] = value

	return q
}

// SetString adds key only when value is non-empty.
func (q *QueryParams) SetString(key, value string) *QueryParams {
	if value == "" {
		return q
	}

	return q.Set(key, value)
}

// SetInt adds key only when value is non-nil. Zero is a provided value.
func (q *QueryParams) SetInt(key string, value *int) *QueryParams {
	if value == nil {
		return q
	}

	return q.Set(key, strconv.Itoa(*value))
}

// Get returns the value for key and whether it is present.
func (q *QueryParams) Get(key string) (string, bool) {
	if q == nil {
		return "", false
	}

	value, ok := q.values[key]

	return value, ok
}

// Keys returns the present keys in insertion order.
func (q *QueryParams) Keys() []string {
	if q == nil {
		return nil
	}

	keys := make([]string, len(q.keys))
	copy(keys, q.keys)

	return keys
}

// Len returns the number of present parameters.
func (q *QueryParams) Len() int {
	if q == nil {
		return 0
	}

	return len(q.keys)
}

// Encode renders the parameters as "k1=v1&k2=v2" in insertion order.
// Spaces are encoded as %20.
func (q *QueryParams) Encode() string {
	if q.Len() == 0 {
		return ""
	}

	var builder strings.Builder

	for i, key := range q.keys {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(escapeQueryComponent(key))
		builder.WriteByte('=')
		builder.WriteString(escapeQueryComponent(q.values[key]))
	}

	return builder.String()
}

// String returns "" when empty, otherwise the encoded query with a leading "?".
func (q *QueryParams) String() string {
	encoded := q.Encode()
	if encoded == "" {
		return ""
	}

	return "?" + encoded
}

// escapeQueryComponent escapes s for use in a query. url.QueryEscape turns
// spaces into "+", and a literal "+" into "%2B", so the swap below only
// affects spaces.
func escapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
