package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Content is a single content item. The schema is defined per endpoint in
// the microCMS console, so fields are kept as decoded JSON values.
type Content map[string]any

// ID returns the content identifier when present as a string.
func (c Content) ID() (string, bool) {
	id, ok := c["id"].(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

// Without returns a shallow copy of the content with the given fields removed.
func (c Content) Without(fields ...string) Content {
	out := make(Content, len(c))
	for key, value := range c {
		out[key] = value
	}

	for _, field := range fields {
		delete(out, field)
	}

	return out
}

// ListResponse is the list envelope returned by list endpoints. The typed
// fields are read from the envelope; Raw holds the body exactly as decoded
// and is what the response marshals back to, so fields the API adds later
// and keys it omits pass through unchanged.
type ListResponse struct {
	Contents   []Content `json:"contents"   yaml:"contents"`
	TotalCount int       `json:"totalCount" yaml:"totalCount"`
	Offset     int       `json:"offset"     yaml:"offset"`
	Limit      int       `json:"limit"      yaml:"limit"`
	Raw        Content   `json:"-"          yaml:"-"`
}

// listFields mirrors ListResponse without its methods.
type listFields struct {
	Contents   []Content `json:"contents"`
	TotalCount int       `json:"totalCount"`
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
}

// UnmarshalJSON keeps the whole envelope in Raw and fills the typed fields
// from the keys that are present.
func (r *ListResponse) UnmarshalJSON(data []byte) error {
	var raw Content

	err := DecodeJSON(data, &raw)
	if err != nil {
		return err
	}

	if raw == nil {
		return ErrResponseNotJSONValue
	}

	*r = ListResponse{
		Contents:   contentItems(raw["contents"]),
		TotalCount: intField(raw["totalCount"]),
		Offset:     intField(raw["offset"]),
		Limit:      intField(raw["limit"]),
		Raw:        raw,
	}

	return nil
}

// MarshalJSON writes Raw when the response was decoded, otherwise the typed
// fields.
func (r ListResponse) MarshalJSON() ([]byte, error) {
	if r.Raw != nil {
		return json.Marshal(map[string]any(r.Raw))
	}

	return json.Marshal(listFields{
		Contents:   r.Contents,
		TotalCount: r.TotalCount,
		Offset:     r.Offset,
		Limit:      r.Limit,
	})
}

func contentItems(value any) []Content {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	contents := make([]Content, 0, len(items))

	for _, item := range items {
		if object, ok := item.(map[string]any); ok {
			contents = append(contents, Content(object))
		}
	}

	return contents
}

func intField(value any) int {
	switch number := value.(type) {
	case json.Number:
		parsed, err := number.Int64()
		if err != nil {
			return 0
		}

		return int(parsed)
	case float64:
		return int(number)
	case int:
		return number
	default:
		return 0
	}
}

// DeleteResult is the synthetic marker returned by a successful delete.
// The API itself responds without a body.
type DeleteResult struct {
	Success bool `json:"success" yaml:"success"`
}

// DecodeJSON decodes data into v keeping numbers as json.Number so that
// values are passed through without float conversion.
func DecodeJSON(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	err := decoder.Decode(v)
	if err != nil {
		return fmt.Errorf("decoding JSON: %w", err)
	}

	return nil
}
