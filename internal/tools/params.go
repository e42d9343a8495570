package tools

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// Publication status accepted by create_content and put_content.
const (
	StatusDraft   = "draft"
	StatusPublish = "publish"
)

// GetContentsParams are the parameters of get_contents.
type GetContentsParams struct {
	Endpoint string `json:"endpoint"          jsonschema:"microCMS API endpoint to read, e.g. 'blog'"`
	Limit    *int   `json:"limit,omitempty"   jsonschema:"number of items to return (default 10, max 100)"`
	Offset   *int   `json:"offset,omitempty"  jsonschema:"offset of the first item"`
	Orders   string `json:"orders,omitempty"  jsonschema:"sort order, e.g. 'publishedAt' or '-publishedAt'"`
	Q        string `json:"q,omitempty"       jsonschema:"full-text search query"`
	Filters  string `json:"filters,omitempty" jsonschema:"filter expression, e.g. 'title[contains]news'"`
	Fields   string `json:"fields,omitempty"  jsonschema:"comma separated fields to return, e.g. 'id,title,publishedAt'"`
	Depth    *int   `json:"depth,omitempty"   jsonschema:"depth of resolved references (1-3)"`
}

// Validate implements validation.Validatable.
func (p GetContentsParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.Limit, validation.Min(0)),
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Depth, validation.Min(0)),
	)
}

// Query returns the list query in parameter order.
func (p GetContentsParams) Query() *cms.QueryParams {
	return cms.NewQueryParams().
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset).
		SetString("orders", p.Orders).
		SetString("q", p.Q).
		SetString("filters", p.Filters).
		SetString("fields", p.Fields).
		SetInt("depth", p.Depth)
}

// GetContentParams are the parameters of get_content.
type GetContentParams struct {
	Endpoint  string `json:"endpoint"           jsonschema:"microCMS API endpoint to read, e.g. 'blog'"`
	ContentID string `json:"contentId"          jsonschema:"ID of the content to read"`
	Fields    string `json:"fields,omitempty"   jsonschema:"comma separated fields to return, e.g. 'id,title,publishedAt'"`
	Depth     *int   `json:"depth,omitempty"    jsonschema:"depth of resolved references (1-3)"`
	DraftKey  string `json:"draftKey,omitempty" jsonschema:"draft key for reading unpublished content"`
}

// Validate implements validation.Validatable.
func (p GetContentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.ContentID, validation.Required),
		validation.Field(&p.Depth, validation.Min(0)),
	)
}

// Query returns the detail query in parameter order.
func (p GetContentParams) Query() *cms.QueryParams {
	return cms.NewQueryParams().
		SetString("fields", p.Fields).
		SetInt("depth", p.Depth).
		SetString("draftKey", p.DraftKey)
}

// SearchContentsParams are the parameters of search_contents.
type SearchContentsParams struct {
	Endpoint string `json:"endpoint"         jsonschema:"microCMS API endpoint to search, e.g. 'blog'"`
	Q        string `json:"q"                jsonschema:"full-text search query"`
	Limit    *int   `json:"limit,omitempty"  jsonschema:"number of items to return (default 10, max 100)"`
	Offset   *int   `json:"offset,omitempty" jsonschema:"offset of the first item"`
	Fields   string `json:"fields,omitempty" jsonschema:"comma separated fields to return"`
	Depth    *int   `json:"depth,omitempty"  jsonschema:"depth of resolved references (1-3)"`
}

// Validate implements validation.Validatable.
func (p SearchContentsParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.Q, validation.Required),
		validation.Field(&p.Limit, validation.Min(0)),
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Depth, validation.Min(0)),
	)
}

// Query puts q first.
func (p SearchContentsParams) Query() *cms.QueryParams {
	return cms.NewQueryParams().
		SetString("q", p.Q).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset).
		SetString("fields", p.Fields).
		SetInt("depth", p.Depth)
}

// FilterContentsParams are the parameters of filter_contents.
type FilterContentsParams struct {
	Endpoint string `json:"endpoint"         jsonschema:"microCMS API endpoint to filter, e.g. 'blog'"`
	Filters  string `json:"filters"          jsonschema:"filter expression, e.g. 'category[equals]news'"`
	Limit    *int   `json:"limit,omitempty"  jsonschema:"number of items to return (default 10, max 100)"`
	Offset   *int   `json:"offset,omitempty" jsonschema:"offset of the first item"`
	Fields   string `json:"fields,omitempty" jsonschema:"comma separated fields to return"`
	Depth    *int   `json:"depth,omitempty"  jsonschema:"depth of resolved references (1-3)"`
}

// Validate implements validation.Validatable.
func (p FilterContentsParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.Filters, validation.Required),
		validation.Field(&p.Limit, validation.Min(0)),
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Depth, validation.Min(0)),
	)
}

// Query puts filters first.
func (p FilterContentsParams) Query() *cms.QueryParams {
	return cms.NewQueryParams().
		SetString("filters", p.Filters).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset).
		SetString("fields", p.Fields).
		SetInt("depth", p.Depth)
}

// CreateContentParams are the parameters of create_content.
type CreateContentParams struct {
	Endpoint string         `json:"endpoint"         jsonschema:"microCMS API endpoint to create in, e.g. 'blog'"`
	Data     map[string]any `json:"data"             jsonschema:"content fields as a JSON object"`
	Status   string         `json:"status,omitempty" jsonschema:"publication status: draft or publish (default publish)"`
}

// Validate implements validation.Validatable. An empty data object is valid.
func (p CreateContentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.Data, validation.NotNil),
		validation.Field(&p.Status, validation.In(StatusDraft, StatusPublish)),
	)
}

// PutContentParams are the parameters of put_content.
type PutContentParams struct {
	Endpoint  string         `json:"endpoint"         jsonschema:"microCMS API endpoint, e.g. 'blog'"`
	ContentID string         `json:"contentId"        jsonschema:"ID to create or replace"`
	Data      map[string]any `json:"data"             jsonschema:"complete content fields as a JSON object"`
	Status    string         `json:"status,omitempty" jsonschema:"publication status: draft or publish (default publish)"`
}

// Validate implements validation.Validatable.
func (p PutContentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.ContentID, validation.Required),
		validation.Field(&p.Data, validation.NotNil),
		validation.Field(&p.Status, validation.In(StatusDraft, StatusPublish)),
	)
}

// PatchContentParams are the parameters of patch_content and update_content.
type PatchContentParams struct {
	Endpoint  string         `json:"endpoint"  jsonschema:"microCMS API endpoint, e.g. 'blog'"`
	ContentID string         `json:"contentId" jsonschema:"ID of the content to update"`
	Data      map[string]any `json:"data"      jsonschema:"fields to change as a JSON object"`
}

// Validate implements validation.Validatable.
func (p PatchContentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.ContentID, validation.Required),
		validation.Field(&p.Data, validation.NotNil),
	)
}

// DeleteContentParams are the parameters of delete_content.
type DeleteContentParams struct {
	Endpoint  string `json:"endpoint"  jsonschema:"microCMS API endpoint, e.g. 'blog'"`
	ContentID string `json:"contentId" jsonschema:"ID of the content to delete"`
}

// Validate implements validation.Validatable.
func (p DeleteContentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.ContentID, validation.Required),
	)
}

// BatchCreateContentsParams are the parameters of batch_create_contents.
type BatchCreateContentsParams struct {
	Endpoint string           `json:"endpoint"         jsonschema:"microCMS API endpoint to create in, e.g. 'authors'"`
	Contents []map[string]any `json:"contents"         jsonschema:"items to create; with method put each item needs an 'id' field"`
	Method   string           `json:"method,omitempty" jsonschema:"post lets the API assign ids, put uses each item's id (default post)"`
}

// Validate implements validation.Validatable.
func (p BatchCreateContentsParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Endpoint, validation.Required),
		validation.Field(&p.Contents, validation.NotNil),
		validation.Field(&p.Method, validation.In(string(cms.BatchMethodPost), string(cms.BatchMethodPut))),
	)
}

// Items converts the raw items into content payloads.
func (p BatchCreateContentsParams) Items() []cms.Content {
	items := make([]cms.Content, len(p.Contents))
	for i, item := range p.Contents {
		items[i] = cms.Content(item)
	}

	return items
}
