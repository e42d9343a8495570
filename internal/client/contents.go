package client

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// List implements cms.ContentReader.List.
func (c *Client) List(ctx context.Context, endpoint string, params *cms.QueryParams) (*cms.ListResponse, error) {
	if endpoint == "" {
		return nil, cms.ErrEndpointRequired
	}

	resp, err := c.httpClient.Get(ctx, endpointPath(endpoint), params)
	if err != nil {
		return nil, fmt.Errorf("listing %s contents: %w", endpoint, err)
	}

	var result cms.ListResponse

	err = cms.DecodeJSON(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", endpoint, err)
	}

	return &result, nil
}

// Get implements cms.ContentReader.Get.
func (c *Client) Get(ctx context.Context, endpoint, contentID string, params *cms.QueryParams) (cms.Content, error) {
	if endpoint == "" {
		return nil, cms.ErrEndpointRequired
	}

	if contentID == "" {
		return nil, cms.ErrContentIDRequired
	}

	resp, err := c.httpClient.Get(ctx, contentPath(endpoint, contentID), params)
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", endpoint, contentID, err)
	}

	return parseContent(resp.Body)
}

// Create implements cms.ContentWriter.Create. The API assigns the id.
func (c *Client) Create(ctx context.Context, endpoint string, data cms.Content) (cms.Content, error) {
	if endpoint == "" {
		return nil, cms.ErrEndpointRequired
	}

	resp, err := c.httpClient.Post(ctx, endpointPath(endpoint), bodyOf(data))
	if err != nil {
		return nil, fmt.Errorf("creating %s content: %w", endpoint, err)
	}

	return parseContent(resp.Body)
}

// Put implements cms.ContentWriter.Put. The item is created or fully
// replaced under contentID.
func (c *Client) Put(ctx context.Context, endpoint, contentID string, data cms.Content) (cms.Content, error) {
	if endpoint == "" {
		return nil, cms.ErrEndpointRequired
	}

	if contentID == "" {
		return nil, cms.ErrContentIDRequired
	}

	resp, err := c.httpClient.Put(ctx, contentPath(endpoint, contentID), bodyOf(data))
	if err != nil {
		return nil, fmt.Errorf("putting %s/%s: %w", endpoint, contentID, err)
	}

	return parseContent(resp.Body)
}

// Patch implements cms.ContentWriter.Patch. Only the given fields change.
func (c *Client) Patch(ctx context.Context, endpoint, contentID string, data cms.Content) (cms.Content, error) {
	if endpoint == "" {
		return nil, cms.ErrEndpointRequired
	}

	if contentID == "" {
		return nil, cms.ErrContentIDRequired
	}

	resp, err := c.httpClient.Patch(ctx, contentPath(endpoint, contentID), bodyOf(data))
	if err != nil {
		return nil, fmt.Errorf("patching %s/%s: %w", endpoint, contentID, err)
	}

	return parseContent(resp.Body)
}

// Delete implements cms.ContentWriter.Delete. The API answers without a
// body, so success is reported with a synthetic marker.
func (c *Client) Delete(ctx context.Context, endpoint, contentID string) (*cms.DeleteResult, error) {
	if endpoint == "" {
		return nil, cms.ErrEndpointRequired
	}

	if contentID == "" {
		return nil, cms.ErrContentIDRequired
	}

	_, err := c.httpClient.Delete(ctx, contentPath(endpoint, contentID))
	if err != nil {
		return nil, fmt.Errorf("deleting %s/%s: %w", endpoint, contentID, err)
	}

	return &cms.DeleteResult{Success: true}, nil
}

// bodyOf makes sure a nil payload is sent as "{}" and not "null".
func bodyOf(data cms.Content) cms.Content {
	if data == nil {
		return cms.Content{}
	}

	return data
}

// parseContent decodes a single item. An empty 2xx body yields an empty item.
func parseContent(body []byte) (cms.Content, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return cms.Content{}, nil
	}

	var content cms.Content

	err := cms.DecodeJSON(body, &content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cms.ErrResponseNotJSONValue, err)
	}

	if content == nil {
		content = cms.Content{}
	}

	return content, nil
}
