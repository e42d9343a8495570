package client

import (
	"errors"
	"strings"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/auth"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/http"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
)

// Client implements the cms.ContentClient interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     cms.Logger
}

var _ cms.ContentClient = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *cms.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	return httpOpts
}

// New creates a content API client. config.BaseURL must already be
// normalised; pkg/microcms does that for callers outside this module.
func New(config *cms.Config) (*Client, error) {
	if config == nil {
		return nil, cms.ErrConfigRequired
	}

	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, ErrBaseURLRequired
	}

	var authenticator auth.Authenticator
	if config.APIKey != "" {
		authenticator = auth.NewAPIKey(config.APIKey)
	}

	httpClient := http.NewClient(config.BaseURL, authenticator, createHTTPClientOptions(config)...)

	if config.Logger != nil {
		config.Logger.Debug("content API client created", map[string]interface{}{
			"base_url": httpClient.BaseURL(),
			"api_key":  auth.Mask(config.APIKey),
		})
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		logger:     config.Logger,
	}, nil
}

// BaseURL returns the normalised base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpointPath returns "/api/v1/{endpoint}". Segments are used verbatim.
func endpointPath(endpoint string) string {
	return constants.APIPathPrefix + "/" + endpoint
}

// contentPath returns "/api/v1/{endpoint}/{contentID}".
func contentPath(endpoint, contentID string) string {
	return endpointPath(endpoint) + "/" + contentID
}
