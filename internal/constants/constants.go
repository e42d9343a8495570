package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// microCMS API conventions.
const (
	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "X-MICROCMS-API-KEY"

	// APIPathPrefix is prepended to every endpoint path.
	APIPathPrefix = "/api/v1"

	// ServiceDomainSuffix turns a service domain into a base URL host.
	ServiceDomainSuffix = ".microcms.io"

	// ContentIDField is the payload field holding a content identifier.
	ContentIDField = "id"

	// ResourceScheme is the URI scheme for addressable resources.
	ResourceScheme = "microcms"
)

// HTTP settings.
const (
	// ContentTypeJSON is sent with every request body.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "microcms-mcp-server/1.0.0"

	// ShortHTTPTimeout bounds the optional connectivity check.
	ShortHTTPTimeout = 10 * time.Second
)

// Batching limits.
const (
	// DefaultBatchConcurrency keeps batch items strictly sequential.
	DefaultBatchConcurrency = 1

	// MaxBatchConcurrency caps the worker pool size.
	MaxBatchConcurrency = 16
)

// Secret masking.
const (
	// SecretPrefixLength is how many characters of a secret may be shown.
	SecretPrefixLength = 5

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Server identity.
const (
	// ServerName is reported to MCP clients.
	ServerName = "microCMS-MCP-Server"

	// ServerVersion is reported to MCP clients.
	ServerVersion = "1.0.0"
)

// Event subjects.
const (
	// EventSubjectPrefix prefixes every content change subject.
	EventSubjectPrefix = "microcms.content"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndent is the indentation used when rendering JSON for humans.
	JSONIndent = "  "
)
