package auth

import (
	"net/http"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
)

// Authenticator decorates outgoing requests with credentials.
type Authenticator interface {
	Apply(req *http.Request)
}

// APIKey is a static key sent in a fixed header on every request.
type APIKey struct {
	header string
	key    string
}

// NewAPIKey creates an authenticator for the microCMS API key header.
func NewAPIKey(key string) *APIKey {
	return &APIKey{
		header: constants.APIKeyHeader,
		key:    key,
	}
}

// Apply sets the key header on req.
func (k *APIKey) Apply(req *http.Request) {
	req.Header.Set(k.header, k.key)
}

// Header returns the header name used for the key.
func (k *APIKey) Header() string {
	return k.header
}

// Masked returns a short non-secret prefix of the key for diagnostics.
func (k *APIKey) Masked() string {
	return Mask(k.key)
}

// Mask returns the first few characters of secret followed by "...". Short
// secrets are fully masked.
func Mask(secret string) string {
	if len(secret) <= constants.SecretPrefixLength {
		return constants.MaskedSecret
	}

	return secret[:constants.SecretPrefixLength] + "..."
}
