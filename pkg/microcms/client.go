// Package microcms provides the main entry point for creating microCMS content API clients
package microcms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/client"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// Configuration errors, usable with errors.Is on a *cms.ConfigurationError.
var (
	ErrAPIKeyRequired  = constants.ErrAPIKeyRequired
	ErrBaseURLRequired = constants.ErrBaseURLRequired
	ErrInvalidBaseURL  = constants.ErrInvalidBaseURL
)

// New validates config and creates a content API client. Configuration
// problems are returned as *cms.ConfigurationError. config is normalised in
// place.
func New(config *cms.Config) (cms.ContentClient, error) {
	if config == nil {
		return nil, &cms.ConfigurationError{Err: cms.ErrConfigRequired}
	}

	Normalize(config)

	err := Validate(config)
	if err != nil {
		return nil, err
	}

	contentClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return contentClient, nil
}

// NewWithAPIKey creates a client for a service domain such as "example".
func NewWithAPIKey(serviceDomain, apiKey string) (cms.ContentClient, error) {
	return New(&cms.Config{
		ServiceDomain: serviceDomain,
		APIKey:        apiKey,
	})
}

// Normalize trims whitespace and derives BaseURL. An explicit BaseURL wins
// over ServiceDomain. Trailing slashes are removed and https:// is added
// when no scheme is given.
func Normalize(config *cms.Config) {
	config.APIKey = strings.TrimSpace(config.APIKey)
	config.ServiceDomain = strings.TrimSpace(config.ServiceDomain)

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" && config.ServiceDomain != "" {
		baseURL = serviceDomainURL(config.ServiceDomain)
	}

	if baseURL == "" {
		config.BaseURL = ""

		return
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL
}

// serviceDomainURL accepts "example" as well as "example.microcms.io".
func serviceDomainURL(domain string) string {
	domain = strings.TrimSuffix(strings.TrimRight(domain, "/"), constants.ServiceDomainSuffix)

	return "https://" + domain + constants.ServiceDomainSuffix
}

// Validate checks that config holds an API key and a usable base URL.
func Validate(config *cms.Config) error {
	err := validation.ValidateStruct(config,
		validation.Field(&config.APIKey, validation.Required.ErrorObject(
			validation.NewError("validation_api_key_required", constants.ErrAPIKeyRequired.Error()))),
		validation.Field(&config.BaseURL,
			validation.Required.ErrorObject(
				validation.NewError("validation_base_url_required", constants.ErrBaseURLRequired.Error())),
			validation.By(validBaseURL)),
	)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		// Report the first failing field in a stable order.
		for _, field := range []string{"APIKey", "BaseURL"} {
			if fieldErr, ok := fieldErrs[field]; ok {
				return &cms.ConfigurationError{Field: field, Err: configSentinel(field, fieldErr)}
			}
		}
	}

	return &cms.ConfigurationError{Err: err}
}

// configSentinel maps a validation failure onto the package sentinels so
// callers can use errors.Is.
func configSentinel(field string, err error) error {
	switch {
	case field == "APIKey":
		return constants.ErrAPIKeyRequired
	case errors.Is(err, constants.ErrInvalidBaseURL):
		return err
	default:
		var validationErr validation.Error
		if errors.As(err, &validationErr) && validationErr.Code() == "validation_base_url_required" {
			return constants.ErrBaseURLRequired
		}

		return fmt.Errorf("%w: %w", constants.ErrInvalidBaseURL, err)
	}
}

func validBaseURL(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", constants.ErrInvalidBaseURL, err)
	}

	if parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: %q", constants.ErrInvalidBaseURL, raw)
	}

	return nil
}
