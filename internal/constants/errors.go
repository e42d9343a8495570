package constants

import "errors"

// Configuration errors.
var (
	ErrAPIKeyRequired  = errors.New("API key is required (set MICROCMS_API_KEY or --api-key)")
	ErrBaseURLRequired = errors.New("base URL is required (set MICROCMS_BASE_URL, MICROCMS_SERVICE_DOMAIN or --base-url)")
	ErrInvalidBaseURL  = errors.New("base URL must be an absolute http or https URL")
)

// CLI errors.
var (
	ErrBatchFileRequired   = errors.New("--file is required")
	ErrUnsupportedFormat   = errors.New("unsupported file format, expected .json, .yaml or .yml")
	ErrBatchItemsFailed    = errors.New("one or more batch items failed")
	ErrInvalidDataArgument = errors.New("--data must be a JSON object")

	ErrUnsupportedOutputFormat = errors.New("unsupported output format, expected table, json or yaml")
	ErrBatchFileNotArray       = errors.New("batch file must contain a list of objects")
	ErrEmptyInput              = errors.New("no input provided")
)
