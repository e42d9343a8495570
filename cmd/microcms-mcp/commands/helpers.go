package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/auth"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/logging"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/microcms"
)

// Configuration keys shared by flags, environment variables and the config
// file.
const (
	keyConfig           = "config"
	keyAPIKey           = "api-key"
	keyBaseURL          = "base-url"
	keyServiceDomain    = "service-domain"
	keyOutput           = "output"
	keyVerbose          = "verbose"
	keyLogLevel         = "log-level"
	keyLogJSON          = "log-json"
	keyNATSURL          = "nats-url"
	keyBatchConcurrency = "batch-concurrency"
)

const (
	configDirName  = ".microcms-mcp"
	configFileName = "config.yml"
	loggerName     = "microcms-mcp"
)

// ConfigDir returns the directory holding the CLI configuration under home.
func ConfigDir(home string) string {
	return filepath.Join(home, configDirName)
}

// newLogger builds the process logger from configuration. --verbose forces
// debug level.
func newLogger(cmd *cobra.Command) *logging.Logger {
	level := viper.GetString(keyLogLevel)
	if viper.GetBool(keyVerbose) {
		level = "debug"
	}

	return logging.New(logging.Options{
		Name:   loggerName,
		Level:  level,
		JSON:   viper.GetBool(keyLogJSON),
		Output: cmd.ErrOrStderr(),
	})
}

// clientConfig collects the connection settings from viper. HTTP request
// logging follows the effective log level.
func clientConfig(logger cms.Logger) *cms.Config {
	return &cms.Config{
		APIKey:        viper.GetString(keyAPIKey),
		BaseURL:       viper.GetString(keyBaseURL),
		ServiceDomain: viper.GetString(keyServiceDomain),
		Debug:         viper.GetBool(keyVerbose) || logging.DebugEnabled(viper.GetString(keyLogLevel)),
		Logger:        logger,
	}
}

// newClient creates a content client from the effective configuration.
func newClient(logger cms.Logger) (cms.ContentClient, error) {
	client, _, err := newConfiguredClient(logger)

	return client, err
}

// newConfiguredClient is newClient that also returns the normalized settings.
func newConfiguredClient(logger cms.Logger) (cms.ContentClient, *cms.Config, error) {
	config := clientConfig(logger)

	client, err := microcms.New(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create microCMS client: %w", err)
	}

	return client, config, nil
}

// logConnection reports where the client connects, with the key masked.
func logConnection(logger cms.Logger, config *cms.Config) {
	logger.Info("microCMS client configured", map[string]interface{}{
		"base_url": config.BaseURL,
		"api_key":  auth.Mask(config.APIKey),
	})
}

// outputFormat returns the requested output format.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString(keyOutput))
	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedOutputFormat, format)
	}
}

// render writes value as JSON or YAML, or calls table for table output.
func render(out io.Writer, value interface{}, table func(io.Writer) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", constants.JSONIndent)

		return encoder.Encode(value)
	case constants.FormatYAML:
		plain, err := yamlValue(value)
		if err != nil {
			return err
		}

		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(plain)
	default:
		return table(out)
	}
}

// yamlValue turns value into plain maps and slices so that numbers decoded
// as json.Number are written as YAML numbers rather than strings.
func yamlValue(value interface{}) (interface{}, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}

	var plain interface{}

	err = cms.DecodeJSON(data, &plain)
	if err != nil {
		return nil, err
	}

	return numbersToYAML(plain), nil
}

func numbersToYAML(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		for key, item := range typed {
			typed[key] = numbersToYAML(item)
		}

		return typed
	case []interface{}:
		for i, item := range typed {
			typed[i] = numbersToYAML(item)
		}

		return typed
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return i
		}

		if f, err := typed.Float64(); err == nil {
			return f
		}

		return typed.String()
	default:
		return value
	}
}

// renderPropertyTable writes a two column Property/Value table.
func renderPropertyTable(out io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row[0], row[1])
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// contentRows lists the fields of content sorted by name, id first.
func contentRows(content cms.Content) [][]string {
	keys := make([]string, 0, len(content))
	for key := range content {
		if key != constants.ContentIDField {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	rows := make([][]string, 0, len(content))
	if id, ok := content[constants.ContentIDField]; ok {
		rows = append(rows, []string{constants.ContentIDField, cellValue(id)})
	}

	for _, key := range keys {
		rows = append(rows, []string{key, cellValue(content[key])})
	}

	return rows
}

// cellValue renders a field for a table cell. Strings are shown as is,
// everything else as compact JSON.
func cellValue(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprintf("%v", typed)
		}

		return string(data)
	}
}

// intFlag returns a pointer to the flag value when the flag was given.
func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil
	}

	return &value
}

// parseData decodes a --data argument into a content payload.
func parseData(raw string) (cms.Content, error) {
	if strings.TrimSpace(raw) == "" {
		return cms.Content{}, nil
	}

	var data cms.Content

	err := cms.DecodeJSON([]byte(raw), &data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidDataArgument, err)
	}

	if data == nil {
		return nil, constants.ErrInvalidDataArgument
	}

	return data, nil
}
