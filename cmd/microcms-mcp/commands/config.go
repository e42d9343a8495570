package commands

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/auth"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/microcms"
)

// EffectiveConfig is the configuration after flags, environment and config
// file have been merged. The API key is always masked.
type EffectiveConfig struct {
	ConfigFile       string `json:"config_file,omitempty"    yaml:"config_file,omitempty"`
	BaseURL          string `json:"base_url"                 yaml:"base_url"`
	APIKey           string `json:"api_key"                  yaml:"api_key"`
	Output           string `json:"output"                   yaml:"output"`
	LogLevel         string `json:"log_level"                yaml:"log_level"`
	NATSURL          string `json:"nats_url,omitempty"       yaml:"nats_url,omitempty"`
	BatchConcurrency int    `json:"batch_concurrency"        yaml:"batch_concurrency"`
	Verbose          bool   `json:"verbose"                  yaml:"verbose"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  "Display the configuration resolved from flags, MICROCMS_* environment variables and the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadEffectiveConfig()

			return render(cmd.OutOrStdout(), config, func(out io.Writer) error {
				return renderPropertyTable(out, [][]string{
					{"Config File", config.ConfigFile},
					{"Base URL", config.BaseURL},
					{"API Key", config.APIKey},
					{"Output", config.Output},
					{"Log Level", config.LogLevel},
					{"NATS URL", config.NATSURL},
					{"Batch Concurrency", strconv.Itoa(config.BatchConcurrency)},
					{"Verbose", strconv.FormatBool(config.Verbose)},
				})
			})
		},
	}
}

func loadEffectiveConfig() *EffectiveConfig {
	settings := clientConfig(nil)
	microcms.Normalize(settings)

	apiKey := ""
	if settings.APIKey != "" {
		apiKey = auth.Mask(settings.APIKey)
	}

	return &EffectiveConfig{
		ConfigFile:       viper.ConfigFileUsed(),
		BaseURL:          settings.BaseURL,
		APIKey:           apiKey,
		Output:           viper.GetString(keyOutput),
		LogLevel:         viper.GetString(keyLogLevel),
		NATSURL:          viper.GetString(keyNATSURL),
		BatchConcurrency: viper.GetInt(keyBatchConcurrency),
		Verbose:          viper.GetBool(keyVerbose),
	}
}
