package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/auth"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/microcms"
)

// NewConfigureCommand creates the configure command, which stores the
// connection settings in the config file.
func NewConfigureCommand() *cobra.Command {
	var verifyEndpoint string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save microCMS connection settings",
		Long: `Prompt for the service domain (or base URL) and API key and save them to the
config file. Values already given through flags or environment variables are
not prompted for. The key is read without echo when stdin is a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.ErrOrStderr()

			config := &cms.Config{
				APIKey:        viper.GetString(keyAPIKey),
				BaseURL:       viper.GetString(keyBaseURL),
				ServiceDomain: viper.GetString(keyServiceDomain),
			}

			if config.BaseURL == "" && config.ServiceDomain == "" {
				location, err := prompt(reader, out, "Service domain or base URL: ")
				if err != nil {
					return err
				}

				if strings.Contains(location, ".") || strings.Contains(location, "://") {
					config.BaseURL = location
				} else {
					config.ServiceDomain = location
				}
			}

			if config.APIKey == "" {
				key, err := promptSecret(cmd.InOrStdin(), reader, out, "API key: ")
				if err != nil {
					return err
				}

				config.APIKey = key
			}

			microcms.Normalize(config)

			err := microcms.Validate(config)
			if err != nil {
				return err
			}

			if verifyEndpoint != "" {
				err = verifyConnection(cmd.Context(), config, verifyEndpoint)
				if err != nil {
					return err
				}
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			err = writeConfigFile(path, map[string]interface{}{
				keyAPIKey:  config.APIKey,
				keyBaseURL: config.BaseURL,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s (base URL %s, API key %s)\n",
				path, config.BaseURL, auth.Mask(config.APIKey))

			return err
		},
	}

	cmd.Flags().StringVar(&verifyEndpoint, "verify", "", "list ENDPOINT once to check the settings before saving")

	return cmd
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%w for %q", constants.ErrEmptyInput, strings.TrimSuffix(label, ": "))
	}

	return line, nil
}

// promptSecret reads a secret without echo when in is a terminal and falls
// back to a plain line read otherwise.
func promptSecret(in io.Reader, reader *bufio.Reader, out io.Writer, label string) (string, error) {
	file, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return prompt(reader, out, label)
	}

	_, _ = fmt.Fprint(out, label)

	secret, err := term.ReadPassword(int(file.Fd()))

	_, _ = fmt.Fprintln(out)

	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	value := strings.TrimSpace(string(secret))
	if value == "" {
		return "", fmt.Errorf("%w for %q", constants.ErrEmptyInput, strings.TrimSuffix(label, ": "))
	}

	return value, nil
}

func verifyConnection(ctx context.Context, config *cms.Config, endpoint string) error {
	client, err := microcms.New(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ShortHTTPTimeout)
	defer cancel()

	limit := 1

	_, err = client.List(ctx, endpoint, cms.NewQueryParams().SetInt("limit", &limit))
	if err != nil {
		return fmt.Errorf("failed to verify settings: %w", err)
	}

	return nil
}

// configFilePath returns the file given with --config, the file viper loaded,
// or ~/.microcms-mcp/config.yml.
func configFilePath() (string, error) {
	if path := viper.GetString(keyConfig); path != "" {
		return path, nil
	}

	if path := viper.ConfigFileUsed(); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(ConfigDir(home), configFileName), nil
}

// writeConfigFile merges values into the YAML file at path, keeping any
// other keys already there.
func writeConfigFile(path string, values map[string]interface{}) error {
	settings := map[string]interface{}{}

	// path comes from the operator's own flags or home directory
	// #nosec G304
	existing, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(existing, &settings); err != nil {
			return fmt.Errorf("failed to parse existing config %s: %w", path, err)
		}

		if settings == nil {
			settings = map[string]interface{}{}
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}

	for key, value := range values {
		settings[key] = value
	}

	// base-url supersedes any stored service domain.
	delete(settings, keyServiceDomain)

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	// WriteFile keeps the mode of an existing file.
	err = os.Chmod(path, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to restrict config permissions: %w", err)
	}

	return nil
}
