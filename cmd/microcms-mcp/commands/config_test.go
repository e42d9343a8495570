package commands_test

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Riti0208/microcms-fullstack-mcp-server/cmd/microcms-mcp/commands"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

func readConfigFile(t *testing.T, path string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	settings := map[string]interface{}{}
	require.NoError(t, yaml.Unmarshal(data, &settings))

	return settings
}

//nolint:paralleltest,funlen // commands read global viper state
func TestConfigure(t *testing.T) {
	t.Run("prompts for missing values", func(t *testing.T) {
		resetViper(t)

		path := filepath.Join(t.TempDir(), "nested", "config.yml")
		viper.Set("config", path)

		output, err := executeWithInput(commands.NewConfigureCommand(), "example\nsecret-key-123\n")
		require.NoError(t, err)
		assert.Contains(t, output, "https://example.microcms.io")
		assert.Contains(t, output, "secre...")
		assert.NotContains(t, output, "secret-key-123")

		settings := readConfigFile(t, path)
		assert.Equal(t, "https://example.microcms.io", settings["base-url"])
		assert.Equal(t, "secret-key-123", settings["api-key"])

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())
	})

	t.Run("uses configured values and keeps other keys", func(t *testing.T) {
		resetViper(t)

		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: debug\nservice-domain: old\n"), 0o644)) //nolint:gosec

		viper.Set("config", path)
		viper.Set("base-url", "cms.example.com/")
		viper.Set("api-key", "another-key")

		_, err := executeWithInput(commands.NewConfigureCommand(), "")
		require.NoError(t, err)

		settings := readConfigFile(t, path)
		assert.Equal(t, "https://cms.example.com", settings["base-url"])
		assert.Equal(t, "another-key", settings["api-key"])
		assert.Equal(t, "debug", settings["log-level"])
		assert.NotContains(t, settings, "service-domain")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())
	})

	t.Run("empty answer", func(t *testing.T) {
		resetViper(t)
		viper.Set("config", filepath.Join(t.TempDir(), "config.yml"))

		_, err := executeWithInput(commands.NewConfigureCommand(), "\n")
		require.ErrorIs(t, err, constants.ErrEmptyInput)
	})

	t.Run("verify failure does not save", func(t *testing.T) {
		useAPI(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/blog", request.URL.Path)
			assert.Equal(t, "limit=1", request.URL.RawQuery)
			writer.WriteHeader(http.StatusUnauthorized)
		})

		path := filepath.Join(t.TempDir(), "config.yml")
		viper.Set("config", path)

		_, err := executeWithInput(commands.NewConfigureCommand(), "", "--verify", "blog")
		require.Error(t, err)
		assert.True(t, cms.IsUnauthorized(err))

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}

//nolint:paralleltest // commands read global viper state
func TestConfigShow(t *testing.T) {
	resetViper(t)
	viper.Set("service-domain", "example")
	viper.Set("api-key", "abcdefghijk")
	viper.Set("log-level", "warn")
	setOutput(t, "json")

	output, err := execute(commands.NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.NotContains(t, output, "abcdefghijk")

	var config commands.EffectiveConfig
	require.NoError(t, json.Unmarshal([]byte(output), &config))
	assert.Equal(t, "https://example.microcms.io", config.BaseURL)
	assert.Equal(t, "abcde...", config.APIKey)
	assert.Equal(t, "warn", config.LogLevel)
}

//nolint:paralleltest // commands read global viper state
func TestConfigShow_Table(t *testing.T) {
	resetViper(t)
	viper.Set("api-key", "abcdefghijk")
	setOutput(t, "table")

	output, err := execute(commands.NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, output, "abcde...")
	assert.NotContains(t, output, "abcdefghijk")
}

//nolint:paralleltest // commands read global viper state
func TestVersion(t *testing.T) {
	resetViper(t)
	setOutput(t, "json")

	output, err := execute(commands.NewVersionCommand("1.2.3", "abc123", "2024-01-01"))
	require.NoError(t, err)

	var info commands.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2024-01-01", info.Built)
}

//nolint:paralleltest // commands read global viper state
func TestServe_ConfigurationError(t *testing.T) {
	resetViper(t)

	_, err := execute(commands.NewServeCommand("test"))
	require.ErrorIs(t, err, constants.ErrAPIKeyRequired)
}
