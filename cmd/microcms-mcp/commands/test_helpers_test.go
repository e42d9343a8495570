package commands_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const testAPIKey = "test-key-123"

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// resetViper clears global configuration before and after a test. Tests
// using it must not run in parallel.
func resetViper(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
}

// useAPI points the CLI at a fake microCMS API served by handler.
func useAPI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	resetViper(t)
	viper.Set("base-url", server.URL)
	viper.Set("api-key", testAPIKey)
	viper.Set("output", "json")
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	return executeWithInput(cmd, "", args...)
}

func executeWithInput(cmd *cobra.Command, input string, args ...string) (string, error) {
	return run(cmd, input, io.Discard, args...)
}

// executeWithLogs runs cmd and also returns what it logged to stderr.
func executeWithLogs(cmd *cobra.Command, args ...string) (string, string, error) {
	var logs bytes.Buffer

	out, err := run(cmd, "", &logs, args...)

	return out, logs.String(), err
}

func run(cmd *cobra.Command, input string, stderr io.Writer, args ...string) (string, error) {
	var out bytes.Buffer

	// Mirror the root command so errors do not print usage into out.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&out)
	cmd.SetErr(stderr)
	cmd.SetIn(bytes.NewBufferString(input))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func setOutput(t *testing.T, format string) {
	t.Helper()

	viper.Set("output", format)
}
