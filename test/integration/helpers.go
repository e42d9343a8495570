//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ServiceDomain string
	APIKey        string
	Endpoint      string
	BinaryPath    string
	Verbose       bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ServiceDomain: os.Getenv("MICROCMS_SERVICE_DOMAIN"),
		APIKey:        os.Getenv("MICROCMS_API_KEY"),
		Endpoint:      os.Getenv("MICROCMS_TEST_ENDPOINT"),
		BinaryPath:    getBinaryPath(),
		Verbose:       os.Getenv("MICROCMS_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the microcms-mcp binary
func getBinaryPath() string {
	if path := os.Getenv("MICROCMS_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../microcms-mcp", "./microcms-mcp"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "microcms-mcp"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ServiceDomain == "" || config.APIKey == "" || config.Endpoint == "" {
		t.Skip("MICROCMS_SERVICE_DOMAIN, MICROCMS_API_KEY or MICROCMS_TEST_ENDPOINT not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("microcms-mcp binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs microcms-mcp commands against the configured service
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Run executes the binary with args and returns stdout and stderr
func (r *CommandRunner) Run(args ...string) (string, string, error) {
	r.t.Helper()

	args = append([]string{"--service-domain", r.config.ServiceDomain, "--output", "json"}, args...)
	if r.config.Verbose {
		args = append(args, "--verbose")
	}

	// #nosec G204
	cmd := exec.Command(r.config.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "MICROCMS_API_KEY="+r.config.APIKey)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if r.config.Verbose {
		r.t.Logf("microcms-mcp %v\nstdout: %s\nstderr: %s", args, stdout.String(), stderr.String())
	}

	return stdout.String(), stderr.String(), err
}

// RunJSON executes the binary and decodes its JSON output into v
func (r *CommandRunner) RunJSON(v interface{}, args ...string) {
	r.t.Helper()

	stdout, stderr, err := r.Run(args...)
	require.NoError(r.t, err, "microcms-mcp %v failed: %s", args, stderr)
	require.NoError(r.t, json.Unmarshal([]byte(stdout), v), "invalid JSON output: %s", stdout)
}

// Cleanup deletes a content item, ignoring failures
func (r *CommandRunner) Cleanup(contentID string) {
	if contentID == "" {
		return
	}

	_, _, _ = r.Run("contents", "delete", r.config.Endpoint, contentID)
}

// GenerateTestName generates a unique name for test content
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
