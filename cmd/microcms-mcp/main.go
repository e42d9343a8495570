package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Riti0208/microcms-fullstack-mcp-server/cmd/microcms-mcp/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "microcms-mcp",
	Short: "microCMS MCP server and content CLI",
	Long: `An MCP server exposing microCMS content operations to AI assistants.

The serve command speaks the Model Context Protocol on stdio. The remaining
commands give direct access to the same content operations from a shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.microcms-mcp/config.yml)")
	rootCmd.PersistentFlags().StringP("api-key", "k", "", "microCMS API key")
	rootCmd.PersistentFlags().StringP("base-url", "u", "", "microCMS base URL, e.g. https://example.microcms.io")
	rootCmd.PersistentFlags().StringP("service-domain", "s", "", "microCMS service domain, e.g. example")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().String("nats-url", "", "NATS server URL for content change events")

	// Bind flags to viper
	for _, name := range []string{
		"config", "api-key", "base-url", "service-domain", "output",
		"verbose", "log-level", "log-json", "nats-url",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewServeCommand(version))
	rootCmd.AddCommand(commands.NewContentsCommand())
	rootCmd.AddCommand(commands.NewBatchCommand())
	rootCmd.AddCommand(commands.NewConfigureCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.microcms-mcp/config.yml
		viper.AddConfigPath(commands.ConfigDir(home))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// MICROCMS_API_KEY, MICROCMS_BASE_URL, ...
	viper.SetEnvPrefix("MICROCMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
