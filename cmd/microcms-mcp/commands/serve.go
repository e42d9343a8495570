package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/events"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/mcpserver"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/tools"
)

// NewServeCommand creates the serve command, which runs the MCP server on
// stdio until the client disconnects or the process is interrupted.
func NewServeCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the microCMS MCP server using stdin/stdout as the protocol channel.

Logs are written to stderr. When a NATS URL is configured every successful
write is announced on microcms.content.<endpoint>.<action>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := newLogger(cmd)

			client, settings, err := newConfiguredClient(logger.Named("http"))
			if err != nil {
				return err
			}

			logConnection(logger, settings)

			notifier, err := events.NewNotifierFromConfig(events.ConfigForURL(viper.GetString(keyNATSURL)))
			if err != nil {
				return fmt.Errorf("failed to create event notifier: %w", err)
			}

			defer func() {
				if closeErr := notifier.Close(); closeErr != nil {
					logger.Warn("failed to close event notifier", map[string]interface{}{"error": closeErr.Error()})
				}
			}()

			router := tools.NewRouter(client,
				tools.WithNotifier(notifier),
				tools.WithLogger(logger.Named("tools")),
				tools.WithBatchConcurrency(viper.GetInt(keyBatchConcurrency)),
			)

			logger.Debug("serve configuration", map[string]interface{}{
				"build":             version,
				"events":            viper.GetString(keyNATSURL) != "",
				"batch_concurrency": viper.GetInt(keyBatchConcurrency),
			})

			return mcpserver.New(router, logger.Named("mcp")).Run(ctx)
		},
	}

	cmd.Flags().Int(keyBatchConcurrency, constants.DefaultBatchConcurrency, "number of batch items processed at once")
	_ = viper.BindPFlag(keyBatchConcurrency, cmd.Flags().Lookup(keyBatchConcurrency))

	return cmd
}
