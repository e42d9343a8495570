package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/events"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// NewBatchCommand creates the batch command group.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run content operations in bulk",
	}

	cmd.AddCommand(newBatchCreateCommand())

	return cmd
}

func newBatchCreateCommand() *cobra.Command {
	var (
		file        string
		method      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "create ENDPOINT",
		Short: "Create many content items from a JSON or YAML file",
		Long: `Create every item of a JSON or YAML list file.

With --method post microCMS assigns the identifiers. With --method put each
item must carry a string "id" field, which becomes the content identifier.
A failing item never stops the rest of the batch; the command exits with an
error when any item failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return constants.ErrBatchFileRequired
			}

			batchMethod, err := cms.ParseBatchMethod(method)
			if err != nil {
				return err
			}

			items, err := loadBatchItems(file)
			if err != nil {
				return err
			}

			logger := newLogger(cmd)

			client, err := newClient(logger.Named("http"))
			if err != nil {
				return err
			}

			notifier, err := events.NewNotifierFromConfig(events.ConfigForURL(viper.GetString(keyNATSURL)))
			if err != nil {
				return fmt.Errorf("failed to create event notifier: %w", err)
			}

			defer func() { _ = notifier.Close() }()

			action := events.ActionCreated
			if batchMethod == cms.BatchMethodPut {
				action = events.ActionPut
			}

			endpoint := args[0]
			executor := cms.NewBatchExecutor(client,
				cms.WithConcurrency(concurrency),
				cms.WithBatchLogger(logger),
				cms.WithProgress(func(result cms.BatchItemResult) {
					if !result.Success {
						return
					}

					id, _ := result.Data.ID()

					publishErr := notifier.Publish(cmd.Context(), events.Event{Action: action, Endpoint: endpoint, ID: id})
					if publishErr != nil {
						logger.Warn("failed to publish content event", map[string]interface{}{
							"endpoint": endpoint,
							"id":       id,
							"error":    publishErr.Error(),
						})
					}
				}),
			)

			report := executor.Execute(cmd.Context(), endpoint, items, batchMethod)

			err = render(cmd.OutOrStdout(), report, func(out io.Writer) error {
				return renderBatchTable(out, report)
			})
			if err != nil {
				return err
			}

			if report.Failed > 0 {
				return fmt.Errorf("%w: %d of %d", constants.ErrBatchItemsFailed, report.Failed, report.Total)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or YAML file containing a list of content objects")
	cmd.Flags().StringVarP(&method, "method", "m", string(cms.BatchMethodPost), "creation method (post, put)")
	cmd.Flags().IntVar(&concurrency, "concurrency", constants.DefaultBatchConcurrency, "number of items processed at once")

	return cmd
}

// loadBatchItems reads a list of content objects from a .json, .yaml or .yml
// file.
func loadBatchItems(path string) ([]cms.Content, error) {
	// path is supplied by the operator running the command
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var items []cms.Content

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = cms.DecodeJSON(data, &items)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, path)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrBatchFileNotArray, err)
	}

	for index, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: item %d is not an object", constants.ErrBatchFileNotArray, index)
		}
	}

	return items, nil
}

func renderBatchTable(out io.Writer, report *cms.BatchReport) error {
	table := tablewriter.NewWriter(out)
	table.Header("Index", "Status", "ID", "Error")

	for _, result := range report.Results {
		status := "ok"
		if !result.Success {
			status = "failed"
		}

		id, _ := result.Data.ID()

		_ = table.Append(strconv.Itoa(result.Index), status, id, result.Error)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(out, "\n%s %s: %d succeeded, %d failed (%s)\n",
		strings.ToUpper(string(report.Method)), report.Endpoint, report.Succeeded, report.Failed, report.Status())

	return err
}
