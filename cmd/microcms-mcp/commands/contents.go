package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// Columns shown for each item in list output. Every microCMS content item
// carries these system fields.
var listColumns = []string{"id", "createdAt", "updatedAt", "publishedAt", "revisedAt"}

// NewContentsCommand creates the contents command group.
func NewContentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contents",
		Aliases: []string{"content"},
		Short:   "Manage microCMS content",
		Long:    "List, read, create, replace, update and delete content of a microCMS API endpoint",
	}

	cmd.AddCommand(newContentsListCommand())
	cmd.AddCommand(newContentsGetCommand())
	cmd.AddCommand(newContentsCreateCommand())
	cmd.AddCommand(newContentsPutCommand())
	cmd.AddCommand(newContentsPatchCommand())
	cmd.AddCommand(newContentsDeleteCommand())

	return cmd
}

func newContentsListCommand() *cobra.Command {
	var orders, q, filters, fields string

	cmd := &cobra.Command{
		Use:   "list ENDPOINT",
		Short: "List content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(newLogger(cmd))
			if err != nil {
				return err
			}

			query := cms.NewQueryParams().
				SetInt("limit", intFlag(cmd, "limit")).
				SetInt("offset", intFlag(cmd, "offset")).
				SetString("orders", orders).
				SetString("q", q).
				SetString("filters", filters).
				SetString("fields", fields).
				SetInt("depth", intFlag(cmd, "depth"))

			list, err := client.List(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), list, func(out io.Writer) error {
				return renderListTable(out, list)
			})
		},
	}

	cmd.Flags().Int("limit", 0, "maximum number of items")
	cmd.Flags().Int("offset", 0, "number of items to skip")
	cmd.Flags().StringVar(&orders, "orders", "", "sort order, e.g. -publishedAt")
	cmd.Flags().StringVarP(&q, "query", "q", "", "full text search")
	cmd.Flags().StringVar(&filters, "filters", "", "filter expression, e.g. title[contains]hello")
	cmd.Flags().StringVar(&fields, "fields", "", "comma separated fields to return")
	cmd.Flags().Int("depth", 0, "reference expansion depth")

	return cmd
}

func newContentsGetCommand() *cobra.Command {
	var fields, draftKey string

	cmd := &cobra.Command{
		Use:   "get ENDPOINT CONTENT_ID",
		Short: "Get a content item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(newLogger(cmd))
			if err != nil {
				return err
			}

			query := cms.NewQueryParams().
				SetString("fields", fields).
				SetInt("depth", intFlag(cmd, "depth")).
				SetString("draftKey", draftKey)

			content, err := client.Get(cmd.Context(), args[0], args[1], query)
			if err != nil {
				return err
			}

			return renderContent(cmd.OutOrStdout(), content)
		},
	}

	cmd.Flags().StringVar(&fields, "fields", "", "comma separated fields to return")
	cmd.Flags().Int("depth", 0, "reference expansion depth")
	cmd.Flags().StringVar(&draftKey, "draft-key", "", "draft key for unpublished content")

	return cmd
}

func newContentsCreateCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "create ENDPOINT",
		Short: "Create content with an identifier assigned by microCMS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseData(data)
			if err != nil {
				return err
			}

			client, err := newClient(newLogger(cmd))
			if err != nil {
				return err
			}

			content, err := client.Create(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}

			return renderContent(cmd.OutOrStdout(), content)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "{}", "content as a JSON object")

	return cmd
}

func newContentsPutCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "put ENDPOINT CONTENT_ID",
		Short: "Create or replace content with the given identifier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseData(data)
			if err != nil {
				return err
			}

			client, err := newClient(newLogger(cmd))
			if err != nil {
				return err
			}

			content, err := client.Put(cmd.Context(), args[0], args[1], payload)
			if err != nil {
				return err
			}

			return renderContent(cmd.OutOrStdout(), content)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "{}", "content as a JSON object")

	return cmd
}

func newContentsPatchCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "patch ENDPOINT CONTENT_ID",
		Short: "Update the given fields of a content item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseData(data)
			if err != nil {
				return err
			}

			client, err := newClient(newLogger(cmd))
			if err != nil {
				return err
			}

			content, err := client.Patch(cmd.Context(), args[0], args[1], payload)
			if err != nil {
				return err
			}

			return renderContent(cmd.OutOrStdout(), content)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "{}", "fields to update as a JSON object")

	return cmd
}

func newContentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENDPOINT CONTENT_ID",
		Short: "Delete a content item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(newLogger(cmd))
			if err != nil {
				return err
			}

			result, err := client.Delete(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), result, func(out io.Writer) error {
				_, err := fmt.Fprintf(out, "Content %s deleted from %s\n", args[1], args[0])

				return err
			})
		},
	}
}

func renderContent(out io.Writer, content cms.Content) error {
	return render(out, content, func(out io.Writer) error {
		return renderPropertyTable(out, contentRows(content))
	})
}

func renderListTable(out io.Writer, list *cms.ListResponse) error {
	table := tablewriter.NewWriter(out)
	table.Header("ID", "Created At", "Updated At", "Published At", "Revised At")

	for _, content := range list.Contents {
		row := make([]string, 0, len(listColumns))
		for _, column := range listColumns {
			row = append(row, cellValue(content[column]))
		}

		_ = table.Append(row)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(out, "\nShowing %d of %d (offset %d, limit %d)\n",
		len(list.Contents), list.TotalCount, list.Offset, list.Limit)

	return err
}
