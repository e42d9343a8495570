package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version  string `json:"version"  yaml:"version"`
	Commit   string `json:"commit"   yaml:"commit"`
	Built    string `json:"built"    yaml:"built"`
	Protocol string `json:"protocol" yaml:"protocol"`
}

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the microCMS MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			versionInfo := VersionInfo{
				Version:  version,
				Commit:   commit,
				Built:    date,
				Protocol: constants.ServerName + " " + constants.ServerVersion,
			}

			return render(cmd.OutOrStdout(), versionInfo, func(out io.Writer) error {
				return renderPropertyTable(out, [][]string{
					{"Version", versionInfo.Version},
					{"Commit", versionInfo.Commit},
					{"Built", versionInfo.Built},
					{"Server", versionInfo.Protocol},
				})
			})
		},
	}
}
