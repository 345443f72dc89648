package commands

import (
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the beacon operations as MCP tools on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := buildBeacon(a.cfg, a.logger, nil)
			if err != nil {
				return err
			}
			return mcp.NewMCPServer(svc, version, a.logger.Named("mcp")).Run()
		},
	}
}
