// Package commands implements the rhea-beacon command line.
package commands

import (
	"github.com/NCATS-Tangerine/rhea-beacon/internal/config"
	"github.com/NCATS-Tangerine/rhea-beacon/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "rhea-beacon",
		Short: "Knowledge beacon over the Rhea reaction database",
		Long: `rhea-beacon serves enzymes, reactions and compounds from the Rhea SPARQL
endpoint as knowledge beacon concepts and statements.

Examples:
  rhea-beacon serve                               # REST API on :8080
  rhea-beacon mcp                                 # MCP tools on stdio
  rhea-beacon predicates                          # list the predicates
  rhea-beacon query --edge-label participates_in  # print the SPARQL for a filter`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: beacon.yaml in ., ~/.rhea-beacon or /etc/rhea-beacon)")

	root.AddCommand(
		newServeCmd(a, version),
		newMCPCmd(a, version),
		newPredicatesCmd(),
		newQueryCmd(),
	)
	return root
}
