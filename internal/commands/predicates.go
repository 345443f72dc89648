package commands

import (
	"fmt"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/registry"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newPredicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predicates [name]",
		Short: "List the predicates the beacon can answer, or show one predicate's pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				p, ok := registry.Lookup(args[0])
				if !ok {
					return errors.InvalidInputf("unknown predicate %q", args[0])
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), p.PatternWithCitations())
				return err
			}

			data := pterm.TableData{{"Name", "Subject", "Edge label", "Relation", "Object", "Citations"}}
			for _, p := range registry.All() {
				citations := "no"
				if p.Citable() {
					citations = "yes"
				}
				data = append(data, []string{
					p.Name(),
					p.Domain().String(),
					p.EdgeLabel(),
					p.Relation(),
					p.Codomain().String(),
					citations,
				})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}
}
