package commands

import (
	"fmt"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/registry"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var q registry.StatementQuery
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the SPARQL sent for a statement filter",
		Long: `Print the composite SPARQL query the beacon would send to the Rhea endpoint
for the given statement filter. Nothing is sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			query, ok := registry.BuildStatementQuery(q)
			if ok {
				_, err := fmt.Fprint(out, query)
				return err
			}

			fmt.Fprintln(out, "No predicate matches this filter; no query would be sent.")
			if q.EdgeLabel != "" {
				if s, found := registry.Suggest(q.EdgeLabel); found && s != q.EdgeLabel {
					fmt.Fprintf(out, "Did you mean --edge-label %s?\n", s)
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&q.SubjectIDs, "subject", "s", nil, "subject CURIEs")
	f.StringSliceVar(&q.SubjectKeywords, "subject-keyword", nil, "keywords matched against subject names")
	f.StringSliceVar(&q.SubjectCategories, "subject-category", nil, "subject categories")
	f.StringVar(&q.EdgeLabel, "edge-label", "", "edge label")
	f.StringVar(&q.Relation, "relation", "", "relation")
	f.StringSliceVarP(&q.ObjectIDs, "object", "t", nil, "object CURIEs")
	f.StringSliceVar(&q.ObjectKeywords, "object-keyword", nil, "keywords matched against object names")
	f.StringSliceVar(&q.ObjectCategories, "object-category", nil, "object categories")
	f.IntVar(&q.Offset, "offset", 0, "OFFSET")
	f.IntVar(&q.Size, "size", 0, "LIMIT; 0 for none")
	f.BoolVar(&q.Citations, "citations", false, "aggregate citations as for statement details")
	return cmd
}
