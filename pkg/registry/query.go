package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/sparql"
)

// statementVars are projected by every statement query.
var statementVars = []string{"?subjectId", "?subjectName", "?objectId", "?objectName", "?edge_label", "?relation"}

// ecLocalID accepts EC local parts that are valid SPARQL prefixed-name
// locals: no leading '-' or '.', no trailing '.'.
var ecLocalID = regexp.MustCompile(`^[0-9A-Za-z]([0-9A-Za-z.\-]*[0-9A-Za-z\-])?$`)

// StatementQuery holds the filters for a composite statement query.
type StatementQuery struct {
	EdgeLabel         string
	Relation          string
	SubjectIDs        []string
	SubjectKeywords   []string
	SubjectCategories []string
	ObjectIDs         []string
	ObjectKeywords    []string
	ObjectCategories  []string
	Offset            int
	Size              int
	// Citations adds a ?citations column holding the "|"-joined citation
	// IRIs of each statement.
	Citations bool
}

// Filter returns the predicate filter part of q.
func (q StatementQuery) Filter() Filter {
	return Filter{
		EdgeLabel:         q.EdgeLabel,
		Relation:          q.Relation,
		SubjectCategories: q.SubjectCategories,
		ObjectCategories:  q.ObjectCategories,
	}
}

// BuildStatementQuery renders the UNION of all predicates matching q. It
// returns false when no predicate matches, in which case nothing can be
// returned and no query should be sent.
func BuildStatementQuery(q StatementQuery) (string, bool) {
	matched := Match(q.Filter())
	if len(matched) == 0 {
		return "", false
	}

	patterns := make([]string, len(matched))
	for i, p := range matched {
		if q.Citations {
			patterns[i] = p.PatternWithCitations()
		} else {
			patterns[i] = p.Pattern()
		}
	}

	var b strings.Builder
	b.WriteString(sparql.PrefixRhea + "\n")
	b.WriteString(sparql.PrefixEnzyme + "\n")
	b.WriteString("SELECT " + strings.Join(statementVars, " "))
	if q.Citations {
		b.WriteString(` (GROUP_CONCAT(?citation; SEPARATOR="|") AS ?citations)`)
	}
	b.WriteString("\nWHERE {\n")
	b.WriteString(strings.Join(patterns, "\nUNION\n"))
	b.WriteByte('\n')
	writeLine(&b, IDFilter("subjectId", q.SubjectIDs))
	writeLine(&b, IDFilter("objectId", q.ObjectIDs))
	writeLine(&b, sparql.SubstringFilter("subjectName", q.SubjectKeywords))
	writeLine(&b, sparql.SubstringFilter("objectName", q.ObjectKeywords))
	b.WriteString("}\n")
	if q.Citations {
		writeLine(&b, "GROUP BY "+strings.Join(statementVars, " "))
	}
	writeLine(&b, sparql.Offset(q.Offset))
	writeLine(&b, sparql.Limit(q.Size))
	return b.String(), true
}

func writeLine(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	b.WriteString(s)
	b.WriteByte('\n')
}

// IDFilter renders a FILTER requiring ?variable to equal one of curies.
// Enzyme numbers are IRIs on the endpoint and are written as prefixed names;
// everything else is an accession literal. It returns "" for no curies.
func IDFilter(variable string, curies []string) string {
	var disjuncts []string
	for _, c := range curies {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if prefix, local, ok := strings.Cut(c, ":"); ok && prefix == "EC" && ecLocalID.MatchString(local) {
			disjuncts = append(disjuncts, fmt.Sprintf("(?%s = %s)", variable, c))
		} else {
			disjuncts = append(disjuncts, fmt.Sprintf(`(?%s = "%s")`, variable, sparql.EscapeLiteral(c)))
		}
	}
	if len(disjuncts) == 0 {
		return ""
	}
	return fmt.Sprintf("FILTER (%s) .", strings.Join(disjuncts, " || "))
}

// CountQuery counts the distinct subjects of p.
func CountQuery(p Predicate) string {
	return sparql.PrefixRhea + "\n" +
		sparql.PrefixEnzyme + "\n" +
		"SELECT (count(distinct ?subjectId) as ?statementCount)\n" +
		"WHERE {\n" + p.Pattern() + "\n}\n"
}
