package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/registry"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/sparql"
)

// Reaction is an approved Rhea reaction.
type Reaction struct {
	Accession string
	Equation  string
	URI       string
}

// CompoundRecord is a reaction participant as seen by the endpoint.
type CompoundRecord struct {
	Accession string
	Name      string
	// Chebi is the CHEBI IRI, empty for generic compounds and polymers.
	Chebi         string
	ReactionCount int
}

// Counts are the sizes of the Rhea graph. -1 means the endpoint returned
// something that is not a number.
type Counts struct {
	Reactions    int
	Participants int
	Compounds    int
	Enzymes      int
}

// Rhea runs the beacon's fixed queries against the Rhea endpoint.
type Rhea struct {
	q sparql.Querier
}

// NewRhea creates a new Rhea provider.
func NewRhea(q sparql.Querier) *Rhea {
	return &Rhea{q: q}
}

// Records executes an arbitrary query.
func (r *Rhea) Records(ctx context.Context, query string) ([]sparql.Binding, error) {
	return r.q.Records(ctx, query)
}

// Reaction looks up a reaction by RHEA CURIE.
func (r *Rhea) Reaction(ctx context.Context, curie string) (Reaction, bool, error) {
	curie = strings.ToUpper(strings.TrimSpace(curie))
	q := fmt.Sprintf(`%s
SELECT ?equation ?reaction
WHERE {
    ?reaction rh:accession "%s" .
    ?reaction rh:equation ?equation .
}
LIMIT 1
`, sparql.PrefixRhea, sparql.EscapeLiteral(curie))

	records, err := r.q.Records(ctx, q)
	if err != nil {
		return Reaction{}, false, err
	}
	if len(records) == 0 {
		return Reaction{}, false, nil
	}
	return Reaction{
		Accession: curie,
		Equation:  records[0].Value("equation"),
		URI:       records[0].Value("reaction"),
	}, true, nil
}

// Compound looks up a reaction participant by accession and counts the
// approved reactions it takes part in.
func (r *Rhea) Compound(ctx context.Context, curie string) (CompoundRecord, bool, error) {
	curie = strings.ToUpper(strings.TrimSpace(curie))
	q := fmt.Sprintf(`%s
SELECT ?chebi (count(distinct ?reaction) as ?reactionCount) ?compoundName
WHERE {
    ?reaction rdfs:subClassOf rh:Reaction .
    ?reaction rh:status rh:Approved .
    ?reaction rh:side ?reactionSide .
    ?reactionSide rh:contains ?participant .
    ?participant rh:compound ?compound .
    OPTIONAL { ?compound rh:chebi ?chebi . }
    ?compound rh:name ?compoundName .
    ?compound rh:accession "%s" .
}
GROUP BY ?chebi ?compoundName
LIMIT 1
`, sparql.PrefixRhea, sparql.EscapeLiteral(curie))

	records, err := r.q.Records(ctx, q)
	if err != nil {
		return CompoundRecord{}, false, err
	}
	if len(records) == 0 {
		return CompoundRecord{}, false, nil
	}
	rec := records[0]
	return CompoundRecord{
		Accession:     curie,
		Name:          rec.Value("compoundName"),
		Chebi:         rec.Value("chebi"),
		ReactionCount: ParseCount(rec.Value("reactionCount")),
	}, true, nil
}

const countsQuery = `SELECT
(count(distinct ?reaction) as ?reactionCount)
(count(distinct ?participant) as ?participantCount)
(count(distinct ?compound) as ?compoundCount)
(count(distinct ?enzyme) as ?enzymeCount)
WHERE {
    ?reaction rdfs:subClassOf rh:Reaction .
    ?reaction rh:status rh:Approved .
    OPTIONAL { ?reaction rh:ec ?enzyme . }
    ?reaction rh:side ?reactionSide .
    ?reactionSide rh:contains ?participant .
    ?participant rh:compound ?compound .
}
`

// Counts returns the number of approved reactions, their participants,
// compounds and enzymes.
func (r *Rhea) Counts(ctx context.Context) (Counts, error) {
	records, err := r.q.Records(ctx, sparql.PrefixRhea+"\n"+countsQuery)
	if err != nil {
		return Counts{}, err
	}
	if len(records) == 0 {
		return Counts{-1, -1, -1, -1}, nil
	}
	rec := records[0]
	return Counts{
		Reactions:    ParseCount(rec.Value("reactionCount")),
		Participants: ParseCount(rec.Value("participantCount")),
		Compounds:    ParseCount(rec.Value("compoundCount")),
		Enzymes:      ParseCount(rec.Value("enzymeCount")),
	}, nil
}

// StatementCount returns the number of distinct subjects of p.
func (r *Rhea) StatementCount(ctx context.Context, p registry.Predicate) (int, error) {
	records, err := r.q.Records(ctx, registry.CountQuery(p))
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return -1, nil
	}
	return ParseCount(records[0].Value("statementCount")), nil
}

// ParseCount parses an integer literal, returning -1 when it is not one.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n
}
