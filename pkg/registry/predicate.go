package registry

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultEdgeLabel is used by predicates that have no Biolink slot of their own.
const DefaultEdgeLabel = "related_to"

// reactionVar matches the ?reaction variable but not ?reaction1 or ?reactionSide.
var reactionVar = regexp.MustCompile(`\?reaction\b`)

// Predicate is one kind of edge the beacon can produce. It owns the SPARQL
// graph pattern binding ?subjectId, ?subjectName, ?objectId and ?objectName.
// Predicates are immutable.
type Predicate struct {
	name      string
	domain    Category
	codomain  Category
	edgeLabel string
	relation  string
	fragment  string
	citable   bool
}

func newPredicate(name string, domain, codomain Category, edgeLabel, relation, fragment string) Predicate {
	if edgeLabel == "" {
		edgeLabel = DefaultEdgeLabel
	}
	if relation == "" {
		relation = edgeLabel
	}
	return Predicate{
		name:      name,
		domain:    domain,
		codomain:  codomain,
		edgeLabel: edgeLabel,
		relation:  relation,
		fragment:  fragment,
		citable:   reactionVar.MatchString(fragment),
	}
}

func (p Predicate) Name() string       { return p.name }
func (p Predicate) Domain() Category   { return p.domain }
func (p Predicate) Codomain() Category { return p.codomain }
func (p Predicate) EdgeLabel() string  { return p.edgeLabel }
func (p Predicate) Relation() string   { return p.relation }

// Citable reports whether the pattern binds ?reaction, the only node that
// carries citations.
func (p Predicate) Citable() bool { return p.citable }

// Pattern returns the fragment as a group that also binds ?edge_label and
// ?relation.
func (p Predicate) Pattern() string {
	return p.group(false)
}

// PatternWithCitations is Pattern plus an optional ?citation binding. For
// predicates without ?reaction it equals Pattern.
func (p Predicate) PatternWithCitations() string {
	return p.group(p.citable)
}

func (p Predicate) group(citations bool) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, line := range strings.Split(p.fragment, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "    BIND(%q AS ?edge_label) .\n", p.edgeLabel)
	fmt.Fprintf(&b, "    BIND(%q AS ?relation) .\n", p.relation)
	if citations {
		b.WriteString("    OPTIONAL { ?reaction rh:citation ?citation } .\n")
	}
	b.WriteString("}")
	return b.String()
}

// Filter selects predicates. Empty strings and nil slices match anything; a
// non-nil empty slice matches nothing.
type Filter struct {
	EdgeLabel         string
	Relation          string
	SubjectCategories []string
	ObjectCategories  []string
}

// Matches reports whether p satisfies every constraint in f. Comparisons
// ignore case.
func (p Predicate) Matches(f Filter) bool {
	if f.EdgeLabel != "" && !strings.EqualFold(f.EdgeLabel, p.edgeLabel) {
		return false
	}
	if f.Relation != "" && !strings.EqualFold(f.Relation, p.relation) {
		return false
	}
	if f.SubjectCategories != nil && !containsFold(f.SubjectCategories, string(p.domain)) {
		return false
	}
	if f.ObjectCategories != nil && !containsFold(f.ObjectCategories, string(p.codomain)) {
		return false
	}
	return true
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

var predicates = []Predicate{
	newPredicate("molecularly_interacts_with", ChemicalSubstance, ChemicalSubstance,
		"molecularly_interacts_with", "participates in the same reaction side as", `
		?reaction rdfs:subClassOf rh:Reaction .
		?reaction rh:status rh:Approved .
		?reaction rh:side ?side .
		?side rh:contains ?p1 .
		?side rh:contains ?p2 .
		FILTER (?p1 != ?p2) .
		?p1 rh:compound ?c1 .
		?p2 rh:compound ?c2 .
		?c1 rh:name ?subjectName .
		?c1 rh:accession ?subjectId .
		?c2 rh:name ?objectName .
		?c2 rh:accession ?objectId .
	`),
	newPredicate("derives_into", ChemicalSubstance, ChemicalSubstance,
		"derives_into", "participates in the opposite reaction side as", `
		?reaction rdfs:subClassOf rh:Reaction .
		?reaction rh:status rh:Approved .
		?reaction rh:side ?side1 .
		?reaction rh:side ?side2 .
		?side1 rh:curatedOrder 1 .
		?side2 rh:curatedOrder 2 .
		?side1 rh:contains ?p1 .
		?side2 rh:contains ?p2 .
		?p1 rh:compound ?compound1 .
		?p2 rh:compound ?compound2 .
		?compound1 rh:accession ?subjectId .
		?compound1 rh:name ?subjectName .
		?compound2 rh:accession ?objectId .
		?compound2 rh:name ?objectName .
	`),
	newPredicate("increases_synthesis_of", Protein, ChemicalSubstance,
		"increases_synthesis_of", "probably increases synthesis (might increase degradation) of", `
		?reaction rdfs:subClassOf rh:Reaction .
		?reaction rh:status rh:Approved .
		?reaction rh:ec ?subjectId .
		?reaction rh:side ?side .
		?side rh:curatedOrder 2 .
		?side rh:contains ?p .
		?p rh:compound ?compound .
		?compound rh:name ?objectName .
		?compound rh:accession ?objectId .
	`),
	newPredicate("increases_degradation_of", Protein, ChemicalSubstance,
		"increases_degradation_of", "probably increases degradation (might increase synthesis) of", `
		?reaction rdfs:subClassOf rh:Reaction .
		?reaction rh:status rh:Approved .
		?reaction rh:ec ?subjectId .
		?reaction rh:side ?side .
		?side rh:curatedOrder 1 .
		?side rh:contains ?p .
		?p rh:compound ?compound .
		?compound rh:name ?objectName .
		?compound rh:accession ?objectId .
	`),
	newPredicate("participates_in", ChemicalSubstance, MolecularActivity,
		"participates_in", "", `
		?reaction rdfs:subClassOf rh:Reaction .
		?reaction rh:status rh:Approved .
		?reaction rh:side ?side .
		?side rh:contains ?participant .
		?participant rh:compound ?compound .
		?reaction rh:equation ?objectName .
		?reaction rh:accession ?objectId .
		?compound rh:name ?subjectName .
		?compound rh:accession ?subjectId .
	`),
	newPredicate("increases_activity_of", Protein, MolecularActivity,
		"increases_activity_of", "", `
		?reaction rdfs:subClassOf rh:Reaction .
		?reaction rh:status rh:Approved .
		?reaction rh:ec ?subjectId .
		?reaction rh:equation ?objectName .
		?reaction rh:accession ?objectId .
	`),
	newPredicate("catalyzes_same_reaction", Protein, Protein,
		"", "catalyzes same reaction as", `
		?reaction rdfs:subClassOf rh:Reaction .
		?reaction rh:status rh:Approved .
		?reaction rh:ec ?subjectId .
		?reaction rh:ec ?objectId .
		FILTER (?subjectId < ?objectId) .
	`),
	newPredicate("has_same_catalyst", MolecularActivity, MolecularActivity,
		"", "has same catalyst", `
		?reaction1 rdfs:subClassOf rh:Reaction .
		?reaction1 rh:status rh:Approved .
		?reaction2 rdfs:subClassOf rh:Reaction .
		?reaction2 rh:status rh:Approved .
		?reaction1 rh:ec ?enzyme .
		?reaction2 rh:ec ?enzyme .
		FILTER (?reaction1 < ?reaction2) .
		?reaction1 rh:accession ?subjectId .
		?reaction2 rh:accession ?objectId .
		?reaction1 rh:equation ?subjectName .
		?reaction2 rh:equation ?objectName .
	`),
}

// All returns every predicate in definition order.
func All() []Predicate {
	return append([]Predicate(nil), predicates...)
}

// Lookup finds a predicate by name.
func Lookup(name string) (Predicate, bool) {
	for _, p := range predicates {
		if p.name == name {
			return p, true
		}
	}
	return Predicate{}, false
}

// Match returns the predicates satisfying f, in definition order.
func Match(f Filter) []Predicate {
	var out []Predicate
	for _, p := range predicates {
		if p.Matches(f) {
			out = append(out, p)
		}
	}
	return out
}

// EdgeLabels returns the distinct edge labels in definition order.
func EdgeLabels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range predicates {
		if !seen[p.edgeLabel] {
			seen[p.edgeLabel] = true
			out = append(out, p.edgeLabel)
		}
	}
	return out
}
