package registry

import "strings"

// Category is a Biolink concept category served by the beacon.
type Category string

const (
	ChemicalSubstance Category = "chemical substance"
	Protein           Category = "protein"
	MolecularActivity Category = "molecular activity"
)

var categoryPrefixes = map[Category][]string{
	ChemicalSubstance: {"CHEBI", "GENERIC", "POLYMER"},
	Protein:           {"EC"},
	MolecularActivity: {"RHEA"},
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{ChemicalSubstance, Protein, MolecularActivity}
}

// String returns the Biolink label.
func (c Category) String() string {
	return string(c)
}

// Prefixes returns the CURIE prefixes whose identifiers belong to c.
func (c Category) Prefixes() []string {
	return append([]string(nil), categoryPrefixes[c]...)
}

// CategoryOf classifies curie by its prefix. It returns "" when the prefix is
// unknown or curie has no prefix.
func CategoryOf(curie string) Category {
	prefix, _, ok := strings.Cut(curie, ":")
	if !ok {
		return ""
	}
	prefix = strings.ToUpper(prefix)
	for _, c := range Categories() {
		for _, p := range categoryPrefixes[c] {
			if p == prefix {
				return c
			}
		}
	}
	return ""
}
