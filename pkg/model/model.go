// Package model defines the JSON documents returned by the beacon.
package model

// Concept is a search hit.
type Concept struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	Categories  []string `json:"categories"`
	Description *string  `json:"description"`
}

// ConceptDetail is a tag=value property of a concept.
type ConceptDetail struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// ConceptWithDetails is the full record of a single concept.
type ConceptWithDetails struct {
	ID           string          `json:"id"`
	URI          *string         `json:"uri"`
	Name         *string         `json:"name"`
	Symbol       *string         `json:"symbol"`
	Categories   []string        `json:"categories"`
	Synonyms     []string        `json:"synonyms"`
	ExactMatches []string        `json:"exact_matches"`
	Description  *string         `json:"description"`
	Details      []ConceptDetail `json:"details"`
}

// ExactMatch lists the identifiers equivalent to ID.
type ExactMatch struct {
	ID              string   `json:"id"`
	WithinDomain    bool     `json:"within_domain"`
	HasExactMatches []string `json:"has_exact_matches"`
}

// StatementConcept is the subject or object of a statement.
type StatementConcept struct {
	ID         string   `json:"id"`
	Name       *string  `json:"name"`
	Categories []string `json:"categories"`
}

// StatementPredicate is the edge of a statement.
type StatementPredicate struct {
	EdgeLabel string `json:"edge_label"`
	Relation  string `json:"relation"`
	Negated   bool   `json:"negated"`
}

// Statement is a subject-predicate-object assertion.
type Statement struct {
	ID        string             `json:"id"`
	Subject   StatementConcept   `json:"subject"`
	Predicate StatementPredicate `json:"predicate"`
	Object    StatementConcept   `json:"object"`
}

// Annotation is a tag=value property of a statement.
type Annotation struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Citation is a publication supporting a statement.
type Citation struct {
	ID           string  `json:"id"`
	URI          string  `json:"uri"`
	Name         *string `json:"name"`
	EvidenceType string  `json:"evidence_type"`
	Date         *string `json:"date"`
}

// StatementWithDetails carries provenance and evidence for a statement.
type StatementWithDetails struct {
	ID          string       `json:"id"`
	IsDefinedBy string       `json:"is_defined_by"`
	ProvidedBy  string       `json:"provided_by"`
	Qualifiers  []string     `json:"qualifiers"`
	Annotation  []Annotation `json:"annotation"`
	Evidence    []Citation   `json:"evidence"`
}

// ConceptCategory reports how many concepts of a category are known.
// Frequency is -1 when the count is unknown.
type ConceptCategory struct {
	Category      string `json:"category"`
	LocalCategory string `json:"local_category"`
	Description   string `json:"description"`
	Frequency     int    `json:"frequency"`
}

// Predicate reports how many statements use an edge.
type Predicate struct {
	EdgeLabel   string `json:"edge_label"`
	Relation    string `json:"relation"`
	Description string `json:"description"`
	Frequency   int    `json:"frequency"`
}

// KnowledgeMapConcept is one end of a knowledge map entry.
type KnowledgeMapConcept struct {
	Category string   `json:"category"`
	Prefixes []string `json:"prefixes"`
}

// KnowledgeMapStatement summarises one kind of statement.
type KnowledgeMapStatement struct {
	Subject   KnowledgeMapConcept `json:"subject"`
	Predicate StatementPredicate  `json:"predicate"`
	Object    KnowledgeMapConcept `json:"object"`
	Frequency int                 `json:"frequency"`
}

// Nullable returns nil for the empty string and &s otherwise.
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
