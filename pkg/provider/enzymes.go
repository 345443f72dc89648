// Package provider wraps the beacon's data sources: the Rhea SPARQL endpoint,
// the flat-file reference tables and PubMed.
package provider

import (
	"strings"
	"sync"

	"github.com/NCATS-Tangerine/rhea-beacon/internal/manager"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/search"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/tabular"
)

// TableSource supplies loaded datasets by name.
type TableSource interface {
	GetTable(name string) (*tabular.Table, error)
}

// Enzyme is a row of the enzyme nomenclature table.
type Enzyme struct {
	// ID is the bare EC number, e.g. "1.1.1.1".
	ID       string
	Name     string
	Synonyms []string
}

// Curie returns the EC CURIE of e.
func (e Enzyme) Curie() string {
	return "EC:" + e.ID
}

// Enzymes looks up enzyme names (columns ID, Name, Synonyms).
type Enzymes struct {
	source TableSource

	mu      sync.Mutex
	indexed *tabular.Table
	byID    map[string]int
}

// NewEnzymes creates a new Enzymes provider.
func NewEnzymes(source TableSource) *Enzymes {
	return &Enzymes{source: source}
}

// ECNumber strips the EC prefix from curie, case-insensitively.
func ECNumber(curie string) string {
	curie = strings.TrimSpace(curie)
	if len(curie) >= 3 && strings.EqualFold(curie[:3], "EC:") {
		return curie[3:]
	}
	return curie
}

func (e *Enzymes) table() (*tabular.Table, map[string]int, error) {
	t, err := e.source.GetTable(manager.DatasetEnzymes)
	if err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.indexed != t {
		e.byID = make(map[string]int, t.Len())
		for i, r := range t.Rows {
			if _, dup := e.byID[r["ID"]]; !dup {
				e.byID[r["ID"]] = i
			}
		}
		e.indexed = t
	}
	return t, e.byID, nil
}

// Get returns the enzyme for an EC CURIE or bare EC number.
func (e *Enzymes) Get(curie string) (Enzyme, bool, error) {
	t, idx, err := e.table()
	if err != nil {
		return Enzyme{}, false, err
	}
	i, ok := idx[ECNumber(curie)]
	if !ok {
		return Enzyme{}, false, nil
	}
	return enzymeFromRow(t.Rows[i]), true, nil
}

// Name returns the enzyme name, or "" when unknown or the table is unavailable.
func (e *Enzymes) Name(curie string) string {
	enz, ok, err := e.Get(curie)
	if err != nil || !ok {
		return ""
	}
	return enz.Name
}

// Find ranks enzymes by keyword occurrences in Name and Synonyms.
func (e *Enzymes) Find(keywords []string, offset, size int) ([]Enzyme, int, error) {
	t, _, err := e.table()
	if err != nil {
		return nil, 0, err
	}
	res := search.Rank(t, search.Query{
		Columns:      []string{"Name", "Synonyms"},
		Keywords:     keywords,
		UniqueColumn: "ID",
		Offset:       offset,
		Size:         size,
	})
	out := make([]Enzyme, len(res.Rows))
	for i, r := range res.Rows {
		out[i] = enzymeFromRow(r)
	}
	return out, res.Total, nil
}

func enzymeFromRow(r tabular.Row) Enzyme {
	return Enzyme{
		ID:       r["ID"],
		Name:     r["Name"],
		Synonyms: splitList(r["Synonyms"], ";"),
	}
}

func splitList(s, sep string) []string {
	out := []string{}
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
