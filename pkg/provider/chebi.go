package provider

import (
	"strings"
	"sync"

	"github.com/NCATS-Tangerine/rhea-beacon/internal/manager"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/search"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/tabular"
)

// ChebiNameColumns are the columns of the headerless CHEBI names file.
var ChebiNameColumns = []string{"id", "name"}

// Compound is a CHEBI compound known to Rhea.
type Compound struct {
	ID   string
	Name string
}

// CompoundInfo holds the optional CHEBI compounds table entry for an id.
type CompoundInfo struct {
	ChebiName  string
	Definition string
	// Details are the remaining non-empty bookkeeping columns, tag to value.
	Details map[string]string
}

// compoundDetailColumns are reported as concept details, lower-cased.
var compoundDetailColumns = []string{"CREATED_BY", "MODIFIED_ON", "PARENT_ID", "SOURCE", "STAR", "STATUS"}

// Chebi looks up compound names and, when available, CHEBI definitions.
type Chebi struct {
	source TableSource

	mu       sync.Mutex
	indexed  *tabular.Table
	byAccess map[string]int
}

// NewChebi creates a new Chebi provider.
func NewChebi(source TableSource) *Chebi {
	return &Chebi{source: source}
}

// Find ranks compounds by keyword occurrences in their name.
func (c *Chebi) Find(keywords []string, offset, size int) ([]Compound, int, error) {
	t, err := c.source.GetTable(manager.DatasetChebi)
	if err != nil {
		return nil, 0, err
	}
	res := search.Rank(t, search.Query{
		Columns:      []string{"name"},
		Keywords:     keywords,
		UniqueColumn: "id",
		Offset:       offset,
		Size:         size,
	})
	out := make([]Compound, len(res.Rows))
	for i, r := range res.Rows {
		out[i] = Compound{ID: r["id"], Name: r["name"]}
	}
	return out, res.Total, nil
}

// Info returns the compounds table entry for id. ok is false when the id is
// unknown or the compounds table is not installed.
func (c *Chebi) Info(id string) (CompoundInfo, bool) {
	t, err := c.source.GetTable(manager.DatasetChebiCompounds)
	if err != nil {
		return CompoundInfo{}, false
	}

	c.mu.Lock()
	if c.indexed != t {
		c.byAccess = make(map[string]int, t.Len())
		for i, r := range t.Rows {
			key := strings.ToUpper(r["CHEBI_ACCESSION"])
			if _, dup := c.byAccess[key]; !dup {
				c.byAccess[key] = i
			}
		}
		c.indexed = t
	}
	i, ok := c.byAccess[strings.ToUpper(strings.TrimSpace(id))]
	c.mu.Unlock()
	if !ok {
		return CompoundInfo{}, false
	}

	r := t.Rows[i]
	info := CompoundInfo{
		ChebiName:  r["NAME"],
		Definition: r["DEFINITION"],
		Details:    make(map[string]string),
	}
	for _, col := range compoundDetailColumns {
		if v := r[col]; v != "" && !strings.EqualFold(v, "null") {
			info.Details[strings.ToLower(col)] = v
		}
	}
	return info, true
}
