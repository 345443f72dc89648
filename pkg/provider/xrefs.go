package provider

import (
	"sort"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/internal/manager"
)

const keggReactionDB = "KEGG_REACTION"

// Xrefs resolves exact matches from the Rhea cross-reference table
// (columns RHEA_ID, DIRECTION, MASTER_ID, ID, DB). EC rows are ignored: an
// enzyme catalyses a reaction, it is not the same thing.
type Xrefs struct {
	source TableSource
}

// NewXrefs creates a new Xrefs provider.
func NewXrefs(source TableSource) *Xrefs {
	return &Xrefs{source: source}
}

// ExactMatches returns the sorted CURIEs equivalent to curie, including the
// Rhea ids involved. An empty result means the identifier is unknown.
func (x *Xrefs) ExactMatches(curie string) ([]string, error) {
	prefix, local, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(curie)), ":")
	if !ok {
		return []string{}, nil
	}

	t, err := x.source.GetTable(manager.DatasetXrefs)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	addRhea := func(id string) {
		if id != "" {
			set["RHEA:"+id] = true
		}
	}

	rheaMatches := func(rheaID string) {
		for _, r := range t.Rows {
			if r["DB"] == "EC" {
				continue
			}
			if r["RHEA_ID"] != rheaID && r["MASTER_ID"] != rheaID {
				continue
			}
			if r["DB"] == keggReactionDB {
				set["KEGG:"+r["ID"]] = true
				set["KEGG.REACTION:"+r["ID"]] = true
			} else if r["DB"] != "" {
				set[r["DB"]+":"+r["ID"]] = true
			}
			addRhea(r["RHEA_ID"])
			addRhea(r["MASTER_ID"])
		}
	}

	if prefix == "RHEA" {
		rheaMatches(local)
	} else {
		db := prefix
		if prefix == "KEGG" || prefix == "KEGG.REACTION" {
			db = keggReactionDB
		}
		var hits []string
		for _, r := range t.Rows {
			if r["DB"] == db && db != "EC" && strings.EqualFold(r["ID"], local) {
				hits = append(hits, r["RHEA_ID"])
				addRhea(r["RHEA_ID"])
				addRhea(r["MASTER_ID"])
			}
		}
		for _, id := range hits {
			rheaMatches(id)
		}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
