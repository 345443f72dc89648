// Package search ranks rows of a tabular dataset against keywords.
package search

import (
	"sort"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/tabular"
)

// Query describes a ranked keyword search over a table.
type Query struct {
	// Columns are searched for keywords.
	Columns  []string
	Keywords []string
	// Multipliers weight matches per column; absent columns weigh 1.
	Multipliers map[string]int
	// UniqueColumn, when set, keeps only the best row per value.
	UniqueColumn string
	Offset       int
	// Size <= 0 returns all remaining rows.
	Size int
}

// Result is one page of ranked rows.
type Result struct {
	Rows []tabular.Row
	// Total counts matching rows after de-duplication, before paging.
	Total int
}

type scored struct {
	row   tabular.Row
	score int
}

// Rank returns the rows of t matching any keyword in any column, best first.
// Without keywords every row matches in table order.
func Rank(t *tabular.Table, q Query) Result {
	var keywords []string
	for _, k := range q.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}

	var hits []scored
	if t != nil {
		for _, row := range t.Rows {
			if len(keywords) == 0 {
				hits = append(hits, scored{row: row})
				continue
			}
			if s, ok := score(row, q.Columns, keywords, q.Multipliers); ok {
				hits = append(hits, scored{row: row, score: s})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	rows := make([]tabular.Row, 0, len(hits))
	seen := make(map[string]bool)
	for _, h := range hits {
		if q.UniqueColumn != "" {
			key := h.row[q.UniqueColumn]
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		rows = append(rows, h.row)
	}

	total := len(rows)
	return Result{Rows: Page(rows, q.Offset, q.Size), Total: total}
}

// score sums keyword occurrences across columns. ok is false when no keyword
// occurs at all.
func score(row tabular.Row, columns, keywords []string, multipliers map[string]int) (int, bool) {
	total := 0
	matched := false
	for _, col := range columns {
		value := strings.ToLower(row[col])
		if value == "" {
			continue
		}
		m := 1
		if w, ok := multipliers[col]; ok {
			m = w
		}
		for _, k := range keywords {
			if n := strings.Count(value, k); n > 0 {
				matched = true
				total += n * m
			}
		}
	}
	return total, matched
}

// Page slices items to the window [offset, offset+size). size <= 0 means no
// upper bound.
func Page[T any](items []T, offset, size int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if size > 0 && size < len(items) {
		items = items[:size]
	}
	return items
}
