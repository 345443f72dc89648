package search

import (
	"strings"
	"testing"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T, data string) *tabular.Table {
	t.Helper()
	tbl, err := tabular.Read(strings.NewReader(data), tabular.Options{})
	require.NoError(t, err)
	return tbl
}

func ids(rows []tabular.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["id"]
	}
	return out
}

const compounds = "id\tname\n" +
	"1\tfructose\n" +
	"2\tglucose\n" +
	"3\tglucose 6-phosphate\n" +
	"4\twater\n" +
	"5\tglucose-glucose\n"

func TestRankScoresAndOrder(t *testing.T) {
	tbl := table(t, compounds)

	res := Rank(tbl, Query{Columns: []string{"name"}, Keywords: []string{"Glucose"}})
	assert.Equal(t, 3, res.Total)
	// two occurrences first, ties keep table order
	assert.Equal(t, []string{"5", "2", "3"}, ids(res.Rows))
}

func TestRankGlucoseFructose(t *testing.T) {
	tbl := table(t, compounds)

	res := Rank(tbl, Query{Columns: []string{"name"}, Keywords: []string{"glucose", "fructose"}})
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, "5", res.Rows[0]["id"])
	assert.ElementsMatch(t, []string{"1", "2", "3", "5"}, ids(res.Rows))
	assert.NotContains(t, ids(res.Rows), "4")
}

func TestRankNoKeywords(t *testing.T) {
	tbl := table(t, compounds)

	res := Rank(tbl, Query{Columns: []string{"name"}, Keywords: []string{" ", ""}})
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(res.Rows))
}

func TestRankMultipliers(t *testing.T) {
	tbl := table(t, "id\tName\tSynonyms\n"+
		"a\tkinase\t\n"+
		"b\tphosphatase\tkinase inhibitor\n")

	res := Rank(tbl, Query{
		Columns:  []string{"Name", "Synonyms"},
		Keywords: []string{"kinase"},
	})
	assert.Equal(t, []string{"a", "b"}, ids(res.Rows))

	res = Rank(tbl, Query{
		Columns:     []string{"Name", "Synonyms"},
		Keywords:    []string{"kinase"},
		Multipliers: map[string]int{"Synonyms": 3},
	})
	assert.Equal(t, []string{"b", "a"}, ids(res.Rows))
}

func TestRankDedupeAndPaging(t *testing.T) {
	tbl := table(t, "id\tname\n"+
		"1\tNADH\n"+
		"1\tNADH NADH\n"+
		"2\tNAD(+)\n"+
		"3\tNADP(+)\n")

	res := Rank(tbl, Query{Columns: []string{"name"}, Keywords: []string{"nad"}, UniqueColumn: "id"})
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Rows, 3)
	// the best scoring duplicate wins
	assert.Equal(t, "NADH NADH", res.Rows[0]["name"])

	res = Rank(tbl, Query{Columns: []string{"name"}, Keywords: []string{"nad"}, UniqueColumn: "id", Offset: 1, Size: 1})
	assert.Equal(t, 3, res.Total, "total ignores paging")
	assert.Equal(t, []string{"2"}, ids(res.Rows))

	res = Rank(tbl, Query{Columns: []string{"name"}, Keywords: []string{"nad"}, UniqueColumn: "id", Offset: 10})
	assert.Equal(t, 3, res.Total)
	assert.Empty(t, res.Rows)
}

func TestRankRegexMetaIsLiteral(t *testing.T) {
	tbl := table(t, compounds+"6\tNAD(+)\n")
	res := Rank(tbl, Query{Columns: []string{"name"}, Keywords: []string{"(+)"}})
	assert.Equal(t, []string{"6"}, ids(res.Rows))
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4}
	assert.Equal(t, []int{1, 2, 3, 4}, Page(items, 0, 0))
	assert.Equal(t, []int{2, 3}, Page(items, 1, 2))
	assert.Equal(t, []int{4}, Page(items, 3, 10))
	assert.Equal(t, []int{}, Page(items, 4, 1))
	assert.Equal(t, []int{1}, Page(items, -3, 1))
}

func TestRankNilTable(t *testing.T) {
	res := Rank(nil, Query{Keywords: []string{"x"}})
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Rows)
}
