package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeRegex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"glucose", "glucose"},
		{"n.a", `n\\.a`},
		{"nad(+)", `nad\\(\\+\\)`},
		{"a|b", `a\\|b`},
		{"[x]{2}", `\\[x\\]\\{2\\}`},
		{`back\slash`, `back\\\\slash`},
		{`say "hi"`, `say \"hi\"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeRegex(tt.in), tt.in)
	}
}

func TestSubstringFilter(t *testing.T) {
	assert.Equal(t, "", SubstringFilter("subjectName", nil))
	assert.Equal(t, "", SubstringFilter("subjectName", []string{"", "  "}))

	got := SubstringFilter("subjectName", []string{"Glucose", "NAD(+)"})
	assert.Equal(t,
		`FILTER ( regex(lcase(str(?subjectName)), "glucose") || regex(lcase(str(?subjectName)), "nad\\(\\+\\)") ) .`,
		got)
}

func TestLimitOffset(t *testing.T) {
	assert.Equal(t, "", Limit(0))
	assert.Equal(t, "LIMIT 10", Limit(10))
	assert.Equal(t, "", Offset(-1))
	assert.Equal(t, "OFFSET 20", Offset(20))
}

func TestEscapeLiteral(t *testing.T) {
	assert.Equal(t, `CHEBI:\"15377\"`, EscapeLiteral(`CHEBI:"15377"`))
}

func TestBindingLookup(t *testing.T) {
	b := Binding{"subjectId": {Type: "literal", Value: "CHEBI:15377"}}
	v, ok := b.Lookup("subjectId")
	assert.True(t, ok)
	assert.Equal(t, "CHEBI:15377", v)

	_, ok = b.Lookup("objectId")
	assert.False(t, ok)
	assert.Equal(t, "", b.Value("objectId"))
}
