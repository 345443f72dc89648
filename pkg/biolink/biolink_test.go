package biolink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModel(t *testing.T) {
	m := Default()
	require.NotNil(t, m)
	assert.Same(t, m, Default())

	for _, c := range []string{"chemical substance", "protein", "molecular activity"} {
		assert.NotEmpty(t, m.ClassDescription(c), c)
	}
	for _, s := range []string{
		"related_to",
		"molecularly_interacts_with",
		"derives_into",
		"increases_synthesis_of",
		"increases_degradation_of",
		"participates_in",
		"increases_activity_of",
	} {
		assert.NotEmpty(t, m.SlotDescription(s), s)
	}
}

func TestAncestors(t *testing.T) {
	m := Default()

	assert.Equal(t, []string{
		"protein",
		"gene product",
		"gene or gene product",
		"macromolecular machine",
		"genomic entity",
		"molecular entity",
		"biological entity",
		"named thing",
	}, m.Ancestors("protein"))

	anc := m.Ancestors("molecular activity")
	assert.Contains(t, anc, "occurrent")
	assert.Contains(t, anc, "named thing")
	assert.Equal(t, "molecular activity", anc[0])

	assert.Equal(t, []string{"unknown thing"}, m.Ancestors("unknown thing"))
}

func TestIsA(t *testing.T) {
	m := Default()
	assert.True(t, m.IsA("chemical substance", "chemical substance"))
	assert.True(t, m.IsA("chemical substance", "Molecular Entity"))
	assert.True(t, m.IsA("chemical substance", "named_thing"))
	assert.False(t, m.IsA("chemical substance", "protein"))
	assert.False(t, m.IsA("protein", "occurrent"))
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load([]byte("classes: [unterminated"))
	assert.Error(t, err)
}

func TestLookupNormalisation(t *testing.T) {
	m := Default()
	_, ok := m.Class("Chemical_Substance")
	assert.True(t, ok)
	_, ok = m.Slot("Derives Into")
	assert.True(t, ok)
	_, ok = m.Slot("treats")
	assert.False(t, ok)
}
