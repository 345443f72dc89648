package model

import (
	"encoding/json"
	"testing"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementIDRoundTrip(t *testing.T) {
	id := NewStatementID("EC:1.1.1.1", "increases_activity_of", "increases_activity_of", "RHEA:10000")
	assert.Equal(t, "EC:1.1.1.1|increases_activity_of|increases_activity_of|RHEA:10000", id)

	parsed, err := ParseStatementID(id)
	require.NoError(t, err)
	assert.Equal(t, StatementID{
		SubjectID: "EC:1.1.1.1",
		EdgeLabel: "increases_activity_of",
		Relation:  "increases_activity_of",
		ObjectID:  "RHEA:10000",
	}, parsed)
	assert.Equal(t, id, parsed.String())

	// relations with spaces survive
	id = NewStatementID("CHEBI:1", "related_to", "has same catalyst", "CHEBI:2")
	parsed, err = ParseStatementID(id)
	require.NoError(t, err)
	assert.Equal(t, "has same catalyst", parsed.Relation)
}

func TestParseStatementIDInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"CHEBI:1",
		"CHEBI:1|derives_into|CHEBI:2",
		"a|b|c|d|e",
		"a||c|d",
	} {
		_, err := ParseStatementID(s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, errors.ErrNotFound), s)
	}
}

func TestNullFieldsSerialise(t *testing.T) {
	c := Citation{
		ID:           "PUBMED:123",
		URI:          "http://rdf.ncbi.nlm.nih.gov/pubmed/123",
		Name:         Nullable(""),
		EvidenceType: "ECO:0000312",
		Date:         Nullable("2001 Jan"),
	}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"PUBMED:123","uri":"http://rdf.ncbi.nlm.nih.gov/pubmed/123","name":null,"evidence_type":"ECO:0000312","date":"2001 Jan"}`, string(b))
}
