package model

import (
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
)

// StatementIDSeparator joins the parts of a statement identifier.
const StatementIDSeparator = "|"

// StatementID identifies a statement by its endpoints and edge.
type StatementID struct {
	SubjectID string
	EdgeLabel string
	Relation  string
	ObjectID  string
}

// String renders the identifier as subject|edge_label|relation|object.
func (id StatementID) String() string {
	return strings.Join([]string{id.SubjectID, id.EdgeLabel, id.Relation, id.ObjectID}, StatementIDSeparator)
}

// NewStatementID renders the identifier of a statement.
func NewStatementID(subjectID, edgeLabel, relation, objectID string) string {
	return StatementID{subjectID, edgeLabel, relation, objectID}.String()
}

// ParseStatementID splits s into its four parts. Anything else is not a
// statement this beacon issued, so it is reported as not found.
func ParseStatementID(s string) (StatementID, error) {
	parts := strings.Split(s, StatementIDSeparator)
	if len(parts) != 4 {
		return StatementID{}, errors.NotFoundf("statement %q", s)
	}
	for _, p := range parts {
		if p == "" {
			return StatementID{}, errors.NotFoundf("statement %q", s)
		}
	}
	return StatementID{
		SubjectID: parts[0],
		EdgeLabel: parts[1],
		Relation:  parts[2],
		ObjectID:  parts[3],
	}, nil
}
