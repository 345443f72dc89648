package mcp

import (
	"context"
	"testing"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/model"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBeacon struct {
	conceptsReq   service.ConceptsRequest
	statementsReq service.StatementsRequest
	exactIDs      []string
}

func (f *fakeBeacon) GetConcepts(_ context.Context, req service.ConceptsRequest) ([]model.Concept, error) {
	f.conceptsReq = req
	return []model.Concept{{ID: "CHEBI:16236", Name: model.Nullable("ethanol"), Categories: []string{"chemical substance"}}}, nil
}

func (f *fakeBeacon) GetConceptDetails(_ context.Context, id string) (*model.ConceptWithDetails, error) {
	return nil, errors.NotFoundf("concept %q", id)
}

func (f *fakeBeacon) GetExactMatches(_ context.Context, ids []string) ([]model.ExactMatch, error) {
	f.exactIDs = ids
	return []model.ExactMatch{{ID: ids[0], WithinDomain: true, HasExactMatches: []string{"RHEA:10000"}}}, nil
}

func (f *fakeBeacon) GetStatements(_ context.Context, req service.StatementsRequest) ([]model.Statement, error) {
	f.statementsReq = req
	return []model.Statement{}, nil
}

func (f *fakeBeacon) GetStatementDetails(_ context.Context, id string, _ []string, _, _ int) (*model.StatementWithDetails, error) {
	return &model.StatementWithDetails{ID: id, Evidence: []model.Citation{}}, nil
}

func (f *fakeBeacon) GetPredicates(context.Context) ([]model.Predicate, error) {
	return []model.Predicate{{EdgeLabel: "participates_in", Relation: "participates_in", Frequency: 12}}, nil
}

func (f *fakeBeacon) GetKnowledgeMap(context.Context) ([]model.KnowledgeMapStatement, error) {
	return []model.KnowledgeMapStatement{{Frequency: 3}}, nil
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestSearchConcepts(t *testing.T) {
	fb := &fakeBeacon{}
	ms := NewMCPServer(fb, "test", nil)

	text, isErr := callTool(t, ms.handleSearchConcepts, map[string]any{
		"keywords":   "ethanol  alcohol",
		"categories": "chemical substance, protein",
		"size":       float64(5),
	})
	assert.False(t, isErr)
	assert.Contains(t, text, "CHEBI:16236")
	assert.Equal(t, []string{"ethanol", "alcohol"}, fb.conceptsReq.Keywords)
	assert.Equal(t, []string{"chemical substance", "protein"}, fb.conceptsReq.Categories)
	assert.Equal(t, 5, fb.conceptsReq.Size)

	_, isErr = callTool(t, ms.handleSearchConcepts, map[string]any{})
	assert.True(t, isErr)
}

func TestGetConceptDetailsError(t *testing.T) {
	ms := NewMCPServer(&fakeBeacon{}, "test", nil)

	text, isErr := callTool(t, ms.handleGetConceptDetails, map[string]any{"concept_id": "CHEBI:0"})
	assert.True(t, isErr)
	assert.Contains(t, text, "not found")
}

func TestGetStatementsHint(t *testing.T) {
	fb := &fakeBeacon{}
	ms := NewMCPServer(fb, "test", nil)

	text, isErr := callTool(t, ms.handleGetStatements, map[string]any{
		"edge_label": "participate_in",
		"object_ids": "RHEA:10000",
	})
	assert.False(t, isErr)
	assert.Contains(t, text, "No statements found.")
	assert.Contains(t, text, `Did you mean "participates_in"?`)
	assert.Equal(t, []string{"RHEA:10000"}, fb.statementsReq.ObjectIDs)
	assert.Equal(t, 10, fb.statementsReq.Size)
}

func TestGetExactMatches(t *testing.T) {
	fb := &fakeBeacon{}
	ms := NewMCPServer(fb, "test", nil)

	text, isErr := callTool(t, ms.handleGetExactMatches, map[string]any{"ids": "KEGG:R00001, ,"})
	assert.False(t, isErr)
	assert.Contains(t, text, "RHEA:10000")
	assert.Equal(t, []string{"KEGG:R00001"}, fb.exactIDs)

	_, isErr = callTool(t, ms.handleGetExactMatches, map[string]any{"ids": " "})
	assert.True(t, isErr)
}

func TestListPredicates(t *testing.T) {
	ms := NewMCPServer(&fakeBeacon{}, "test", nil)

	text, _ := callTool(t, ms.handleListPredicates, map[string]any{})
	assert.Contains(t, text, `"frequency": 12`)

	text, _ = callTool(t, ms.handleListPredicates, map[string]any{"edge_label": "derives_into"})
	assert.Contains(t, text, "is a known edge label")

	text, _ = callTool(t, ms.handleListPredicates, map[string]any{"edge_label": "derive_into"})
	assert.Contains(t, text, `Did you mean "derives_into"?`)
}

func TestKnowledgeMapResource(t *testing.T) {
	ms := NewMCPServer(&fakeBeacon{}, "test", nil)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = KnowledgeMapURI
	contents, err := ms.handleKnowledgeMap(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Contains(t, text.Text, `"frequency": 3`)
}
