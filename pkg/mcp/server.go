package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/model"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/registry"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// KnowledgeMapURI names the knowledge map resource.
const KnowledgeMapURI = "rhea://knowledge-map"

// Beacon is the subset of beacon operations exposed as tools.
type Beacon interface {
	GetConcepts(ctx context.Context, req service.ConceptsRequest) ([]model.Concept, error)
	GetConceptDetails(ctx context.Context, conceptID string) (*model.ConceptWithDetails, error)
	GetExactMatches(ctx context.Context, ids []string) ([]model.ExactMatch, error)
	GetStatements(ctx context.Context, req service.StatementsRequest) ([]model.Statement, error)
	GetStatementDetails(ctx context.Context, statementID string, keywords []string, offset, size int) (*model.StatementWithDetails, error)
	GetPredicates(ctx context.Context) ([]model.Predicate, error)
	GetKnowledgeMap(ctx context.Context) ([]model.KnowledgeMapStatement, error)
}

// MCPServer exposes the beacon to MCP clients.
type MCPServer struct {
	beacon Beacon
	srv    *server.MCPServer
	logger *zap.Logger
}

// NewMCPServer registers the beacon tools and resources.
func NewMCPServer(beacon Beacon, version string, logger *zap.Logger) *MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"Rhea-Beacon",
		version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
	)
	ms := &MCPServer{beacon: beacon, srv: s, logger: logger}

	// --- Resources ---

	s.AddResource(
		mcp.NewResource(
			KnowledgeMapURI,
			"Knowledge Map",
			mcp.WithResourceDescription("Kinds of statements served: subject category, predicate, object category and frequency"),
			mcp.WithMIMEType("application/json"),
		),
		ms.handleKnowledgeMap,
	)

	// --- Tools ---

	s.AddTool(
		mcp.NewTool(
			"search_concepts",
			mcp.WithDescription("Search enzymes (EC) and chemical substances (CHEBI) by keyword. Enzymes are listed first."),
			mcp.WithString("keywords", mcp.Required(), mcp.Description("Space separated keywords")),
			mcp.WithString("categories", mcp.Description("Comma separated Biolink categories, e.g. protein")),
			mcp.WithNumber("offset", mcp.Description("Number of results to skip")),
			mcp.WithNumber("size", mcp.Description("Max number of results (default 10)")),
		),
		ms.handleSearchConcepts,
	)

	s.AddTool(
		mcp.NewTool(
			"get_concept_details",
			mcp.WithDescription("Get the details of an enzyme (EC:), reaction (RHEA:) or compound (CHEBI:, GENERIC:, POLYMER:)."),
			mcp.WithString("concept_id", mcp.Required(), mcp.Description("The CURIE of the concept")),
		),
		ms.handleGetConceptDetails,
	)

	s.AddTool(
		mcp.NewTool(
			"get_statements",
			mcp.WithDescription("List statements relating enzymes, reactions and compounds. Empty fields act as wildcards."),
			mcp.WithString("subject_ids", mcp.Description("Comma separated subject CURIEs")),
			mcp.WithString("subject_keywords", mcp.Description("Space separated keywords matched against subject names")),
			mcp.WithString("subject_categories", mcp.Description("Comma separated subject categories")),
			mcp.WithString("edge_label", mcp.Description("Edge label, e.g. participates_in")),
			mcp.WithString("relation", mcp.Description("Relation")),
			mcp.WithString("object_ids", mcp.Description("Comma separated object CURIEs")),
			mcp.WithString("object_keywords", mcp.Description("Space separated keywords matched against object names")),
			mcp.WithString("object_categories", mcp.Description("Comma separated object categories")),
			mcp.WithNumber("offset", mcp.Description("Number of results to skip")),
			mcp.WithNumber("size", mcp.Description("Max number of results (default 10)")),
		),
		ms.handleGetStatements,
	)

	s.AddTool(
		mcp.NewTool(
			"get_statement_details",
			mcp.WithDescription("Get provenance and PubMed citations of a statement."),
			mcp.WithString("statement_id", mcp.Required(), mcp.Description("Statement id as returned by get_statements")),
			mcp.WithString("keywords", mcp.Description("Space separated keywords matched against citation titles")),
			mcp.WithNumber("offset", mcp.Description("Number of citations to skip")),
			mcp.WithNumber("size", mcp.Description("Max number of citations")),
		),
		ms.handleGetStatementDetails,
	)

	s.AddTool(
		mcp.NewTool(
			"get_exact_matches",
			mcp.WithDescription("Resolve CURIEs to equivalent identifiers (RHEA, KEGG, MetaCyc, ...)."),
			mcp.WithString("ids", mcp.Required(), mcp.Description("Comma separated CURIEs")),
		),
		ms.handleGetExactMatches,
	)

	s.AddTool(
		mcp.NewTool(
			"list_predicates",
			mcp.WithDescription("List the predicates with their statement counts. Pass edge_label to check a label."),
			mcp.WithString("edge_label", mcp.Description("Edge label to check against the known ones")),
		),
		ms.handleListPredicates,
	)

	return ms
}

// Run starts the MCP server on Stdio.
func (ms *MCPServer) Run() error {
	ms.logger.Info("Starting MCP server on Stdio")
	return server.ServeStdio(ms.srv)
}

// --- Resource Handlers ---

func (ms *MCPServer) handleKnowledgeMap(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	kmap, err := ms.beacon.GetKnowledgeMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build knowledge map: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(kmap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal knowledge map: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

// --- Tool Handlers ---

func (ms *MCPServer) handleSearchConcepts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	keywords, ok := args["keywords"].(string)
	if !ok {
		return mcp.NewToolResultError("keywords argument required"), nil
	}

	concepts, err := ms.beacon.GetConcepts(ctx, service.ConceptsRequest{
		Keywords:   strings.Fields(keywords),
		Categories: splitCSV(args["categories"]),
		Offset:     intArg(args, "offset", 0),
		Size:       intArg(args, "size", 10),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(concepts) == 0 {
		return mcp.NewToolResultText("No concepts found."), nil
	}
	return jsonResult(concepts)
}

func (ms *MCPServer) handleGetConceptDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, ok := args["concept_id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return mcp.NewToolResultError("concept_id argument required"), nil
	}

	concept, err := ms.beacon.GetConceptDetails(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	return jsonResult(concept)
}

func (ms *MCPServer) handleGetStatements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	edgeLabel, _ := args["edge_label"].(string)
	relation, _ := args["relation"].(string)
	subjectKeywords, _ := args["subject_keywords"].(string)
	objectKeywords, _ := args["object_keywords"].(string)

	statements, err := ms.beacon.GetStatements(ctx, service.StatementsRequest{
		SubjectIDs:        splitCSV(args["subject_ids"]),
		SubjectKeywords:   strings.Fields(subjectKeywords),
		SubjectCategories: splitCSV(args["subject_categories"]),
		EdgeLabel:         strings.TrimSpace(edgeLabel),
		Relation:          strings.TrimSpace(relation),
		ObjectIDs:         splitCSV(args["object_ids"]),
		ObjectKeywords:    strings.Fields(objectKeywords),
		ObjectCategories:  splitCSV(args["object_categories"]),
		Offset:            intArg(args, "offset", 0),
		Size:              intArg(args, "size", 10),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}
	if len(statements) == 0 {
		msg := "No statements found."
		if hint := edgeLabelHint(edgeLabel); hint != "" {
			msg += " " + hint
		}
		return mcp.NewToolResultText(msg), nil
	}
	return jsonResult(statements)
}

func (ms *MCPServer) handleGetStatementDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, ok := args["statement_id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return mcp.NewToolResultError("statement_id argument required"), nil
	}
	keywords, _ := args["keywords"].(string)

	details, err := ms.beacon.GetStatementDetails(ctx, id, strings.Fields(keywords), intArg(args, "offset", 0), intArg(args, "size", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	return jsonResult(details)
}

func (ms *MCPServer) handleGetExactMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	ids := splitCSV(args["ids"])
	if len(ids) == 0 {
		return mcp.NewToolResultError("ids argument required"), nil
	}

	matches, err := ms.beacon.GetExactMatches(ctx, ids)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	return jsonResult(matches)
}

func (ms *MCPServer) handleListPredicates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if label, _ := args["edge_label"].(string); strings.TrimSpace(label) != "" {
		if isEdgeLabel(label) {
			return mcp.NewToolResultText(fmt.Sprintf("%q is a known edge label.", label)), nil
		}
		msg := fmt.Sprintf("%q is not a known edge label.", label)
		if hint := edgeLabelHint(label); hint != "" {
			msg += " " + hint
		}
		return mcp.NewToolResultText(msg), nil
	}

	predicates, err := ms.beacon.GetPredicates(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count predicates: %v", err)), nil
	}
	return jsonResult(predicates)
}

// edgeLabelHint suggests the closest known edge label for an unknown one.
func edgeLabelHint(label string) string {
	label = strings.TrimSpace(label)
	if label == "" || isEdgeLabel(label) {
		return ""
	}
	if s, ok := registry.Suggest(label); ok {
		return fmt.Sprintf("Did you mean %q?", s)
	}
	return "Known edge labels: " + strings.Join(registry.EdgeLabels(), ", ")
}

func isEdgeLabel(label string) bool {
	for _, l := range registry.EdgeLabels() {
		if strings.EqualFold(l, strings.TrimSpace(label)) {
			return true
		}
	}
	return false
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to marshal result"), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func splitCSV(v any) []string {
	s, _ := v.(string)
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// intArg reads a JSON number argument; MCP clients send numbers as float64.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}
