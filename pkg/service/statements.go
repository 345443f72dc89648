package service

import (
	"context"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/model"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/provider"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/registry"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/search"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/sparql"
	"go.uber.org/zap"
)

// StatementsRequest filters a statement search. Nil slices and empty strings
// are unconstrained; Size <= 0 means no limit.
type StatementsRequest struct {
	SubjectIDs        []string
	SubjectKeywords   []string
	SubjectCategories []string
	EdgeLabel         string
	Relation          string
	ObjectIDs         []string
	ObjectKeywords    []string
	ObjectCategories  []string
	Offset            int
	Size              int
}

// GetStatements returns the statements matching req. When no predicate can
// satisfy the filters the endpoint is not queried.
func (s *BeaconService) GetStatements(ctx context.Context, req StatementsRequest) ([]model.Statement, error) {
	q, ok := registry.BuildStatementQuery(registry.StatementQuery{
		EdgeLabel:         req.EdgeLabel,
		Relation:          req.Relation,
		SubjectIDs:        req.SubjectIDs,
		SubjectKeywords:   req.SubjectKeywords,
		SubjectCategories: req.SubjectCategories,
		ObjectIDs:         req.ObjectIDs,
		ObjectKeywords:    req.ObjectKeywords,
		ObjectCategories:  req.ObjectCategories,
		Offset:            req.Offset,
		Size:              req.Size,
	})
	if !ok {
		s.logger.Debug("no predicate matches statement filters",
			zap.String("edge_label", req.EdgeLabel),
			zap.String("relation", req.Relation),
		)
		return []model.Statement{}, nil
	}

	s.logger.Debug("statements query", zap.String("query", q))
	records, err := s.rhea.Records(ctx, q)
	if err != nil {
		return nil, err
	}

	statements := make([]model.Statement, 0, len(records))
	for _, rec := range records {
		subject := s.statementConcept(rec.Value("subjectId"), rec.Value("subjectName"))
		object := s.statementConcept(rec.Value("objectId"), rec.Value("objectName"))
		predicate := model.StatementPredicate{
			EdgeLabel: rec.Value("edge_label"),
			Relation:  rec.Value("relation"),
			Negated:   false,
		}
		statements = append(statements, model.Statement{
			ID:        model.NewStatementID(subject.ID, predicate.EdgeLabel, predicate.Relation, object.ID),
			Subject:   subject,
			Predicate: predicate,
			Object:    object,
		})
	}
	return statements, nil
}

// statementConcept builds a statement end. Enzymes come back as IRIs without
// a name, so they are shortened to EC CURIEs and named from the enzyme table.
func (s *BeaconService) statementConcept(id, name string) model.StatementConcept {
	if strings.HasPrefix(id, sparql.EnzymeNamespace) {
		id = "EC:" + strings.TrimPrefix(id, sparql.EnzymeNamespace)
		name = s.enzymes.Name(id)
	}
	return model.StatementConcept{
		ID:         id,
		Name:       model.Nullable(name),
		Categories: categoriesOf(id),
	}
}

func categoriesOf(curie string) []string {
	if c := registry.CategoryOf(curie); c != "" {
		return []string{c.String()}
	}
	return []string{}
}

// GetStatementDetails returns provenance and citations for a statement id
// issued by GetStatements. Keywords filter citations by title; offset and
// size page the citations.
func (s *BeaconService) GetStatementDetails(ctx context.Context, statementID string, keywords []string, offset, size int) (*model.StatementWithDetails, error) {
	id, err := model.ParseStatementID(statementID)
	if err != nil {
		return nil, err
	}

	q, ok := registry.BuildStatementQuery(registry.StatementQuery{
		EdgeLabel:  id.EdgeLabel,
		Relation:   id.Relation,
		SubjectIDs: []string{id.SubjectID},
		ObjectIDs:  []string{id.ObjectID},
		Size:       1,
		Citations:  true,
	})
	if !ok {
		return nil, errors.NotFoundf("statement %q", statementID)
	}

	records, err := s.rhea.Records(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFoundf("statement %q", statementID)
	}

	var uris []string
	for _, c := range strings.Split(records[0].Value("citations"), "|") {
		if c = strings.TrimSpace(c); c != "" {
			uris = append(uris, c)
		}
	}

	terms := lowerKeywords(keywords)
	var evidence []model.Citation
	if len(terms) == 0 {
		uris = search.Page(uris, offset, size)
		evidence, err = s.cite(ctx, uris)
		if err != nil {
			return nil, err
		}
	} else {
		all, err := s.cite(ctx, uris)
		if err != nil {
			return nil, err
		}
		var kept []model.Citation
		for _, c := range all {
			if c.Name != nil && containsAny(strings.ToLower(*c.Name), terms) {
				kept = append(kept, c)
			}
		}
		evidence = search.Page(kept, offset, size)
	}
	if evidence == nil {
		evidence = []model.Citation{}
	}

	return &model.StatementWithDetails{
		ID:          statementID,
		IsDefinedBy: s.isDefinedBy,
		ProvidedBy:  s.providedBy,
		Qualifiers:  []string{},
		Annotation:  []model.Annotation{},
		Evidence:    evidence,
	}, nil
}

// cite turns citation IRIs into citations, filling title and date from
// PubMed where available.
func (s *BeaconService) cite(ctx context.Context, uris []string) ([]model.Citation, error) {
	summaries := map[string]provider.Summary{}
	if s.citations != nil && len(uris) > 0 {
		var err error
		summaries, err = s.citations.Summaries(ctx, uris)
		if err != nil {
			return nil, err
		}
	}

	out := make([]model.Citation, 0, len(uris))
	for _, uri := range uris {
		sum := summaries[provider.NormalizePMID(uri)]
		id := uri
		if strings.HasPrefix(uri, sparql.PubMedNamespace) {
			id = "PUBMED:" + strings.TrimPrefix(uri, sparql.PubMedNamespace)
		}
		out = append(out, model.Citation{
			ID:           id,
			URI:          uri,
			Name:         model.Nullable(sum.Title),
			EvidenceType: EvidenceType,
			Date:         model.Nullable(sum.PubDate),
		})
	}
	return out, nil
}

func lowerKeywords(keywords []string) []string {
	var out []string
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
