package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/model"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/registry"
	"go.uber.org/zap"
)

// ExpasyEnzymeURL is the public page of an EC number.
const ExpasyEnzymeURL = "https://enzyme.expasy.org/EC/"

// ConceptsRequest is a keyword search over enzymes and compounds. Empty
// Categories searches everything; Size <= 0 means no limit.
type ConceptsRequest struct {
	Keywords   []string
	Categories []string
	Offset     int
	Size       int
}

// GetConcepts ranks enzymes, then compounds, against the keywords. Paging
// runs across both as if they were one list with enzymes first.
func (s *BeaconService) GetConcepts(ctx context.Context, req ConceptsRequest) ([]model.Concept, error) {
	concepts := []model.Concept{}
	offset, size := max(req.Offset, 0), req.Size

	if s.searchable(registry.Protein, req.Categories) {
		enzymes, total, err := s.enzymes.Find(req.Keywords, offset, size)
		if err != nil {
			return nil, errors.Wrap(err, "search enzymes")
		}
		for _, e := range enzymes {
			concepts = append(concepts, model.Concept{
				ID:         e.Curie(),
				Name:       model.Nullable(e.Name),
				Categories: []string{registry.Protein.String()},
			})
		}
		if size > 0 {
			if len(concepts) >= size {
				return concepts, nil
			}
			size -= len(concepts)
		}
		offset = max(0, offset-total)
	}

	if s.searchable(registry.ChemicalSubstance, req.Categories) {
		compounds, _, err := s.chebi.Find(req.Keywords, offset, size)
		if err != nil {
			return nil, errors.Wrap(err, "search compounds")
		}
		for _, c := range compounds {
			concepts = append(concepts, model.Concept{
				ID:         c.ID,
				Name:       model.Nullable(c.Name),
				Categories: []string{registry.ChemicalSubstance.String()},
			})
		}
	}
	return concepts, nil
}

// searchable reports whether a partition holding category c should be
// searched: with no filter, or when a requested category is c or one of its
// Biolink ancestors.
func (s *BeaconService) searchable(c registry.Category, requested []string) bool {
	if len(requested) == 0 {
		return true
	}
	for _, r := range requested {
		if s.model.IsA(c.String(), r) {
			return true
		}
	}
	return false
}

// GetConceptDetails describes a single enzyme, reaction or compound.
func (s *BeaconService) GetConceptDetails(ctx context.Context, conceptID string) (*model.ConceptWithDetails, error) {
	id := strings.ToUpper(strings.TrimSpace(conceptID))
	prefix, local, ok := strings.Cut(id, ":")
	if !ok || local == "" {
		return nil, errors.NotFoundf("concept %q", conceptID)
	}

	var (
		concept *model.ConceptWithDetails
		err     error
	)
	switch registry.CategoryOf(id) {
	case registry.Protein:
		concept, err = s.enzymeDetails(id)
	case registry.MolecularActivity:
		concept, err = s.reactionDetails(ctx, id)
	default:
		s.logger.Debug("looking up concept as compound", zap.String("prefix", prefix))
		concept, err = s.compoundDetails(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	concept.ExactMatches = s.exactMatchesOrEmpty(id)
	return concept, nil
}

func (s *BeaconService) enzymeDetails(id string) (*model.ConceptWithDetails, error) {
	e, ok, err := s.enzymes.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "look up enzyme")
	}
	if !ok {
		return nil, errors.NotFoundf("enzyme %q", id)
	}
	return &model.ConceptWithDetails{
		ID:         e.Curie(),
		URI:        model.Nullable(ExpasyEnzymeURL + e.ID),
		Name:       model.Nullable(e.Name),
		Categories: []string{registry.Protein.String()},
		Synonyms:   e.Synonyms,
		Details:    []model.ConceptDetail{},
	}, nil
}

func (s *BeaconService) reactionDetails(ctx context.Context, id string) (*model.ConceptWithDetails, error) {
	rxn, ok, err := s.rhea.Reaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFoundf("reaction %q", id)
	}
	return &model.ConceptWithDetails{
		ID:         rxn.Accession,
		URI:        model.Nullable(rxn.URI),
		Name:       model.Nullable(rxn.Equation),
		Categories: []string{registry.MolecularActivity.String()},
		Synonyms:   []string{},
		Details:    []model.ConceptDetail{},
	}, nil
}

func (s *BeaconService) compoundDetails(ctx context.Context, id string) (*model.ConceptWithDetails, error) {
	c, ok, err := s.rhea.Compound(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFoundf("compound %q", id)
	}

	concept := &model.ConceptWithDetails{
		ID:         c.Accession,
		URI:        model.Nullable(c.Chebi),
		Name:       model.Nullable(c.Name),
		Categories: []string{registry.ChemicalSubstance.String()},
		Synonyms:   []string{},
		Details: []model.ConceptDetail{
			{Tag: "reactionCount", Value: strconv.Itoa(c.ReactionCount)},
		},
	}

	if info, ok := s.chebi.Info(id); ok {
		concept.Description = model.Nullable(info.Definition)
		if info.ChebiName != "" && !strings.EqualFold(info.ChebiName, c.Name) {
			concept.Synonyms = append(concept.Synonyms, info.ChebiName)
		}
		tags := make([]string, 0, len(info.Details))
		for tag := range info.Details {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			concept.Details = append(concept.Details, model.ConceptDetail{Tag: tag, Value: info.Details[tag]})
		}
	}
	return concept, nil
}

func (s *BeaconService) exactMatchesOrEmpty(id string) []string {
	matches, err := s.xrefs.ExactMatches(id)
	if err != nil {
		s.logger.Warn("exact matches unavailable", zap.String("id", id), zap.Error(err))
		return []string{}
	}
	return matches
}

// GetExactMatches resolves each CURIE to its known equivalents. Identifiers
// without a prefix are skipped.
func (s *BeaconService) GetExactMatches(ctx context.Context, ids []string) ([]model.ExactMatch, error) {
	out := []model.ExactMatch{}
	for _, id := range ids {
		if !strings.Contains(id, ":") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches, err := s.xrefs.ExactMatches(id)
		if err != nil {
			return nil, errors.Wrap(err, "resolve exact matches")
		}
		out = append(out, model.ExactMatch{
			ID:              id,
			WithinDomain:    len(matches) > 0,
			HasExactMatches: matches,
		})
	}
	return out, nil
}
