package service

import (
	"context"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/model"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/provider"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/registry"
	"go.uber.org/zap"
)

// GetCategories reports each category with its concept count.
func (s *BeaconService) GetCategories(ctx context.Context) ([]model.ConceptCategory, error) {
	counts, err := s.graphCounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.ConceptCategory, 0, len(registry.Categories()))
	for _, c := range registry.Categories() {
		var freq int
		switch c {
		case registry.MolecularActivity:
			freq = counts.Reactions
		case registry.Protein:
			freq = counts.Enzymes
		case registry.ChemicalSubstance:
			freq = counts.Compounds
		default:
			freq = -1
		}
		out = append(out, model.ConceptCategory{
			Category:      c.String(),
			LocalCategory: c.String(),
			Description:   s.model.ClassDescription(c.String()),
			Frequency:     freq,
		})
	}
	return out, nil
}

// GetPredicates reports each predicate with the number of distinct subjects
// it relates.
func (s *BeaconService) GetPredicates(ctx context.Context) ([]model.Predicate, error) {
	preds := registry.All()
	out := make([]model.Predicate, 0, len(preds))
	for _, p := range preds {
		freq, err := s.predicateCount(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Predicate{
			EdgeLabel:   p.EdgeLabel(),
			Relation:    p.Relation(),
			Description: s.model.SlotDescription(p.EdgeLabel()),
			Frequency:   freq,
		})
	}
	return out, nil
}

// GetKnowledgeMap summarises the kinds of statements the beacon serves.
func (s *BeaconService) GetKnowledgeMap(ctx context.Context) ([]model.KnowledgeMapStatement, error) {
	preds := registry.All()
	out := make([]model.KnowledgeMapStatement, 0, len(preds))
	for _, p := range preds {
		freq, err := s.predicateCount(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, model.KnowledgeMapStatement{
			Subject: model.KnowledgeMapConcept{
				Category: p.Domain().String(),
				Prefixes: p.Domain().Prefixes(),
			},
			Predicate: model.StatementPredicate{
				EdgeLabel: p.EdgeLabel(),
				Relation:  p.Relation(),
			},
			Object: model.KnowledgeMapConcept{
				Category: p.Codomain().String(),
				Prefixes: p.Codomain().Prefixes(),
			},
			Frequency: freq,
		})
	}
	return out, nil
}

const graphCountsKey = "graph"

func (s *BeaconService) graphCounts(ctx context.Context) (provider.Counts, error) {
	return s.counts.get(ctx, graphCountsKey, func(ctx context.Context) (provider.Counts, error) {
		counts, err := s.rhea.Counts(ctx)
		if err != nil {
			return provider.Counts{}, err
		}
		s.logger.Info("graph counts",
			zap.Int("reactions", counts.Reactions),
			zap.Int("compounds", counts.Compounds),
			zap.Int("enzymes", counts.Enzymes),
		)
		return counts, nil
	})
}

func (s *BeaconService) predicateCount(ctx context.Context, p registry.Predicate) (int, error) {
	return s.predCounts.get(ctx, p.Name(), func(ctx context.Context) (int, error) {
		return s.rhea.StatementCount(ctx, p)
	})
}
