package service

import (
	"context"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/biolink"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/provider"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/sparql"
	"go.uber.org/zap"
)

// Provenance defaults reported with statement details.
const (
	DefaultIsDefinedBy = "rhea-db.org"
	DefaultProvidedBy  = "STAR Informatics"
	// EvidenceType is the ECO code for "imported information used in
	// automatic assertion".
	EvidenceType = "ECO:0000312"
)

// CitationSource fetches bibliographic summaries keyed by PubMed id.
type CitationSource interface {
	Summaries(ctx context.Context, ids []string) (map[string]provider.Summary, error)
}

// Options wires a BeaconService to its collaborators.
type Options struct {
	Querier     sparql.Querier
	Tables      provider.TableSource
	Citations   CitationSource
	Model       *biolink.Model
	IsDefinedBy string
	ProvidedBy  string
	Logger      *zap.Logger
}

// BeaconService answers beacon requests from Rhea and the reference tables.
type BeaconService struct {
	rhea      *provider.Rhea
	enzymes   *provider.Enzymes
	chebi     *provider.Chebi
	xrefs     *provider.Xrefs
	citations CitationSource
	model     *biolink.Model

	isDefinedBy string
	providedBy  string
	logger      *zap.Logger

	// memoised aggregates; failures are not stored
	counts     *memo[provider.Counts]
	predCounts *memo[int]
}

// NewBeaconService creates a new BeaconService.
func NewBeaconService(opts Options) *BeaconService {
	if opts.Model == nil {
		opts.Model = biolink.Default()
	}
	if opts.IsDefinedBy == "" {
		opts.IsDefinedBy = DefaultIsDefinedBy
	}
	if opts.ProvidedBy == "" {
		opts.ProvidedBy = DefaultProvidedBy
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &BeaconService{
		rhea:        provider.NewRhea(opts.Querier),
		enzymes:     provider.NewEnzymes(opts.Tables),
		chebi:       provider.NewChebi(opts.Tables),
		xrefs:       provider.NewXrefs(opts.Tables),
		citations:   opts.Citations,
		model:       opts.Model,
		isDefinedBy: opts.IsDefinedBy,
		providedBy:  opts.ProvidedBy,
		logger:      opts.Logger,
		counts:      newMemo[provider.Counts](),
		predCounts:  newMemo[int](),
	}
}
