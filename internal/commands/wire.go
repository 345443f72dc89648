package commands

import (
	"github.com/NCATS-Tangerine/rhea-beacon/internal/config"
	"github.com/NCATS-Tangerine/rhea-beacon/internal/manager"
	"github.com/NCATS-Tangerine/rhea-beacon/internal/metrics"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/provider"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/service"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/sparql"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/tabular"
	"go.uber.org/zap"
)

// datasets maps the configured files to the dataset names the providers use.
func datasets(cfg config.DataConfig) map[string]manager.Dataset {
	return map[string]manager.Dataset{
		manager.DatasetEnzymes:        {File: cfg.Enzymes},
		manager.DatasetChebi:          {File: cfg.Chebi, Options: tabular.Options{Columns: provider.ChebiNameColumns}},
		manager.DatasetChebiCompounds: {File: cfg.ChebiCompounds, Optional: true},
		manager.DatasetXrefs:          {File: cfg.Xrefs},
	}
}

// buildBeacon wires the service to the endpoint, tables and PubMed.
func buildBeacon(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*service.BeaconService, *manager.DatasetManager, error) {
	dm := manager.NewDatasetManager(cfg.Data.Dir, datasets(cfg.Data), log.Named("datasets"))

	client := sparql.NewClient(sparql.Options{
		Endpoint: cfg.SPARQL.Endpoint,
		Timeout:  cfg.SPARQL.Timeout,
		RetryMax: cfg.SPARQL.RetryMax,
		Logger:   log.Named("sparql"),
		Metrics:  m,
	})

	pubmed, err := provider.NewPubMed(provider.PubMedOptions{
		URL:         cfg.PubMed.URL,
		Tool:        cfg.PubMed.Tool,
		Email:       cfg.PubMed.Email,
		BatchSize:   cfg.PubMed.BatchSize,
		MinInterval: cfg.PubMed.MinInterval,
		CacheSize:   cfg.PubMed.CacheSize,
		RetryMax:    cfg.PubMed.RetryMax,
		Logger:      log.Named("pubmed"),
		Metrics:     m,
	})
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewBeaconService(service.Options{
		Querier:     client,
		Tables:      dm,
		Citations:   pubmed,
		IsDefinedBy: cfg.Beacon.IsDefinedBy,
		ProvidedBy:  cfg.Beacon.ProvidedBy,
		Logger:      log.Named("beacon"),
	})
	return svc, dm, nil
}
