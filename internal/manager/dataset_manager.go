package manager

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/tabular"
	"go.uber.org/zap"
)

// Dataset names registered by the beacon.
const (
	DatasetEnzymes        = "enzymes"
	DatasetChebi          = "chebi"
	DatasetChebiCompounds = "chebi_compounds"
	DatasetXrefs          = "xrefs"
)

// Dataset describes a tabular file under the data directory.
type Dataset struct {
	File    string
	Options tabular.Options
	// Optional datasets may be absent. A missing optional file is reported
	// once and then remembered as not installed.
	Optional bool
}

// DatasetStatus represents the dataset information exposed by the health endpoint.
type DatasetStatus struct {
	Name   string `json:"name"`
	File   string `json:"file"`
	Loaded bool   `json:"loaded"`
	Rows   int    `json:"rows"`
	// Missing is set for optional datasets whose file is not installed.
	Missing bool `json:"missing,omitempty"`
}

// DatasetManager loads each registered dataset on first access and keeps it
// for the life of the process. Failed loads are not remembered, so the next
// access retries, except for optional datasets whose file does not exist.
type DatasetManager struct {
	baseDir  string
	datasets map[string]Dataset
	tables   map[string]*tabular.Table
	missing  map[string]bool
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewDatasetManager creates a new DatasetManager rooted at baseDir.
func NewDatasetManager(baseDir string, datasets map[string]Dataset, logger *zap.Logger) *DatasetManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	ds := make(map[string]Dataset, len(datasets))
	for name, d := range datasets {
		ds[name] = d
	}
	return &DatasetManager{
		baseDir:  baseDir,
		datasets: ds,
		tables:   make(map[string]*tabular.Table),
		missing:  make(map[string]bool),
		logger:   logger,
	}
}

// GetTable retrieves a dataset by name, loading it if necessary.
func (dm *DatasetManager) GetTable(name string) (*tabular.Table, error) {
	// Fast path
	dm.mu.RLock()
	t, ok := dm.tables[name]
	missing := dm.missing[name]
	dm.mu.RUnlock()
	if ok {
		return t, nil
	}
	if missing {
		return nil, errors.NotFoundf("dataset %q is not installed", name)
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()

	// Double-check under lock
	if t, ok := dm.tables[name]; ok {
		return t, nil
	}
	if dm.missing[name] {
		return nil, errors.NotFoundf("dataset %q is not installed", name)
	}

	d, ok := dm.datasets[name]
	if !ok {
		return nil, errors.NotFoundf("dataset %q", name)
	}

	if d.Optional {
		if _, err := os.Stat(dm.path(d)); os.IsNotExist(err) {
			dm.logger.Info("optional dataset not installed", zap.String("dataset", name), zap.String("file", dm.path(d)))
			dm.missing[name] = true
			return nil, errors.NotFoundf("dataset %q is not installed", name)
		}
	}

	start := time.Now()
	t, err := tabular.Load(dm.path(d), d.Options)
	if err != nil {
		dm.logger.Warn("dataset load failed", zap.String("dataset", name), zap.Error(err))
		return nil, errors.Wrapf(err, "load dataset %s", name)
	}

	dm.logger.Info("dataset loaded",
		zap.String("dataset", name),
		zap.Int("rows", t.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	dm.tables[name] = t
	return t, nil
}

// Status lists every registered dataset, sorted by name.
func (dm *DatasetManager) Status() []DatasetStatus {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	out := make([]DatasetStatus, 0, len(dm.datasets))
	for name, d := range dm.datasets {
		st := DatasetStatus{Name: name, File: dm.path(d), Missing: dm.missing[name]}
		if t, ok := dm.tables[name]; ok {
			st.Loaded = true
			st.Rows = t.Len()
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Preload loads every dataset. Failures do not stop the remaining loads and
// are returned together. Missing optional datasets are not failures.
func (dm *DatasetManager) Preload() error {
	var errs []error
	for _, st := range dm.Status() {
		if _, err := dm.GetTable(st.Name); err != nil && !dm.isMissing(st.Name) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (dm *DatasetManager) isMissing(name string) bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.missing[name]
}

func (dm *DatasetManager) path(d Dataset) string {
	if filepath.IsAbs(d.File) {
		return d.File
	}
	return filepath.Join(dm.baseDir, d.File)
}
