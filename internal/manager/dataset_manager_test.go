package manager

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestDatasetManager_LoadOnce(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "chebi.tsv", "CHEBI:15377\twater\n")

	dm := NewDatasetManager(tmpDir, map[string]Dataset{
		DatasetChebi: {File: "chebi.tsv", Options: tabular.Options{Columns: []string{"id", "name"}}},
	}, nil)

	t1, err := dm.GetTable(DatasetChebi)
	require.NoError(t, err)
	require.Equal(t, 1, t1.Len())

	// Changes on disk are not picked up once loaded
	writeFile(t, tmpDir, "chebi.tsv", "CHEBI:15377\twater\nCHEBI:17234\tglucose\n")
	t2, err := dm.GetTable(DatasetChebi)
	require.NoError(t, err)
	if t1 != t2 {
		t.Errorf("Expected same instance for %s, got different", DatasetChebi)
	}
}

func TestDatasetManager_FailedLoadRetried(t *testing.T) {
	tmpDir := t.TempDir()
	dm := NewDatasetManager(tmpDir, map[string]Dataset{
		DatasetXrefs: {File: "rhea2xrefs.tsv"},
	}, nil)

	_, err := dm.GetTable(DatasetXrefs)
	require.Error(t, err)

	writeFile(t, tmpDir, "rhea2xrefs.tsv", "RHEA_ID\tDIRECTION\tMASTER_ID\tID\tDB\n10001\tLR\t10000\tR00001\tKEGG_REACTION\n")
	tbl, err := dm.GetTable(DatasetXrefs)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestDatasetManager_Unknown(t *testing.T) {
	dm := NewDatasetManager(t.TempDir(), nil, nil)
	_, err := dm.GetTable("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDatasetManager_Status(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "ecc_names.csv", "ID\tName\tSynonyms\n1.1.1.1\tAlcohol dehydrogenase\t\n")

	dm := NewDatasetManager(tmpDir, map[string]Dataset{
		DatasetEnzymes: {File: "ecc_names.csv"},
		DatasetChebi:   {File: "chebiId_name.tsv"},
	}, nil)

	st := dm.Status()
	require.Len(t, st, 2)
	assert.Equal(t, DatasetChebi, st[0].Name)
	assert.False(t, st[1].Loaded)

	_, err := dm.GetTable(DatasetEnzymes)
	require.NoError(t, err)

	st = dm.Status()
	assert.False(t, st[0].Loaded)
	assert.True(t, st[1].Loaded)
	assert.Equal(t, 1, st[1].Rows)
	assert.Equal(t, filepath.Join(tmpDir, "ecc_names.csv"), st[1].File)
}

func TestDatasetManager_Concurrent(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "chebi.tsv", "CHEBI:15377\twater\n")
	dm := NewDatasetManager(tmpDir, map[string]Dataset{
		DatasetChebi: {File: "chebi.tsv", Options: tabular.Options{Columns: []string{"id", "name"}}},
	}, nil)

	var wg sync.WaitGroup
	tables := make([]*tabular.Table, 16)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := dm.GetTable(DatasetChebi)
			assert.NoError(t, err)
			tables[i] = tbl
		}(i)
	}
	wg.Wait()

	for _, tbl := range tables {
		assert.Same(t, tables[0], tbl)
	}
}

func TestDatasetManager_PreloadLoadsPastFailures(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "ecc_names.csv", "ID\tName\tSynonyms\n1.1.1.1\tAlcohol dehydrogenase\t\n")
	writeFile(t, tmpDir, "rhea2xrefs.tsv", "RHEA_ID\tDIRECTION\tMASTER_ID\tID\tDB\n")

	dm := NewDatasetManager(tmpDir, map[string]Dataset{
		DatasetChebi:   {File: "chebiId_name.tsv"},
		DatasetEnzymes: {File: "ecc_names.csv"},
		DatasetXrefs:   {File: "rhea2xrefs.tsv"},
	}, nil)

	// chebi sorts first and fails; the others still load
	err := dm.Preload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), DatasetChebi)

	st := dm.Status()
	require.Len(t, st, 3)
	assert.False(t, st[0].Loaded)
	assert.True(t, st[1].Loaded)
	assert.True(t, st[2].Loaded)
}

func TestDatasetManager_OptionalMissing(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "ecc_names.csv", "ID\tName\tSynonyms\n1.1.1.1\tAlcohol dehydrogenase\t\n")

	dm := NewDatasetManager(tmpDir, map[string]Dataset{
		DatasetChebiCompounds: {File: "compounds.tsv.gz", Optional: true},
		DatasetEnzymes:        {File: "ecc_names.csv"},
	}, nil)

	require.NoError(t, dm.Preload(), "a missing optional dataset is not a failure")

	_, err := dm.GetTable(DatasetChebiCompounds)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	// absence is remembered: installing the file later has no effect
	writeFile(t, tmpDir, "compounds.tsv.gz", "not gzip")
	_, err = dm.GetTable(DatasetChebiCompounds)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	st := dm.Status()
	require.Len(t, st, 2)
	assert.True(t, st[0].Missing)
	assert.False(t, st[0].Loaded)
	assert.False(t, st[1].Missing)
	assert.True(t, st[1].Loaded)
}

func TestDatasetManager_OptionalBrokenNotRemembered(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "compounds.tsv.gz", "not gzip")

	dm := NewDatasetManager(tmpDir, map[string]Dataset{
		DatasetChebiCompounds: {File: "compounds.tsv.gz", Optional: true},
	}, nil)

	// an unreadable file is a real failure, not an absent dataset
	require.Error(t, dm.Preload())
	assert.False(t, dm.Status()[0].Missing)
}
