package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so no beacon.yaml or .env
// is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "https://sparql.rhea-db.org/sparql", cfg.SPARQL.Endpoint)
	assert.Equal(t, 60*time.Second, cfg.SPARQL.Timeout)
	assert.Equal(t, 2, cfg.SPARQL.RetryMax)
	assert.Equal(t, "ecc_names.csv", cfg.Data.Enzymes)
	assert.Equal(t, 50, cfg.PubMed.BatchSize)
	assert.Equal(t, 333*time.Millisecond, cfg.PubMed.MinInterval)
	assert.Equal(t, "knowledge_beacon", cfg.PubMed.Tool)
	assert.Equal(t, "STAR Informatics", cfg.Beacon.ProvidedBy)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := inTempDir(t)

	yaml := `
server:
  port: 9000
  base_path: /beacons/rhea
sparql:
  timeout: 5s
pubmed:
  email: someone@example.org
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beacon.yaml"), []byte(yaml), 0o644))
	t.Setenv("RHEA_BEACON_SERVER_PORT", "9090")
	t.Setenv("RHEA_BEACON_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "/beacons/rhea", cfg.Server.BasePath)
	assert.Equal(t, 5*time.Second, cfg.SPARQL.Timeout)
	assert.Equal(t, "someone@example.org", cfg.PubMed.Email)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RHEA_BEACON_DATA_DIR=/srv/rhea\n"), 0o644))
	t.Setenv("RHEA_BEACON_DATA_DIR", "")
	require.NoError(t, os.Unsetenv("RHEA_BEACON_DATA_DIR"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/rhea", cfg.Data.Dir)
	assert.Equal(t, filepath.Join("/srv/rhea", "rhea2xrefs.tsv"), cfg.Data.Path(cfg.Data.Xrefs))
}

func TestLoadExplicitFileMissing(t *testing.T) {
	dir := inTempDir(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	inTempDir(t)

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port", map[string]string{"RHEA_BEACON_SERVER_PORT": "70000"}},
		{"base path", map[string]string{"RHEA_BEACON_SERVER_BASE_PATH": "beacon"}},
		{"endpoint", map[string]string{"RHEA_BEACON_SPARQL_ENDPOINT": " "}},
		{"batch size", map[string]string{"RHEA_BEACON_PUBMED_BATCH_SIZE": "0"}},
		{"pubmed retries", map[string]string{"RHEA_BEACON_PUBMED_RETRY_MAX": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestDataPath(t *testing.T) {
	d := DataConfig{Dir: "data"}
	assert.Equal(t, filepath.Join("data", "x.tsv"), d.Path("x.tsv"))
	assert.Equal(t, "/abs/x.tsv", d.Path("/abs/x.tsv"))
}
