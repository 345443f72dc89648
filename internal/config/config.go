// Package config loads the beacon configuration from file, environment and
// defaults, in increasing order of precedence: defaults < file < env.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NCATS-Tangerine/rhea-beacon/internal/logger"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RHEA_BEACON_SERVER_PORT.
const EnvPrefix = "RHEA_BEACON"

// Config is the full beacon configuration.
type Config struct {
	Server ServerConfig  `mapstructure:"server"`
	Log    logger.Config `mapstructure:"log"`
	SPARQL SPARQLConfig  `mapstructure:"sparql"`
	Data   DataConfig    `mapstructure:"data"`
	PubMed PubMedConfig  `mapstructure:"pubmed"`
	Beacon BeaconConfig  `mapstructure:"beacon"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	BasePath    string   `mapstructure:"base_path"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type SPARQLConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	RetryMax int           `mapstructure:"retry_max"`
}

// DataConfig locates the reference tables. File names are relative to Dir.
type DataConfig struct {
	Dir            string `mapstructure:"dir"`
	Enzymes        string `mapstructure:"enzymes"`
	Chebi          string `mapstructure:"chebi"`
	ChebiCompounds string `mapstructure:"chebi_compounds"`
	Xrefs          string `mapstructure:"xrefs"`
}

type PubMedConfig struct {
	URL         string        `mapstructure:"url"`
	Email       string        `mapstructure:"email"`
	Tool        string        `mapstructure:"tool"`
	BatchSize   int           `mapstructure:"batch_size"`
	MinInterval time.Duration `mapstructure:"min_interval"`
	CacheSize   int           `mapstructure:"cache_size"`
	RetryMax    int           `mapstructure:"retry_max"`
}

type BeaconConfig struct {
	IsDefinedBy string `mapstructure:"is_defined_by"`
	ProvidedBy  string `mapstructure:"provided_by"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_path", "")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("sparql.endpoint", "https://sparql.rhea-db.org/sparql")
	v.SetDefault("sparql.timeout", 60*time.Second)
	v.SetDefault("sparql.retry_max", 2)

	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.enzymes", "ecc_names.csv")
	v.SetDefault("data.chebi", "chebiId_name.tsv")
	v.SetDefault("data.chebi_compounds", "compounds.tsv.gz")
	v.SetDefault("data.xrefs", "rhea2xrefs.tsv")

	v.SetDefault("pubmed.url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi")
	v.SetDefault("pubmed.email", "")
	v.SetDefault("pubmed.tool", "knowledge_beacon")
	v.SetDefault("pubmed.batch_size", 50)
	v.SetDefault("pubmed.min_interval", 333*time.Millisecond) // NCBI allows 3 requests/s without a key
	v.SetDefault("pubmed.cache_size", 1024)
	v.SetDefault("pubmed.retry_max", 0)

	v.SetDefault("beacon.is_defined_by", "rhea-db.org")
	v.SetDefault("beacon.provided_by", "STAR Informatics")
}

// Load reads configuration. configFile overrides the search for beacon.yaml;
// when it is set the file must exist. A .env file in the working directory is
// loaded into the environment first.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configFile)
		}
	} else {
		v.SetConfigName("beacon")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func searchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".rhea-beacon"))
	}
	return append(paths, "/etc/rhea-beacon")
}

// Validate rejects settings the beacon cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.InvalidInputf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return errors.InvalidInputf("server.base_path %q must start with /", c.Server.BasePath)
	}
	if strings.TrimSpace(c.SPARQL.Endpoint) == "" {
		return errors.InvalidInputf("sparql.endpoint is required")
	}
	if c.SPARQL.RetryMax < 0 {
		return errors.InvalidInputf("sparql.retry_max must not be negative")
	}
	if c.PubMed.BatchSize <= 0 {
		return errors.InvalidInputf("pubmed.batch_size must be positive")
	}
	if c.PubMed.RetryMax < 0 {
		return errors.InvalidInputf("pubmed.retry_max must not be negative")
	}
	if c.PubMed.MinInterval < 0 {
		return errors.InvalidInputf("pubmed.min_interval must not be negative")
	}
	return nil
}

// Path resolves a data file name against the data directory.
func (d DataConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}
