package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/eacsearch/internal/domain"
)

// Config holds the eacsearch API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Auth      AuthConfig      `yaml:"auth"`
	Index     IndexConfig     `yaml:"index"`
	Features  FeaturesConfig  `yaml:"features"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	History   HistoryConfig   `yaml:"history"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	// APIKeys are "client:secret" entries; the client name tags request logs.
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds search index connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CatalogConfig holds the venue catalogue (PostgreSQL) settings.
type CatalogConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"max_conns"`
}

// IndexConfig holds index names and HNSW settings for the offer index.
type IndexConfig struct {
	Offers          string `yaml:"offers"`
	Venues          string `yaml:"venues"`
	Keywords        string `yaml:"keywords"`
	HNSWM           int    `yaml:"hnsw_m"`
	HNSWEFConstruct int    `yaml:"hnsw_ef_construction"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
	VenueMatches    int    `yaml:"venue_matches"`
	KeywordMatches  int    `yaml:"keyword_matches"`
}

// EmbeddingConfig holds the settings of the no-results semantic fallback.
// An empty APIKey disables the fallback.
type EmbeddingConfig struct {
	Provider         string `yaml:"provider"`
	APIKey           string `yaml:"api_key"`
	BaseURL          string `yaml:"base_url"`
	Model            string `yaml:"model"`
	Dimensions       int    `yaml:"dimensions"`
	QueryInstruction string `yaml:"query_instruction"`
	TimeoutSec       int    `yaml:"timeout_sec"`
	CacheTTLHours    int    `yaml:"cache_ttl_hours"`
}

// Enabled reports whether the semantic fallback is configured.
func (e EmbeddingConfig) Enabled() bool {
	return e.APIKey != ""
}

// FeaturesConfig holds the feature toggles, read once at startup.
type FeaturesConfig struct {
	Formats       bool `yaml:"formats"`
	Geolocation   bool `yaml:"geolocation"`
	SearchHistory bool `yaml:"search_history"`
}

// SessionsConfig bounds the in-memory localisation and suggestion sessions.
type SessionsConfig struct {
	MaxSessions int `yaml:"max_sessions"`
	TTLMinutes  int `yaml:"ttl_minutes"`
}

// HistoryConfig holds search history settings.
type HistoryConfig struct {
	Capacity     int `yaml:"capacity"`
	DisplayLimit int `yaml:"display_limit"`
	TTLDays      int `yaml:"ttl_days"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding env variables, applying
// defaults and validating the result.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Catalog.MaxConns <= 0 {
		c.Catalog.MaxConns = 4
	}
	if c.Index.Offers == "" {
		c.Index.Offers = "eacsearch:offers"
	}
	if c.Index.Venues == "" {
		c.Index.Venues = "eacsearch:venues"
	}
	if c.Index.Keywords == "" {
		c.Index.Keywords = "eacsearch:keywords"
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = 16
	}
	if c.Index.HNSWEFConstruct <= 0 {
		c.Index.HNSWEFConstruct = 200
	}
	if c.Index.DefaultPageSize <= 0 {
		c.Index.DefaultPageSize = 20
	}
	if c.Index.MaxPageSize <= 0 {
		c.Index.MaxPageSize = 100
	}
	if c.Index.VenueMatches <= 0 {
		c.Index.VenueMatches = 5
	}
	if c.Index.KeywordMatches <= 0 {
		c.Index.KeywordMatches = 5
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	vec := domain.DefaultVectorConfig()
	if c.Embedding.Model == "" {
		c.Embedding.Model = vec.Model
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = vec.Dimensions
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 5
	}
	if c.Embedding.CacheTTLHours <= 0 {
		c.Embedding.CacheTTLHours = 24 * 7
	}
	if c.Sessions.MaxSessions <= 0 {
		c.Sessions.MaxSessions = 10000
	}
	if c.Sessions.TTLMinutes <= 0 {
		c.Sessions.TTLMinutes = 30
	}
	if c.History.Capacity <= 0 {
		c.History.Capacity = 10
	}
	if c.History.DisplayLimit <= 0 {
		c.History.DisplayLimit = 5
	}
	if c.History.TTLDays <= 0 {
		c.History.TTLDays = 90
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Catalog.DSN == "" {
		return fmt.Errorf("catalog.dsn is required")
	}
	if c.Index.DefaultPageSize > c.Index.MaxPageSize {
		return fmt.Errorf("index.default_page_size (%d) exceeds index.max_page_size (%d)",
			c.Index.DefaultPageSize, c.Index.MaxPageSize)
	}
	if c.History.DisplayLimit > c.History.Capacity {
		return fmt.Errorf("history.display_limit (%d) exceeds history.capacity (%d)",
			c.History.DisplayLimit, c.History.Capacity)
	}
	if c.Embedding.Enabled() && c.Embedding.BaseURL == "" {
		return fmt.Errorf("embedding.base_url is required when embedding.api_key is set")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
