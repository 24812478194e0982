package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
)

// Config holds the itemsearch API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Synonyms SynonymsConfig `yaml:"synonyms"`
	Search   SearchConfig   `yaml:"search"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix     string `yaml:"key_prefix"`
	PageSize      int    `yaml:"page_size"`      // candidate paging
	MaxCandidates int    `yaml:"max_candidates"` // cap on the fuzzy candidate set
}

// SynonymsConfig holds synonym index settings.
type SynonymsConfig struct {
	RefreshIntervalSec int    `yaml:"refresh_interval_sec"`
	SeedFile           string `yaml:"seed_file"`
}

// ToleranceConfig holds the adaptive edit-distance breakpoints.
type ToleranceConfig struct {
	ExactMaxLen    int `yaml:"exact_max_len"`
	OneEditMaxLen  int `yaml:"one_edit_max_len"`
	TwoEditsMaxLen int `yaml:"two_edits_max_len"`
	LongTokenEdits int `yaml:"long_token_edits"`
}

// SearchConfig holds matching and orchestration thresholds.
type SearchConfig struct {
	Tolerance            ToleranceConfig `yaml:"tolerance"`
	MinSimilarity        float64         `yaml:"min_similarity"`
	SubstringBonus       float64         `yaml:"substring_bonus"`
	SubstringMinLen      int             `yaml:"substring_min_len"`
	FuzzyLimit           int             `yaml:"fuzzy_limit"`
	DefaultLimit         int             `yaml:"default_limit"`
	MaxLimit             int             `yaml:"max_limit"`
	FuzzyThreshold       *int            `yaml:"fuzzy_threshold"`
	SuggestBelow         int             `yaml:"suggest_below"`
	MaxSuggestions       int             `yaml:"max_suggestions"`
	SuggestMinSimilarity float64         `yaml:"suggest_min_similarity"`
	SuggestMaxDistance   int             `yaml:"suggest_max_distance"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

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
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "itemsearch:"
	}
	if c.Storage.PageSize <= 0 {
		c.Storage.PageSize = 500
	}
	if c.Storage.MaxCandidates <= 0 {
		c.Storage.MaxCandidates = 10000
	}
	if c.Synonyms.RefreshIntervalSec <= 0 {
		c.Synonyms.RefreshIntervalSec = 300
	}
	c.Search.applyDefaults()
}

func (s *SearchConfig) applyDefaults() {
	if s.Tolerance == (ToleranceConfig{}) {
		s.Tolerance = ToleranceConfig{ExactMaxLen: 3, OneEditMaxLen: 5, TwoEditsMaxLen: 8, LongTokenEdits: 3}
	}
	if s.MinSimilarity <= 0 {
		s.MinSimilarity = 0.5
	}
	if s.SubstringBonus <= 0 {
		s.SubstringBonus = 0.9
	}
	if s.SubstringMinLen <= 0 {
		s.SubstringMinLen = 3
	}
	if s.FuzzyLimit <= 0 {
		s.FuzzyLimit = 20
	}
	if s.DefaultLimit <= 0 {
		s.DefaultLimit = 50
	}
	if s.MaxLimit <= 0 {
		s.MaxLimit = 500
	}
	if s.FuzzyThreshold == nil {
		v := 5
		s.FuzzyThreshold = &v
	}
	if s.SuggestBelow <= 0 {
		s.SuggestBelow = 3
	}
	if s.MaxSuggestions <= 0 {
		s.MaxSuggestions = 3
	}
	if s.SuggestMinSimilarity <= 0 {
		s.SuggestMinSimilarity = 0.5
	}
	if s.SuggestMaxDistance <= 0 {
		s.SuggestMaxDistance = 3
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
	return c.Search.validate()
}

func (s *SearchConfig) validate() error {
	t := s.Tolerance
	if t.ExactMaxLen < 0 || t.ExactMaxLen > t.OneEditMaxLen || t.OneEditMaxLen > t.TwoEditsMaxLen {
		return fmt.Errorf("search.tolerance breakpoints must be non-negative and non-decreasing")
	}
	if t.LongTokenEdits < 2 {
		return fmt.Errorf("search.tolerance.long_token_edits must be at least 2, got %d", t.LongTokenEdits)
	}
	for name, v := range map[string]float64{
		"min_similarity":         s.MinSimilarity,
		"substring_bonus":        s.SubstringBonus,
		"suggest_min_similarity": s.SuggestMinSimilarity,
	} {
		if v > 1 {
			return fmt.Errorf("search.%s must be in (0, 1], got %g", name, v)
		}
	}
	if s.DefaultLimit > s.MaxLimit {
		return fmt.Errorf("search.default_limit (%d) exceeds search.max_limit (%d)", s.DefaultLimit, s.MaxLimit)
	}
	if s.MaxLimit > filter.MaxLimit {
		return fmt.Errorf("search.max_limit must not exceed %d, got %d", filter.MaxLimit, s.MaxLimit)
	}
	if *s.FuzzyThreshold < 0 {
		return fmt.Errorf("search.fuzzy_threshold must not be negative, got %d", *s.FuzzyThreshold)
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
