package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the ranking service.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Search  SearchConfig  `yaml:"search"`
	Rank    RankConfig    `yaml:"rank"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SearchConfig holds search provider configuration. Credentials are read
// from the environment variables it names, never from the file itself.
type SearchConfig struct {
	Provider     string        `yaml:"provider"` // "google"; offline ranking uses --candidates
	APIKeyEnv    string        `yaml:"api_key_env"`
	EngineIDEnv  string        `yaml:"engine_id_env"`
	Endpoint     string        `yaml:"endpoint"`
	NumResults   int           `yaml:"num_results"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	RateLimit    float64       `yaml:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst    int           `yaml:"rate_burst"`
	ExcludeLinks []string      `yaml:"exclude_links"`
}

// RankConfig holds relevance ranking configuration.
type RankConfig struct {
	TopK       int              `yaml:"top_k"`
	MaxTopK    int              `yaml:"max_top_k"`
	Stemming   bool             `yaml:"stemming"`
	Stopwords  bool             `yaml:"stopwords"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
}

// Vocabulary modes.
const (
	VocabularyRequest   = "request"
	VocabularyMemory    = "memory"
	VocabularyPersisted = "persisted"
)

// VocabularyConfig selects where document frequencies come from.
type VocabularyConfig struct {
	Mode string `yaml:"mode"`
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console", "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			CORSOrigins:  []string{"*"},
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Search: SearchConfig{
			Provider:     "google",
			APIKeyEnv:    "GOOGLE_API_KEY",
			EngineIDEnv:  "GOOGLE_CSE_ID",
			NumResults:   10,
			Timeout:      10 * time.Second,
			MaxRetries:   2,
			RetryBackoff: 200 * time.Millisecond,
			RateLimit:    5,
			RateBurst:    5,
		},
		Rank: RankConfig{
			TopK:    3,
			MaxTopK: 10,
			Vocabulary: VocabularyConfig{
				Mode: VocabularyRequest,
				Path: filepath.Join(".searchrank", "vocabulary.db"),
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for searchrank.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "searchrank.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".searchrank", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Validate checks values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	if c.Search.NumResults <= 0 {
		return fmt.Errorf("search.num_results must be positive, got %d", c.Search.NumResults)
	}
	if c.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout must be positive, got %s", c.Search.Timeout)
	}
	if c.Rank.TopK <= 0 {
		return fmt.Errorf("rank.top_k must be positive, got %d", c.Rank.TopK)
	}
	if c.Rank.MaxTopK < c.Rank.TopK {
		return fmt.Errorf("rank.max_top_k (%d) must be >= rank.top_k (%d)", c.Rank.MaxTopK, c.Rank.TopK)
	}
	switch c.Rank.Vocabulary.Mode {
	case VocabularyRequest, VocabularyMemory, VocabularyPersisted:
	default:
		return fmt.Errorf("unknown rank.vocabulary.mode %q", c.Rank.Vocabulary.Mode)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Credentials resolves the provider credentials from the environment.
func (s SearchConfig) Credentials() (apiKey, engineID string) {
	return os.Getenv(s.APIKeyEnv), os.Getenv(s.EngineIDEnv)
}

// VocabularyPath resolves the vocabulary database path relative to dir.
func VocabularyPath(dir string, cfg VocabularyConfig) string {
	if filepath.IsAbs(cfg.Path) {
		return cfg.Path
	}
	return filepath.Join(dir, cfg.Path)
}
