package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the analyzer API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Limits    LimitsConfig    `yaml:"limits"`
	Storage   StorageConfig   `yaml:"storage"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Model     ModelConfig     `yaml:"model"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. An empty key list
// disables authentication.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

// RateLimitConfig holds request throttling settings.
type RateLimitConfig struct {
	GlobalPerHour    int `yaml:"global_per_hour"`
	AnalyzePerMinute int `yaml:"analyze_per_minute"`
	BatchPerMinute   int `yaml:"batch_per_minute"`
}

// LimitsConfig holds input size bounds enforced at the API boundary.
type LimitsConfig struct {
	MinTextChars  int `yaml:"min_text_chars"`
	MaxTextChars  int `yaml:"max_text_chars"`
	MaxBatchItems int `yaml:"max_batch_items"`
}

// StorageConfig holds model artifact storage settings.
type StorageConfig struct {
	Driver           string   `yaml:"driver"` // file, redis (default: file)
	Dir              string   `yaml:"dir"`    // file driver
	Addrs            []string `yaml:"addrs"`  // redis driver
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CorpusConfig holds training data settings. AllowSampleFallback lets a
// deployment with no CSVs train on the built-in sample corpus.
type CorpusConfig struct {
	AuthenticCSV        string `yaml:"authentic_csv"`
	FabricatedCSV       string `yaml:"fabricated_csv"`
	AllowSampleFallback bool   `yaml:"allow_sample_fallback"`
}

// ModelConfig holds vectorizer, classifier and training-split settings.
type ModelConfig struct {
	MaxFeatures     int     `yaml:"max_features"`
	NGramMin        int     `yaml:"ngram_min"`
	NGramMax        int     `yaml:"ngram_max"`
	MinDocFreq      int     `yaml:"min_doc_freq"`
	MaxDocRatio     float64 `yaml:"max_doc_ratio"`
	Trees           int     `yaml:"trees"`
	MaxDepth        int     `yaml:"max_depth"`
	MinSamplesSplit int     `yaml:"min_samples_split"`
	MinSamplesLeaf  int     `yaml:"min_samples_leaf"`
	Seed            int64   `yaml:"seed"`
	TrainRatio      float64 `yaml:"train_ratio"`
	TrainOnStart    bool    `yaml:"train_on_start"`
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
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"*"}
	}
	if c.RateLimit.GlobalPerHour <= 0 {
		c.RateLimit.GlobalPerHour = 100
	}
	if c.RateLimit.AnalyzePerMinute <= 0 {
		c.RateLimit.AnalyzePerMinute = 20
	}
	if c.RateLimit.BatchPerMinute <= 0 {
		c.RateLimit.BatchPerMinute = 5
	}
	if c.Limits.MinTextChars <= 0 {
		c.Limits.MinTextChars = 10
	}
	if c.Limits.MaxTextChars <= 0 {
		c.Limits.MaxTextChars = 50000
	}
	if c.Limits.MaxBatchItems <= 0 {
		c.Limits.MaxBatchItems = 10
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "models"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "fna:"
	}
	if c.Storage.ReadinessTimeout <= 0 {
		c.Storage.ReadinessTimeout = 10
	}
	if c.Corpus.AuthenticCSV == "" {
		c.Corpus.AuthenticCSV = "data/True.csv"
	}
	if c.Corpus.FabricatedCSV == "" {
		c.Corpus.FabricatedCSV = "data/Fake.csv"
	}
	if c.Model.MaxFeatures <= 0 {
		c.Model.MaxFeatures = 5000
	}
	if c.Model.NGramMin <= 0 {
		c.Model.NGramMin = 1
	}
	if c.Model.NGramMax <= 0 {
		c.Model.NGramMax = 3
	}
	if c.Model.MinDocFreq <= 0 {
		c.Model.MinDocFreq = 2
	}
	if c.Model.MaxDocRatio <= 0 || c.Model.MaxDocRatio > 1 {
		c.Model.MaxDocRatio = 0.9
	}
	if c.Model.Trees <= 0 {
		c.Model.Trees = 100
	}
	if c.Model.MaxDepth <= 0 {
		c.Model.MaxDepth = 20
	}
	if c.Model.MinSamplesSplit <= 0 {
		c.Model.MinSamplesSplit = 5
	}
	if c.Model.MinSamplesLeaf <= 0 {
		c.Model.MinSamplesLeaf = 2
	}
	if c.Model.Seed == 0 {
		c.Model.Seed = 42
	}
	if c.Model.TrainRatio <= 0 || c.Model.TrainRatio >= 1 {
		c.Model.TrainRatio = 0.8
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case "file":
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file driver")
		}
	case "redis":
		if len(c.Storage.Addrs) == 0 {
			return fmt.Errorf("storage.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("storage.driver must be \"file\" or \"redis\", got %q", c.Storage.Driver)
	}
	if c.Model.NGramMax < c.Model.NGramMin {
		return fmt.Errorf(
			"model.ngram_max must be >= model.ngram_min, got %d..%d",
			c.Model.NGramMin, c.Model.NGramMax,
		)
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
