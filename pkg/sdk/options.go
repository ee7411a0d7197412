package analyzer

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	pipelineuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/pipeline"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "file" or "redis"
	dir       string
	addrs     []string
	username  string
	password  string
	db        int
	keyPrefix string

	fabricatedCSV string
	authenticCSV  string
	strictCorpus  bool

	pipeline pipelineuc.Config

	minTextChars int
	maxTextChars int

	httpClient *http.Client

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		driver:        "file",
		dir:           "models",
		keyPrefix:     "fna:",
		fabricatedCSV: "data/Fake.csv",
		authenticCSV:  "data/True.csv",
		pipeline:      pipelineuc.DefaultConfig(),
		minTextChars:  10,
		maxTextChars:  50000,
	}
}

// WithFileStore persists models under dir on the local filesystem.
// This is the default, with dir "models".
func WithFileStore(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "file"
		c.dir = dir
	})
}

// WithRedis persists models in a Redis instance so multiple processes
// can share one trained model.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the Redis key namespace. Default: "fna:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithCorpus points training at explicit CSV sources, one file per
// class. Defaults: data/Fake.csv and data/True.csv.
func WithCorpus(fabricatedCSV, authenticCSV string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fabricatedCSV = fabricatedCSV
		c.authenticCSV = authenticCSV
	})
}

// WithStrictCorpus makes training fail when a corpus source file is
// missing. By default a small bootstrap corpus is synthesized instead,
// which suits first runs and experiments but not production training.
func WithStrictCorpus() Option {
	return optionFunc(func(c *clientConfig) {
		c.strictCorpus = true
	})
}

// WithMaxFeatures caps the TF-IDF vocabulary size. Default: 5000.
func WithMaxFeatures(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pipeline.Vectorizer.MaxFeatures = n
	})
}

// WithNGramRange sets the n-gram window for vocabulary extraction.
// Default: (1, 3).
func WithNGramRange(min, max int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pipeline.Vectorizer.NGramMin = min
		c.pipeline.Vectorizer.NGramMax = max
	})
}

// WithTreeCount sets the random-forest ensemble size. Default: 100.
func WithTreeCount(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pipeline.Classifier.NumTrees = n
	})
}

// WithSeed fixes the random seed used for bootstrap sampling and the
// train/test split, making training runs reproducible. Default: 42.
func WithSeed(seed int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.pipeline.Classifier.Seed = seed
		c.pipeline.SplitSeed = seed
	})
}

// WithTextBounds sets the analyzable text window in runes: the trimmed
// text must reach min and the raw text must not exceed max.
// Defaults: 10 and 50000.
func WithTextBounds(min, max int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minTextChars = min
		c.maxTextChars = max
	})
}

// WithHTTPClient sets the HTTP client used by AnalyzeURL to fetch
// articles. Pass nil for the default 10 second timeout client.
func WithHTTPClient(client *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = client
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and
// durations) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
