package analyzer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/artifact"
	filestore "github.com/lost-boy7/Fake-News-Analyzer/internal/artifact/file"
	redisstore "github.com/lost-boy7/Fake-News-Analyzer/internal/artifact/redis"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/corpus"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/fetch"
	modelrepo "github.com/lost-boy7/Fake-News-Analyzer/internal/repository/model"
	healthuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/health"
	pipelineuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/pipeline"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the wired services.
type pipelineUseCase interface {
	Train(ctx context.Context) (float64, error)
	Predict(ctx context.Context, text string) (domain.Prediction, error)
	Status(ctx context.Context) pipelineuc.Status
	LoadPersisted(ctx context.Context) (bool, error)
}

type articleFetcher interface {
	ArticleText(ctx context.Context, url string) (string, error)
}

// Client is the analyzer SDK entry point.
type Client struct {
	store     artifact.Store
	pipeline  pipelineUseCase
	healthSvc healthUseCase
	fetcher   articleFetcher
	obs       *observer

	minTextChars int
	maxTextChars int
}

// New creates an analyzer Client, connects its artifact store, and
// restores a previously persisted model if one exists. The provided
// context is used for the initial readiness check and restore.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("analyzer: artifact store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c := wireClient(store, cfg, obs)

	if _, err := c.pipeline.LoadPersisted(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("analyzer: restore persisted model: %w", err)
	}
	return c, nil
}

func createStore(cfg *clientConfig) (artifact.Store, error) {
	switch cfg.driver {
	case "file":
		s, err := filestore.NewStore(filestore.Config{Dir: cfg.dir})
		if err != nil {
			return nil, fmt.Errorf("analyzer: create file store: %w", err)
		}
		return s, nil
	case "redis":
		s, err := redisstore.NewStore(redisstore.Config{
			Addrs:     cfg.addrs,
			Username:  cfg.username,
			Password:  cfg.password,
			DB:        cfg.db,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("analyzer: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("analyzer: unknown driver %q", cfg.driver)
	}
}

func wireClient(store artifact.Store, cfg *clientConfig, obs *observer) *Client {
	// Internal services log through zap in the server; the SDK keeps
	// them quiet and reports through its own observer instead.
	repo := modelrepo.New(store, zap.NewNop())
	loader := corpus.NewLoader(corpus.Config{
		FabricatedPath:      cfg.fabricatedCSV,
		AuthenticPath:       cfg.authenticCSV,
		AllowSampleFallback: !cfg.strictCorpus,
	}, zap.NewNop())

	pipe := pipelineuc.New(cfg.pipeline, loader, repo, zap.NewNop())

	return &Client{
		store:        store,
		pipeline:     pipe,
		healthSvc:    healthuc.New(store, pipe),
		fetcher:      fetch.NewScraper(cfg.httpClient),
		obs:          obs,
		minTextChars: cfg.minTextChars,
		maxTextChars: cfg.maxTextChars,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks artifact store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Train builds a fresh model from the corpus, persists it, and makes it
// the serving model. Returns the held-out accuracy in [0, 1]. A failed
// run leaves any previously serving model untouched.
func (c *Client) Train(ctx context.Context) (accuracy float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("train", start, err) }()

	accuracy, err = c.pipeline.Train(ctx)
	if err != nil {
		return 0, fmt.Errorf("train: %w", err)
	}
	return accuracy, nil
}

// Analyze classifies a block of text. The trimmed text must reach the
// configured minimum length and the raw text must not exceed the
// maximum; violations return ErrTextTooShort or ErrTextTooLong.
func (c *Client) Analyze(ctx context.Context, text string) (v Verdict, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analyze", start, err) }()

	if err = domain.ValidateTextBounds(text, c.minTextChars, c.maxTextChars); err != nil {
		return Verdict{}, err
	}

	pred, err := c.pipeline.Predict(ctx, text)
	if err != nil {
		return Verdict{}, fmt.Errorf("analyze: %w", err)
	}
	return verdictFromDomain(pred), nil
}

// AnalyzeURL fetches an article and classifies its readable text. The
// fetched text is held to the same bounds as Analyze.
func (c *Client) AnalyzeURL(ctx context.Context, url string) (v Verdict, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analyze_url", start, err) }()

	text, err := c.fetcher.ArticleText(ctx, url)
	if err != nil {
		return Verdict{}, err
	}
	if err = domain.ValidateTextBounds(text, c.minTextChars, c.maxTextChars); err != nil {
		return Verdict{}, err
	}

	pred, err := c.pipeline.Predict(ctx, text)
	if err != nil {
		return Verdict{}, fmt.Errorf("analyze url: %w", err)
	}
	return verdictFromDomain(pred), nil
}

// Status reports the model lifecycle phase and serving snapshot.
func (c *Client) Status(ctx context.Context) Status {
	return statusFromDomain(c.pipeline.Status(ctx))
}
