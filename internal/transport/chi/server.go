package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	healthuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/health"
	pipelineuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/pipeline"
)

// ArticleFetcher retrieves readable article text for url-type inputs.
type ArticleFetcher interface {
	ArticleText(ctx context.Context, url string) (string, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Config carries the transport knobs: CORS origins, rate limits, the
// analyzable text window, and the vectorizer facts echoed by model-info.
type Config struct {
	CORSOrigins      []string
	GlobalPerHour    int
	AnalyzePerMinute int
	BatchPerMinute   int

	MinTextChars  int
	MaxTextChars  int
	MaxBatchItems int

	MaxFeatures int
	NGramMin    int
	NGramMax    int
}

// Server exposes the analysis pipeline over HTTP.
type Server struct {
	pipeline      *pipelineuc.Service
	health        *healthuc.Service
	fetcher       ArticleFetcher
	cfg           Config
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	pipeline *pipelineuc.Service,
	health *healthuc.Service,
	fetcher ArticleFetcher,
	cfg Config,
	logger *zap.Logger,
) *Server {
	s := &Server{
		pipeline: pipeline,
		health:   health,
		fetcher:  fetcher,
		cfg:      cfg,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotTrained, http.StatusServiceUnavailable, "Model not trained yet"),
		sentinelHandler(domain.ErrEmptyInput, http.StatusBadRequest, "Text is empty after preprocessing"),
	}
	return s
}

// Mount attaches the API routes. Authentication and request middleware
// are applied by the caller; CORS and rate limits live on the /api
// subtree so health and metrics stay unthrottled.
func (s *Server) Mount(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
			MaxAge:         300,
		}))
		api.Use(s.rateLimiter(s.cfg.GlobalPerHour, time.Hour))

		api.With(s.rateLimiter(s.cfg.AnalyzePerMinute, time.Minute)).
			Post("/analyze", s.Analyze)
		api.With(s.rateLimiter(s.cfg.BatchPerMinute, time.Minute)).
			Post("/batch-analyze", s.BatchAnalyze)
		api.Post("/train", s.Train)
		api.Get("/model-info", s.ModelInfo)
	})
}

// rateLimiter builds a per-client-IP limiter whose 429 body names the
// exhausted window, e.g. "20 per 1 minute".
func (s *Server) rateLimiter(limit int, window time.Duration) func(http.Handler) http.Handler {
	unit := "minute"
	if window >= time.Hour {
		unit = "hour"
	}
	description := fmt.Sprintf("%d per 1 %s", limit, unit)

	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Warn("rate limit exceeded",
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, rateLimitResponse{
				Error:   "Rate limit exceeded",
				Message: description,
			})
		}),
	)
}

// Analyze handles POST /api/analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content cannot be empty")
		return
	}

	inputType := req.Type
	if inputType == "" {
		inputType = "text"
	}
	if inputType != "text" && inputType != "url" {
		writeError(w, http.StatusBadRequest, `Invalid input type. Use "text" or "url"`)
		return
	}

	text := req.Content
	if inputType == "url" {
		fetched, err := s.fetcher.ArticleText(r.Context(), req.Content)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		text = fetched
	}

	if err := domain.ValidateTextBounds(text, s.cfg.MinTextChars, s.cfg.MaxTextChars); err != nil {
		writeError(w, http.StatusBadRequest, s.boundsMessage(err))
		return
	}

	pred, err := s.pipeline.Predict(r.Context(), text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.logger.Info("prediction served",
		zap.String("prediction", pred.Label.String()),
		zap.Float64("confidence", pred.Confidence))

	writeJSON(w, http.StatusOK, analyzeResponse{
		AnalysisPayload: toAnalysisPayload(pred),
		Timestamp:       timestamp(),
		InputType:       inputType,
		TextLength:      utf8.RuneCountInString(text),
	})
}

// BatchAnalyze handles POST /api/batch-analyze. Items fail individually:
// a bad item yields an {item_id, error} entry without sinking the batch.
func (s *Server) BatchAnalyze(w http.ResponseWriter, r *http.Request) {
	var req batchAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "items" {
			writeError(w, http.StatusBadRequest, "Items must be a list")
			return
		}
		writeError(w, http.StatusBadRequest, "No items provided")
		return
	}

	if req.Items == nil {
		writeError(w, http.StatusBadRequest, "No items provided")
		return
	}

	if len(req.Items) > s.cfg.MaxBatchItems {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Maximum %d items per batch", s.cfg.MaxBatchItems))
		return
	}

	results := make([]batchItemResponse, 0, len(req.Items))
	for idx, item := range req.Items {
		results = append(results, s.analyzeBatchItem(r.Context(), idx, item))
	}

	writeJSON(w, http.StatusOK, batchAnalyzeResponse{
		Results:   results,
		Total:     len(results),
		Timestamp: timestamp(),
	})
}

func (s *Server) analyzeBatchItem(ctx context.Context, idx int, item analyzeRequest) batchItemResponse {
	text := item.Content
	if item.Type == "url" {
		fetched, err := s.fetcher.ArticleText(ctx, item.Content)
		if err != nil {
			return batchItemResponse{ItemID: idx, Error: err.Error()}
		}
		text = fetched
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < s.cfg.MinTextChars {
		return batchItemResponse{ItemID: idx, Error: "Text too short"}
	}

	pred, err := s.pipeline.Predict(ctx, text)
	if err != nil {
		s.logger.Warn("batch item failed", zap.Int("item_id", idx), zap.Error(err))
		return batchItemResponse{ItemID: idx, Error: batchErrorMessage(err)}
	}

	payload := toAnalysisPayload(pred)
	return batchItemResponse{AnalysisPayload: &payload, ItemID: idx}
}

// Train handles POST /api/train.
func (s *Server) Train(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("training requested")

	accuracy, err := s.pipeline.Train(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrTrainingInProgress) {
			status = http.StatusConflict
		}
		s.logger.Error("training failed", zap.Error(err))
		writeJSON(w, status, trainResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, trainResponse{
		Success:   true,
		Accuracy:  domain.Round2(accuracy * 100),
		Message:   "Model trained successfully!",
		Timestamp: timestamp(),
	})
}

// ModelInfo handles GET /api/model-info.
func (s *Server) ModelInfo(w http.ResponseWriter, r *http.Request) {
	st := s.pipeline.Status(r.Context())

	resp := modelInfoResponse{
		IsTrained:   st.Trained,
		ModelType:   "Random Forest",
		MaxFeatures: s.cfg.MaxFeatures,
		NGramRange:  [2]int{s.cfg.NGramMin, s.cfg.NGramMax},
		Timestamp:   timestamp(),
	}
	if st.Info != nil {
		resp.TreeCount = st.Info.TreeCount
		resp.Accuracy = fmt.Sprintf("%.1f%%", st.Info.Accuracy*100)
		resp.SnapshotID = st.Info.ID
		resp.TrainedAt = st.Info.TrainedAt.UTC().Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:       string(report.Status),
		ModelTrained: report.ModelTrained,
		Checks:       checks,
		Timestamp:    timestamp(),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func toAnalysisPayload(pred domain.Prediction) AnalysisPayload {
	return AnalysisPayload{
		Prediction: pred.Label.String(),
		Confidence: pred.Confidence,
		Label:      int(pred.Label),
		Probabilities: probabilitiesPayload{
			Fabricated: pred.Probabilities[domain.Fabricated.Key()],
			Authentic:  pred.Probabilities[domain.Authentic.Key()],
		},
		Features: featuresPayload{
			CharCount:        pred.Features.CharCount,
			WordCount:        pred.Features.WordCount,
			AvgWordLength:    pred.Features.AvgWordLength,
			ExclamationCount: pred.Features.ExclamationCount,
			QuestionCount:    pred.Features.QuestionCount,
			CapitalRatio:     pred.Features.CapitalRatio,
			SensationalCount: pred.Features.SensationalCount,
			EmotionalCount:   pred.Features.EmotionalCount,
		},
	}
}

// boundsMessage renders the public copy for a text-bounds violation.
func (s *Server) boundsMessage(err error) string {
	if errors.Is(err, domain.ErrTextTooShort) {
		return fmt.Sprintf("Text too short (minimum %s characters)", formatThousands(s.cfg.MinTextChars))
	}
	return fmt.Sprintf("Text too long (maximum %s characters)", formatThousands(s.cfg.MaxTextChars))
}

// batchErrorMessage maps a per-item prediction failure to its public copy.
func batchErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotTrained):
		return "Model not trained yet"
	case errors.Is(err, domain.ErrEmptyInput):
		return "Text is empty after preprocessing"
	default:
		return "Internal server error"
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error and writes its public message.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// formatThousands renders n with comma separators for user-facing copy
// ("50000" reads as "50,000").
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
