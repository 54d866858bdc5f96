// Package handler serves the analysis HTTP API: analyze, compare, the
// reference samples and the result cache controls.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ParticlesofMind/english-language-analysis/internal/analytics"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/validator"
	"github.com/ParticlesofMind/english-language-analysis/internal/api/cache"
	"github.com/ParticlesofMind/english-language-analysis/internal/report"
	"github.com/ParticlesofMind/english-language-analysis/internal/samples"
	apperrors "github.com/ParticlesofMind/english-language-analysis/pkg/errors"
	"github.com/ParticlesofMind/english-language-analysis/pkg/logger"
	"github.com/ParticlesofMind/english-language-analysis/pkg/metrics"
	"github.com/ParticlesofMind/english-language-analysis/pkg/middleware"
	"github.com/ParticlesofMind/english-language-analysis/pkg/tracing"
)

// Tracker is satisfied by *analytics.Collector.
type Tracker interface {
	Track(event analytics.AnalysisEvent)
}

// Handler holds the dependencies of the API. Cache, Tracker and Metrics are
// optional.
type Handler struct {
	corpus  *samples.Corpus
	cache   *cache.ResultCache
	tracker Tracker
	policy  validator.Policy
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Options carries the dependencies passed to New.
type Options struct {
	Corpus  *samples.Corpus
	Cache   *cache.ResultCache
	Tracker Tracker
	Policy  validator.Policy
	Metrics *metrics.Metrics
}

// New builds a Handler from opts.
func New(opts Options) *Handler {
	return &Handler{
		corpus:  opts.Corpus,
		cache:   opts.Cache,
		tracker: opts.Tracker,
		policy:  opts.Policy,
		metrics: opts.Metrics,
		logger:  slog.Default().With("component", "analysis-handler"),
	}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/analyze", h.Analyze)
	mux.HandleFunc("POST /api/v1/compare", h.Compare)
	mux.HandleFunc("GET /api/v1/samples", h.ListSamples)
	mux.HandleFunc("GET /api/v1/samples/{language}", h.GetSample)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse is the body of a successful POST /api/v1/analyze.
type AnalyzeResponse struct {
	Metrics   analyzer.Metrics         `json:"metrics"`
	Cards     []report.Card            `json:"cards"`
	Breakdown analyzer.OriginBreakdown `json:"breakdown"`
	Warnings  []string                 `json:"warnings"`
	CacheHit  bool                     `json:"cache_hit"`
}

type compareRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// CompareResponse is the body of a successful POST /api/v1/compare.
type CompareResponse struct {
	Language    samples.Language `json:"language"`
	Title       string           `json:"title"`
	Source      string           `json:"source"`
	Excerpt     string           `json:"excerpt"`
	User        analyzer.Metrics `json:"user"`
	Sample      analyzer.Metrics `json:"sample"`
	UserCards   []report.Card    `json:"user_cards"`
	SampleCards []report.Card    `json:"sample_cards"`
	Deltas      analyzer.Deltas  `json:"deltas"`
	Warnings    []string         `json:"warnings"`
	CacheHit    bool             `json:"cache_hit"`
}

// Analyze serves POST /api/v1/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req analyzeRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "analyze", err)
		return
	}
	assessment, err := h.validate(r, req.Text)
	if err != nil {
		h.reject(w, r, "analyze", assessment, err)
		return
	}

	m, hit, err := h.compute(r, "analyze", req.Text)
	if err != nil {
		h.fail(w, r, "analyze", err)
		return
	}

	h.observe(r, analytics.AnalysisEvent{
		Type:     analytics.EventAnalyze,
		Chars:    assessment.Chars,
		Metrics:  &m,
		Warned:   len(assessment.Warnings) > 0,
		CacheHit: hit,
	}, start)

	h.writeJSON(w, http.StatusOK, AnalyzeResponse{
		Metrics:   m,
		Cards:     report.Cards(m),
		Breakdown: analyzer.Breakdown(m),
		Warnings:  warnings(assessment),
		CacheHit:  hit,
	})
}

// Compare serves POST /api/v1/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req compareRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "compare", err)
		return
	}
	if req.Language == "" {
		h.fail(w, r, "compare", apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "language is required"))
		return
	}
	sample, err := h.sample(req.Language)
	if err != nil {
		h.fail(w, r, "compare", err)
		return
	}
	assessment, err := h.validate(r, req.Text)
	if err != nil {
		h.reject(w, r, "compare", assessment, err)
		return
	}

	m, hit, err := h.compute(r, "compare", req.Text)
	if err != nil {
		h.fail(w, r, "compare", err)
		return
	}
	if h.metrics != nil {
		h.metrics.ComparisonsTotal.WithLabelValues(string(sample.Language)).Inc()
	}

	h.observe(r, analytics.AnalysisEvent{
		Type:     analytics.EventCompare,
		Language: string(sample.Language),
		Chars:    assessment.Chars,
		Metrics:  &m,
		Warned:   len(assessment.Warnings) > 0,
		CacheHit: hit,
	}, start)

	h.writeJSON(w, http.StatusOK, CompareResponse{
		Language:    sample.Language,
		Title:       sample.Title,
		Source:      sample.Attribution,
		Excerpt:     sample.Excerpt,
		User:        m,
		Sample:      sample.Metrics,
		UserCards:   report.Cards(m),
		SampleCards: report.Cards(sample.Metrics),
		Deltas:      analyzer.Compare(m, sample.Metrics),
		Warnings:    warnings(assessment),
		CacheHit:    hit,
	})
}

// ListSamples serves GET /api/v1/samples.
func (h *Handler) ListSamples(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.corpus.All())
}

// GetSample serves GET /api/v1/samples/{language}.
func (h *Handler) GetSample(w http.ResponseWriter, r *http.Request) {
	sample, err := h.sample(r.PathValue("language"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sample)
}

// CacheStats serves GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
		"circuit":  h.cache.Circuit().String(),
	})
}

// CacheInvalidate serves POST /api/v1/cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "caching is disabled"})
		return
	}
	deleted, err := h.cache.Invalidate(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("cache invalidation failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cache invalidation failed"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"status": "invalidated", "keys_deleted": deleted})
}

func (h *Handler) sample(raw string) (samples.Sample, error) {
	lang, err := samples.ParseLanguage(raw)
	if err != nil {
		return samples.Sample{}, err
	}
	sample, ok := h.corpus.Get(lang)
	if !ok {
		return samples.Sample{}, apperrors.Newf(apperrors.ErrUnknownLanguage, http.StatusNotFound, "sample %q is not loaded", lang)
	}
	return sample, nil
}

func (h *Handler) validate(r *http.Request, text string) (validator.Assessment, error) {
	_, span := tracing.StartChildSpan(r.Context(), "validate")
	defer span.End()
	a, err := validator.Check(text, h.policy)
	span.SetAttr("chars", a.Chars)
	return a, err
}

// compute runs the engine through the cache when there is one. The engine
// itself cannot fail; errors only come from a cancelled request.
func (h *Handler) compute(r *http.Request, kind, text string) (analyzer.Metrics, bool, error) {
	ctx, span := tracing.StartChildSpan(r.Context(), "compute")
	defer span.End()

	run := func(ctx context.Context) (analyzer.Metrics, error) {
		if err := ctx.Err(); err != nil {
			return analyzer.Metrics{}, err
		}
		_, engine := tracing.StartChildSpan(ctx, "engine")
		start := time.Now()
		m := analyzer.Compute(text)
		engine.End()
		engine.SetAttr("words", m.TotalWords)
		if h.metrics != nil {
			h.metrics.AnalysisDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
			h.metrics.TokensPerAnalysis.Observe(float64(m.TotalWords))
		}
		return m, nil
	}
	var (
		m   analyzer.Metrics
		hit bool
		err error
	)
	if h.cache == nil {
		m, err = run(ctx)
	} else {
		m, hit, err = h.cache.GetOrCompute(ctx, text, run)
		span.SetAttr("cache_hit", hit)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.New(apperrors.ErrTimeout, http.StatusServiceUnavailable, "request cancelled")
	}
	return m, hit, err
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	limit := int64(h.policy.MaxBytes)
	if limit <= 0 {
		limit = 1 << 20
	}
	// JSON escaping can grow the payload well past the raw text size.
	r.Body = http.MaxBytesReader(w, r.Body, limit*2+1024)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.New(apperrors.ErrTextTooLong, http.StatusRequestEntityTooLarge, "request body too large")
		}
		return apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "request body must be JSON")
	}
	return nil
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, kind string, a validator.Assessment, err error) {
	if h.metrics != nil {
		h.metrics.AnalysesTotal.WithLabelValues(kind, "rejected").Inc()
	}
	if h.tracker != nil {
		h.tracker.Track(analytics.AnalysisEvent{
			Type:      analytics.EventRejected,
			Chars:     a.Chars,
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		})
	}
	logger.FromContext(r.Context()).Info("text rejected", "kind", kind, "chars", a.Chars, "reason", apperrors.Message(err))
	h.writeError(w, err)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, kind string, err error) {
	outcome := "invalid"
	if apperrors.HTTPStatusCode(err) >= http.StatusInternalServerError {
		outcome = "error"
		logger.FromContext(r.Context()).Error("analysis failed", "kind", kind, "error", err)
	}
	if h.metrics != nil {
		h.metrics.AnalysesTotal.WithLabelValues(kind, outcome).Inc()
	}
	h.writeError(w, err)
}

func (h *Handler) observe(r *http.Request, event analytics.AnalysisEvent, start time.Time) {
	latency := time.Since(start)
	if h.metrics != nil {
		h.metrics.AnalysesTotal.WithLabelValues(string(event.Type), "ok").Inc()
	}
	logger.FromContext(r.Context()).Info("analysis completed",
		"kind", event.Type,
		"language", event.Language,
		"words", event.Metrics.TotalWords,
		"cache_hit", event.CacheHit,
		"latency_us", latency.Microseconds(),
	)
	if h.tracker == nil {
		return
	}
	event.LatencyUs = latency.Microseconds()
	event.Timestamp = time.Now().UTC()
	event.RequestID = middleware.GetRequestID(r.Context())
	h.tracker.Track(event)
}

func warnings(a validator.Assessment) []string {
	if a.Warnings == nil {
		return []string{}
	}
	return a.Warnings
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, apperrors.HTTPStatusCode(err), map[string]string{"error": apperrors.Message(err)})
}
