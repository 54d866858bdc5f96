package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer"
	"github.com/ParticlesofMind/english-language-analysis/pkg/kafka"
	"github.com/ParticlesofMind/english-language-analysis/pkg/metrics"
)

// maxLatencySamples bounds the latency reservoir; older samples are
// overwritten ring-buffer style.
const maxLatencySamples = 10000

// Stats is the aggregated view served by the analytics API and persisted in
// snapshots.
type Stats struct {
	TotalAnalyses    int64            `json:"total_analyses"`
	TotalComparisons int64            `json:"total_comparisons"`
	Rejected         int64            `json:"rejected"`
	Warned           int64            `json:"warned"`
	CacheHits        int64            `json:"cache_hits"`
	CacheMisses      int64            `json:"cache_misses"`
	WordsAnalysed    int64            `json:"words_analysed"`
	ByLanguage       []LanguageCount  `json:"comparisons_by_language"`
	MeanMetrics      analyzer.Metrics `json:"mean_metrics"`
	AvgLatencyUs     float64          `json:"avg_latency_us"`
	P50LatencyUs     int64            `json:"p50_latency_us"`
	P95LatencyUs     int64            `json:"p95_latency_us"`
	P99LatencyUs     int64            `json:"p99_latency_us"`
	RequestsPerMin   float64          `json:"requests_per_minute"`
	Since            time.Time        `json:"since"`
}

type LanguageCount struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}

// Aggregator folds AnalysisEvents into running totals.
type Aggregator struct {
	mu          sync.RWMutex
	analyses    int64
	comparisons int64
	rejected    int64
	warned      int64
	cacheHits   int64
	cacheMisses int64
	words       int64
	byLanguage  map[string]int64
	sums        metricSums
	measured    int64
	latencies   []int64
	next        int
	startTime   time.Time
	now         func() time.Time

	metrics *metrics.Metrics
	logger  *slog.Logger
}

type metricSums struct {
	lexicalDensity, averageWordLength, latinRatio, syllableComplexity, spellingPredictability float64
}

// NewAggregator creates an empty aggregator. m may be nil.
func NewAggregator(m *metrics.Metrics) *Aggregator {
	return &Aggregator{
		byLanguage: make(map[string]int64),
		latencies:  make([]int64, 0, 1024),
		startTime:  time.Now(),
		now:        time.Now,
		metrics:    m,
		logger:     slog.Default().With("component", "analytics-aggregator"),
	}
}

// HandleEvent adapts agg to a Kafka message handler. Malformed messages are
// logged and acknowledged so they do not block the partition.
func HandleEvent(agg *Aggregator) kafka.MessageHandler {
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[AnalysisEvent](value)
		if err != nil || event.Type == "" {
			agg.logger.Error("failed to decode analysis event", "key", string(key), "error", err)
			agg.countConsumed("malformed")
			return nil
		}
		agg.Record(event)
		agg.countConsumed("ok")
		return nil
	}
}

// Record folds one event into the totals.
func (a *Aggregator) Record(event AnalysisEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch event.Type {
	case EventRejected:
		a.rejected++
		return
	case EventCompare:
		a.comparisons++
		if event.Language != "" {
			a.byLanguage[event.Language]++
		}
	default:
		a.analyses++
	}
	if event.Warned {
		a.warned++
	}
	if event.CacheHit {
		a.cacheHits++
	} else {
		a.cacheMisses++
	}
	if m := event.Metrics; m != nil {
		a.words += int64(m.TotalWords)
		a.measured++
		a.sums.lexicalDensity += m.LexicalDensity
		a.sums.averageWordLength += m.AverageWordLength
		a.sums.latinRatio += m.LatinRatio
		a.sums.syllableComplexity += m.SyllableComplexity
		a.sums.spellingPredictability += m.SpellingPredictability
	}
	if len(a.latencies) < maxLatencySamples {
		a.latencies = append(a.latencies, event.LatencyUs)
	} else {
		a.latencies[a.next] = event.LatencyUs
		a.next = (a.next + 1) % maxLatencySamples
	}
}

// Stats returns a consistent copy of the current totals.
func (a *Aggregator) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := Stats{
		TotalAnalyses:    a.analyses,
		TotalComparisons: a.comparisons,
		Rejected:         a.rejected,
		Warned:           a.warned,
		CacheHits:        a.cacheHits,
		CacheMisses:      a.cacheMisses,
		WordsAnalysed:    a.words,
		ByLanguage:       languageCounts(a.byLanguage),
		Since:            a.startTime.UTC(),
	}
	if a.measured > 0 {
		n := float64(a.measured)
		stats.MeanMetrics = analyzer.Metrics{
			LexicalDensity:         a.sums.lexicalDensity / n,
			AverageWordLength:      a.sums.averageWordLength / n,
			LatinRatio:             a.sums.latinRatio / n,
			SyllableComplexity:     a.sums.syllableComplexity / n,
			SpellingPredictability: a.sums.spellingPredictability / n,
		}
	}
	if len(a.latencies) > 0 {
		sorted := make([]int64, len(a.latencies))
		copy(sorted, a.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyUs = float64(sum) / float64(len(sorted))
		stats.P50LatencyUs = percentile(sorted, 50)
		stats.P95LatencyUs = percentile(sorted, 95)
		stats.P99LatencyUs = percentile(sorted, 99)
	}
	if elapsed := a.now().Sub(a.startTime).Minutes(); elapsed > 0 {
		stats.RequestsPerMin = float64(a.analyses+a.comparisons+a.rejected) / elapsed
	}
	return stats
}

func (a *Aggregator) countConsumed(result string) {
	if a.metrics != nil {
		a.metrics.EventsConsumedTotal.WithLabelValues(result).Inc()
	}
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// languageCounts orders by count descending, then by name.
func languageCounts(counts map[string]int64) []LanguageCount {
	result := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		result = append(result, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Language < result[j].Language
	})
	return result
}
