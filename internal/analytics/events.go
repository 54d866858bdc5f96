package analytics

import (
	"time"

	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer"
)

type EventType string

const (
	EventAnalyze  EventType = "analyze"
	EventCompare  EventType = "compare"
	EventRejected EventType = "rejected"
)

// AnalysisEvent is published once per analyze or compare request. The text
// itself is never shipped, only its size and metrics.
type AnalysisEvent struct {
	Type      EventType         `json:"type"`
	Language  string            `json:"language,omitempty"`
	Chars     int               `json:"chars"`
	Metrics   *analyzer.Metrics `json:"metrics,omitempty"`
	Warned    bool              `json:"warned"`
	CacheHit  bool              `json:"cache_hit"`
	LatencyUs int64             `json:"latency_us"`
	Timestamp time.Time         `json:"timestamp"`
	RequestID string            `json:"request_id,omitempty"`
}

// PartitionKey routes comparisons by language and everything else together.
func (e AnalysisEvent) PartitionKey() string {
	if e.Language != "" {
		return string(e.Type) + ":" + e.Language
	}
	return string(e.Type)
}
