// Package cache memoises analysis results in Redis, keyed by the normalized
// text so that whitespace and case variants share one entry. Reads and writes
// pass through a circuit breaker; while it is open the cache behaves as
// always-miss and analyses are computed directly.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/tokenizer"
	"github.com/ParticlesofMind/english-language-analysis/pkg/metrics"
	"github.com/ParticlesofMind/english-language-analysis/pkg/resilience"
	pkgredis "github.com/ParticlesofMind/english-language-analysis/pkg/redis"
)

const keyPrefix = "analysis:"

// Backend is the subset of *redis.Client the cache uses.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
}

type ResultCache struct {
	backend Backend
	ttl     time.Duration
	group   singleflight.Group
	breaker *resilience.CircuitBreaker
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// New wraps backend. m may be nil.
func New(backend Backend, ttl time.Duration, m *metrics.Metrics) *ResultCache {
	c := &ResultCache{
		backend: backend,
		ttl:     ttl,
		metrics: m,
		logger:  slog.Default().With("component", "result-cache"),
	}
	c.breaker = resilience.NewCircuitBreaker("result-cache", resilience.CircuitBreakerConfig{
		FailureThreshold: 5,
		ResetTimeout:     15 * time.Second,
		OnStateChange: func(_, to resilience.State) {
			if m != nil {
				m.CacheCircuitState.Set(float64(to))
			}
		},
	})
	return c
}

// Get looks text up. Backend failures count as misses.
func (c *ResultCache) Get(ctx context.Context, text string) (analyzer.Metrics, bool) {
	key := Key(text)
	var data string
	found := false
	err := c.breaker.Execute(func() error {
		var err error
		data, err = c.backend.Get(ctx, key)
		found = err == nil
		// A miss or an abandoned request says nothing about backend health.
		if pkgredis.IsNilError(err) || ctx.Err() != nil {
			return nil
		}
		return err
	})
	if err != nil && !errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.Error("cache get failed", "key", key, "error", err)
	}
	if !found {
		c.recordMiss()
		return analyzer.Metrics{}, false
	}
	var m analyzer.Metrics
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.recordMiss()
		return analyzer.Metrics{}, false
	}
	c.recordHit()
	return m, true
}

func (c *ResultCache) Set(ctx context.Context, text string, m analyzer.Metrics) {
	key := Key(text)
	data, err := json.Marshal(m)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	err = c.breaker.Execute(func() error {
		return c.backend.Set(ctx, key, data, c.ttl)
	})
	if err != nil && !errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached metrics for text or runs compute once per
// key, however many callers ask concurrently. The bool reports a cache hit.
// The shared computation runs on a context detached from any one caller's
// cancellation; a caller whose ctx ends stops waiting and gets ctx.Err().
func (c *ResultCache) GetOrCompute(
	ctx context.Context,
	text string,
	compute func(ctx context.Context) (analyzer.Metrics, error),
) (analyzer.Metrics, bool, error) {
	if m, ok := c.Get(ctx, text); ok {
		return m, true, nil
	}
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(Key(text), func() (any, error) {
		m, err := compute(shared)
		if err != nil {
			return nil, err
		}
		c.Set(shared, text, m)
		return m, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return analyzer.Metrics{}, false, res.Err
		}
		return res.Val.(analyzer.Metrics), false, nil
	case <-ctx.Done():
		return analyzer.Metrics{}, false, fmt.Errorf("waiting for analysis: %w", ctx.Err())
	}
}

// Invalidate deletes every cached result.
func (c *ResultCache) Invalidate(ctx context.Context) (int64, error) {
	deleted, err := c.backend.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return deleted, fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return deleted, nil
}

// Circuit reports the state of the breaker guarding the backend.
func (c *ResultCache) Circuit() resilience.State {
	return c.breaker.State()
}

func (c *ResultCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Key derives the cache key of text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(tokenizer.NormalizeText(text)))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

func (c *ResultCache) recordHit() {
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
}

func (c *ResultCache) recordMiss() {
	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}
