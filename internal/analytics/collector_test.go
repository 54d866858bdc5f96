package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ParticlesofMind/english-language-analysis/pkg/kafka"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.Event
	err    error
}

func (p *fakePublisher) PublishBatch(_ context.Context, events []kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestCollectorFlushesOnClose(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 16)
	c.Start(context.Background())

	for i := 0; i < 5; i++ {
		c.Track(AnalysisEvent{Type: EventAnalyze})
	}
	c.Track(AnalysisEvent{Type: EventCompare, Language: "french"})
	c.Close()

	if got := pub.count(); got != 6 {
		t.Fatalf("published %d events, want 6", got)
	}
	if key := pub.events[5].Key; key != "compare:french" {
		t.Errorf("last key = %q, want compare:french", key)
	}
}

func TestCollectorFlushesOnCancel(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 16)
	ctx, cancel := context.WithCancel(context.Background())
	c.Track(AnalysisEvent{Type: EventAnalyze})
	c.Track(AnalysisEvent{Type: EventAnalyze})
	c.Start(ctx)
	cancel()
	c.Close()

	if got := pub.count(); got != 2 {
		t.Errorf("published %d events, want 2", got)
	}
}

func TestCollectorDropsWhenFull(t *testing.T) {
	c := NewCollector(&fakePublisher{}, 2)
	for i := 0; i < 5; i++ {
		c.Track(AnalysisEvent{Type: EventAnalyze})
	}
	if got := c.Dropped(); got != 3 {
		t.Errorf("Dropped = %d, want 3", got)
	}
}

func TestCollectorSurvivesPublishErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker unavailable")}
	c := NewCollector(pub, 4)
	c.Start(context.Background())
	c.Track(AnalysisEvent{Type: EventAnalyze})
	c.Close()
	if got := pub.count(); got != 0 {
		t.Errorf("published %d events, want 0", got)
	}
}

func TestCollectorTrackAfterClose(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 4)
	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	cancel()
	c.Close()

	c.Track(AnalysisEvent{Type: EventAnalyze})
	c.Close()

	if got := c.Dropped(); got != 1 {
		t.Errorf("Dropped = %d, want 1", got)
	}
	if got := pub.count(); got != 0 {
		t.Errorf("published %d events after close, want 0", got)
	}
}

func TestCollectorConcurrentTrackAndClose(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 1024)
	c.Start(context.Background())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				c.Track(AnalysisEvent{Type: EventAnalyze})
			}
		}()
	}
	c.Close()
	wg.Wait()

	if got := int64(pub.count()) + c.Dropped(); got != 400 {
		t.Errorf("published + dropped = %d, want 400", got)
	}
}
