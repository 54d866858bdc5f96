package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeLister struct {
	snaps     []Snapshot
	err       error
	lastLimit int
}

func (f *fakeLister) ListSnapshots(_ context.Context, limit int) ([]Snapshot, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.snaps) {
		return f.snaps[:limit], nil
	}
	return f.snaps, nil
}

func TestHandlerStats(t *testing.T) {
	agg := NewAggregator(nil)
	agg.Record(AnalysisEvent{Type: EventAnalyze})
	h := NewHandler(agg, nil)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats Stats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalAnalyses != 1 {
		t.Errorf("TotalAnalyses = %d, want 1", stats.TotalAnalyses)
	}
}

func TestHandlerSnapshots(t *testing.T) {
	lister := &fakeLister{snaps: []Snapshot{
		{ID: 3, CapturedAt: time.Unix(300, 0).UTC()},
		{ID: 2, CapturedAt: time.Unix(200, 0).UTC()},
		{ID: 1, CapturedAt: time.Unix(100, 0).UTC()},
	}}
	h := NewHandler(NewAggregator(nil), lister)

	tests := []struct {
		query     string
		status    int
		wantLimit int
		wantLen   int
	}{
		{"", http.StatusOK, defaultSnapshotLimit, 3},
		{"?limit=2", http.StatusOK, 2, 2},
		{"?limit=5000", http.StatusOK, maxSnapshotLimit, 3},
		{"?limit=0", http.StatusBadRequest, 0, 0},
		{"?limit=abc", http.StatusBadRequest, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			lister.lastLimit = 0
			rec := httptest.NewRecorder()
			h.Snapshots(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/snapshots"+tt.query, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			if lister.lastLimit != tt.wantLimit {
				t.Errorf("limit passed = %d, want %d", lister.lastLimit, tt.wantLimit)
			}
			var snaps []Snapshot
			if err := json.NewDecoder(rec.Body).Decode(&snaps); err != nil {
				t.Fatal(err)
			}
			if len(snaps) != tt.wantLen {
				t.Errorf("got %d snapshots, want %d", len(snaps), tt.wantLen)
			}
		})
	}
}

func TestHandlerSnapshotsUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(NewAggregator(nil), nil).Snapshots(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}

	rec = httptest.NewRecorder()
	NewHandler(NewAggregator(nil), &fakeLister{err: errors.New("db down")}).Snapshots(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
