package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRunWorstStatusWins(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Check
		want   Status
	}{
		{"no checks", nil, StatusUp},
		{"all up", map[string]Check{
			"a": Static(StatusUp, ""),
			"b": Ping(func(context.Context) error { return nil }),
		}, StatusUp},
		{"degraded", map[string]Check{
			"a": Static(StatusUp, ""),
			"b": Static(StatusDegraded, "disabled"),
		}, StatusDegraded},
		{"down beats degraded", map[string]Check{
			"a": Static(StatusDown, ""),
			"b": Static(StatusDegraded, ""),
			"c": Static(StatusUp, ""),
		}, StatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker()
			for name, check := range tt.checks {
				c.Register(name, check)
			}
			report := c.Run(context.Background())
			if report.Status != tt.want {
				t.Errorf("Status = %s, want %s", report.Status, tt.want)
			}
			if len(report.Components) != len(tt.checks) {
				t.Errorf("Components = %d, want %d", len(report.Components), len(tt.checks))
			}
		})
	}
}

func TestPingCarriesError(t *testing.T) {
	got := Ping(func(context.Context) error { return errors.New("connection refused") })(context.Background())
	if got.Status != StatusDown || got.Message != "connection refused" {
		t.Errorf("Ping = %+v", got)
	}
}

func TestReadyHandler(t *testing.T) {
	c := NewChecker()
	c.Register("redis", Static(StatusDown, "unreachable"))

	rec := httptest.NewRecorder()
	c.ReadyHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Components["redis"].Message != "unreachable" {
		t.Errorf("redis component = %+v", report.Components["redis"])
	}

	rec = httptest.NewRecorder()
	c.LiveHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}
}
