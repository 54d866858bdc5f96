package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.AnalysesTotal.WithLabelValues("analyze", "ok").Inc()
	m.AnalysesTotal.WithLabelValues("analyze", "ok").Inc()
	m.ComparisonsTotal.WithLabelValues("french").Inc()
	m.CacheHitsTotal.Inc()

	if got := testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("analyze", "ok")); got != 2 {
		t.Errorf("text_analyses_total{analyze,ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ComparisonsTotal.WithLabelValues("french")); got != 1 {
		t.Errorf("text_comparisons_total{french} = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"text_analyses_total", "text_comparisons_total", "analysis_cache_hits_total"} {
		if !names[want] {
			t.Errorf("metric family %q not gathered", want)
		}
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	defer func() {
		if recover() == nil {
			t.Error("registering the collectors twice should panic")
		}
	}()
	New(reg)
}

func TestServeMux(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.CacheHitsTotal.Add(3)

	srv := httptest.NewServer(NewServeMux(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /metrics = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "analysis_cache_hits_total 3") {
		t.Errorf("scrape missing cache hits:\n%s", body)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("GET /healthz = %d, want 204", resp.StatusCode)
	}
}
