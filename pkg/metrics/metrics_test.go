package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func readCounter(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func readGauge(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.RunsTotal == nil || r.RunDuration == nil || r.PatientsFlagged == nil {
		t.Error("pipeline metrics not initialized")
	}
	if r.GraphEdges == nil || r.PageRankIterations == nil || r.PageRankConverged == nil {
		t.Error("scoring metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("success", 10, 5*time.Millisecond)
	r.RecordRun("success", 12, 7*time.Millisecond)
	r.RecordRun("error", 0, time.Millisecond)

	success, err := r.RunsTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := readCounter(t, success); got != 2 {
		t.Errorf("success runs = %v, want 2", got)
	}

	failed, _ := r.RunsTotal.GetMetricWithLabelValues("error")
	if got := readCounter(t, failed); got != 1 {
		t.Errorf("error runs = %v, want 1", got)
	}
}

func TestRecordPageRank(t *testing.T) {
	r := NewRegistry()

	r.RecordPageRank(14, true, 1e-7)
	if got := readGauge(t, r.PageRankConverged); got != 1 {
		t.Errorf("converged = %v, want 1", got)
	}

	r.RecordPageRank(100, false, 0.01)
	if got := readGauge(t, r.PageRankConverged); got != 0 {
		t.Errorf("converged = %v, want 0", got)
	}
	if got := readGauge(t, r.PageRankDelta); got != 0.01 {
		t.Errorf("delta = %v, want 0.01", got)
	}
}

func TestRecordFlagsAndGraph(t *testing.T) {
	r := NewRegistry()

	r.RecordFlags(2, 3)
	r.RecordFlags(1, 0)
	r.RecordGraph(40, 2)

	drug, _ := r.PatientsFlagged.GetMetricWithLabelValues(FlagDrugSeeking)
	anxiety, _ := r.PatientsFlagged.GetMetricWithLabelValues(FlagAnxietyRisk)
	if got := readCounter(t, drug); got != 3 {
		t.Errorf("drug seeking = %v, want 3", got)
	}
	if got := readCounter(t, anxiety); got != 3 {
		t.Errorf("anxiety = %v, want 3", got)
	}
	if got := readGauge(t, r.GraphEdges); got != 40 {
		t.Errorf("edges = %v, want 40", got)
	}
	if got := readGauge(t, r.GraphIsolatedNodes); got != 2 {
		t.Errorf("isolated = %v, want 2", got)
	}
}

func TestRecordRound(t *testing.T) {
	r := NewRegistry()

	r.RecordRound(1, 3)
	r.RecordRound(2, 4)

	if got := readGauge(t, r.SimulationRound); got != 2 {
		t.Errorf("round = %v, want 2", got)
	}
	if got := readCounter(t, r.PatientsWorsened); got != 7 {
		t.Errorf("worsened = %v, want 7", got)
	}
}

func TestRegistryGather(t *testing.T) {
	r := NewRegistry()
	r.RecordRun("success", 5, time.Millisecond)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "triage_runs_total" {
			found = true
		}
	}
	if !found {
		t.Error("triage_runs_total not gathered")
	}
}

func TestRegistryHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordGraph(12, 1)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "triage_graph_edges 12") {
		t.Errorf("exposition missing graph edges gauge:\n%s", body)
	}
}
