package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetrics(WithRegistry(reg)), reg
}

func TestMetricsComponentGauge(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ComponentMounted("c1")
	m.ComponentMounted("c2")
	m.ComponentDestroyed("c1")

	if got := testutil.ToFloat64(m.componentsActive); got != 1 {
		t.Errorf("expected 1 active component, got %v", got)
	}
}

func TestMetricsRenderOutcomes(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RenderCommitted("c1", 3*time.Millisecond)
	m.RenderCommitted("c1", 5*time.Millisecond)
	m.RenderSkipped("c1")
	m.RenderFailed("c1")

	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues(OutcomeCommitted)); got != 2 {
		t.Errorf("expected 2 committed, got %v", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues(OutcomeSkipped)); got != 1 {
		t.Errorf("expected 1 skipped, got %v", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues(OutcomeFailed)); got != 1 {
		t.Errorf("expected 1 failed, got %v", got)
	}
}

func TestMetricsDropAndBindingCounters(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.UpdateDropped("c1")
	m.UpdateDropped("c1")
	m.BindingSkipped("c1", "ghost")

	if got := testutil.ToFloat64(m.updatesDropped); got != 2 {
		t.Errorf("expected 2 drops, got %v", got)
	}
	if got := testutil.ToFloat64(m.bindingsSkipped); got != 1 {
		t.Errorf("expected 1 skipped binding, got %v", got)
	}
}

func TestMetricsNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("custom"), WithSubsystem("ui"))
	m.ComponentMounted("c1")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	var found bool
	for _, fam := range families {
		if fam.GetName() == "custom_ui_components_active" {
			found = true
		}
	}
	if !found {
		t.Error("expected namespaced gauge custom_ui_components_active")
	}
}
