package telemetry

import (
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"
)

func TestTracerRenderSpanLifecycle(t *testing.T) {
	tr := NewTracer(WithTracerProvider(noop.NewTracerProvider()))

	tr.RenderStarted("c1")
	if len(tr.spans) != 1 {
		t.Fatalf("expected 1 open span, got %d", len(tr.spans))
	}

	tr.RenderCommitted("c1", 2*time.Millisecond)
	if len(tr.spans) != 0 {
		t.Errorf("committed render must close its span, %d left", len(tr.spans))
	}
}

func TestTracerOutcomeWithoutStart(t *testing.T) {
	tr := NewTracer(WithTracerProvider(noop.NewTracerProvider()))

	// Outcomes with no matching start must be harmless.
	tr.RenderCommitted("c1", time.Millisecond)
	tr.RenderSkipped("c1")
	tr.RenderFailed("c1")
}

func TestTracerInstantSpans(t *testing.T) {
	tr := NewTracer(WithTracerProvider(noop.NewTracerProvider()))

	// Instant notifications never leave spans open.
	tr.ComponentMounted("c1")
	tr.ComponentDestroyed("c1")
	tr.UpdateDropped("c1")
	tr.BindingSkipped("c1", "ghost")

	if len(tr.spans) != 0 {
		t.Errorf("expected no open spans, got %d", len(tr.spans))
	}
}
