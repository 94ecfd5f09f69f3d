package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/glint-ui/glint/pkg/runtime"
)

// Default tracer name for glint runtimes.
const defaultTracerName = "glint"

// TracerConfig configures the OpenTelemetry observer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "glint").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider
}

// TracerOption configures the OpenTelemetry observer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = tp
	}
}

// Tracer is a runtime.Observer that emits one span per render cycle,
// with the outcome recorded as a span attribute.
type Tracer struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span
}

var _ runtime.Observer = (*Tracer)(nil)

// NewTracer creates the tracing observer.
func NewTracer(opts ...TracerOption) *Tracer {
	cfg := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}

	var tracer trace.Tracer
	if cfg.Provider != nil {
		tracer = cfg.Provider.Tracer(cfg.TracerName)
	} else {
		tracer = otel.Tracer(cfg.TracerName)
	}

	return &Tracer{
		tracer: tracer,
		spans:  make(map[string]trace.Span),
	}
}

// ComponentMounted implements runtime.Observer.
func (t *Tracer) ComponentMounted(component string) {
	_, span := t.tracer.Start(context.Background(), "component.mount",
		trace.WithAttributes(attribute.String("glint.component", component)))
	span.End()
}

// ComponentDestroyed implements runtime.Observer.
func (t *Tracer) ComponentDestroyed(component string) {
	_, span := t.tracer.Start(context.Background(), "component.destroy",
		trace.WithAttributes(attribute.String("glint.component", component)))
	span.End()
}

// RenderStarted implements runtime.Observer.
func (t *Tracer) RenderStarted(component string) {
	_, span := t.tracer.Start(context.Background(), "component.render",
		trace.WithAttributes(attribute.String("glint.component", component)))

	t.mu.Lock()
	t.spans[component] = span
	t.mu.Unlock()
}

// RenderCommitted implements runtime.Observer.
func (t *Tracer) RenderCommitted(component string, took time.Duration) {
	t.endSpan(component, "committed", took, nil)
}

// RenderSkipped implements runtime.Observer.
func (t *Tracer) RenderSkipped(component string) {
	t.endSpan(component, "skipped", 0, nil)
}

// RenderFailed implements runtime.Observer.
func (t *Tracer) RenderFailed(component string) {
	t.endSpan(component, "failed", 0, func(span trace.Span) {
		span.SetStatus(codes.Error, "render panicked")
	})
}

// UpdateDropped implements runtime.Observer.
func (t *Tracer) UpdateDropped(component string) {
	_, span := t.tracer.Start(context.Background(), "component.update_dropped",
		trace.WithAttributes(attribute.String("glint.component", component)))
	span.End()
}

// BindingSkipped implements runtime.Observer.
func (t *Tracer) BindingSkipped(component, handler string) {
	_, span := t.tracer.Start(context.Background(), "component.binding_skipped",
		trace.WithAttributes(
			attribute.String("glint.component", component),
			attribute.String("glint.handler", handler)))
	span.End()
}

func (t *Tracer) endSpan(component, outcome string, took time.Duration, finish func(trace.Span)) {
	t.mu.Lock()
	span, ok := t.spans[component]
	delete(t.spans, component)
	t.mu.Unlock()
	if !ok {
		return
	}

	span.SetAttributes(attribute.String("glint.outcome", outcome))
	if took > 0 {
		span.SetAttributes(attribute.Int64("glint.render_micros", took.Microseconds()))
	}
	if finish != nil {
		finish(span)
	}
	span.End()
}
