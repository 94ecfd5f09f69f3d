// Package telemetry provides runtime.Observer implementations:
// Prometheus metrics for render activity and an OpenTelemetry tracer
// that emits one span per render cycle.
//
// Both are plugged in through runtime.WithObserver, alone or combined
// with runtime.MultiObserver.
package telemetry
