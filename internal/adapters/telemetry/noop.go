package telemetry

import (
	"context"

	"go.trai.ch/incr/internal/core/ports"
)

// NopTracer is a no-op implementation of ports.Tracer.
type NopTracer struct{}

// NewNopTracer creates a new NopTracer.
func NewNopTracer() *NopTracer {
	return &NopTracer{}
}

// Start creates a new no-op span.
func (t *NopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, &NopSpan{}
}

// NopSpan is a no-op implementation of ports.Span.
type NopSpan struct{}

// End does nothing.
func (s *NopSpan) End() {}

// RecordError does nothing.
func (s *NopSpan) RecordError(_ error) {}

// SetAttribute does nothing.
func (s *NopSpan) SetAttribute(_ string, _ any) {}
