package routerservice

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records Prometheus metrics for every operation.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the tracer used for operation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithTracerName resolves the tracer from the global provider by name.
func WithTracerName(name string) Option {
	return func(s *Service) {
		s.tracer = otel.Tracer(name)
	}
}
