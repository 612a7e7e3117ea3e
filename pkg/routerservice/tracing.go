package routerservice

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for the router service.
const defaultTracerName = "vango/routerservice"

// Span names.
const (
	spanTransition  = "routerservice.Transition"
	spanIsActive    = "routerservice.IsActive"
	spanGenerateURL = "routerservice.GenerateURL"
)

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func requestAttributes(req Request) []attribute.KeyValue {
	method := ModeNavigate
	if req.Replace {
		method = ModeReplace
	}
	return []attribute.KeyValue{
		attribute.String("routerservice.target", req.Target),
		attribute.Bool("routerservice.is_url", req.IsURL),
		attribute.Int("routerservice.models", len(req.Models)),
		attribute.Int("routerservice.query_params", len(req.QueryParams)),
		attribute.String("routerservice.method", method.String()),
	}
}

func queryAttributes(q ActivityQuery) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("routerservice.route", q.RouteName),
		attribute.Int("routerservice.models", len(q.Models)),
		attribute.Int("routerservice.query_params", len(q.QueryParams)),
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
