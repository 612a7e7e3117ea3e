package routerservice

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Service is the public facade over a router engine. It holds no route
// state of its own; every read goes to the engine at call time.
//
// A Service is safe for concurrent use when its engine is.
type Service struct {
	engine  Engine
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// New creates a Service over engine.
func New(engine Engine, opts ...Option) *Service {
	s := &Service{
		engine: engine,
		logger: slog.Default().With("component", "routerservice"),
		tracer: otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// CurrentRouteName returns the name of the currently resolved leaf route.
func (s *Service) CurrentRouteName() string {
	return s.engine.CurrentRouteName()
}

// CurrentURL returns the URL of the currently resolved route.
func (s *Service) CurrentURL() string {
	return s.engine.CurrentURL()
}

// Location returns the engine's location strategy.
func (s *Service) Location() LocationType {
	return s.engine.Location()
}

// RootURL returns the URL prefix the application is served under.
func (s *Service) RootURL() string {
	return s.engine.RootURL()
}

// Navigate transitions to a URL or to a named route.
//
// A target that is empty or starts with "/" is a URL and is handed to the
// engine unmodified; any further arguments are ignored. Otherwise target is
// a route name, the remaining arguments are route models, and a trailing
// Options value supplies query parameters.
//
// Navigate does not validate the target. Unknown routes and missing models
// are reported by the engine through the returned transition.
func (s *Service) Navigate(target string, rest ...any) Transition {
	return s.Transition(context.Background(), ParseRequest(target, rest...))
}

// NavigateReplacing is like Navigate but replaces the current history entry.
func (s *Service) NavigateReplacing(target string, rest ...any) Transition {
	req := ParseRequest(target, rest...)
	req.Replace = true
	return s.Transition(context.Background(), req)
}

// Transition dispatches a navigation request to the engine. IsURL is
// derived from Target, and URL requests drop any models and query
// parameters. Replace is applied to the handle after the engine returns it.
func (s *Service) Transition(ctx context.Context, req Request) Transition {
	req.IsURL = ResemblesURL(req.Target)
	if req.IsURL {
		req.Models, req.QueryParams = nil, nil
	}

	_, span := s.startSpan(ctx, spanTransition, requestAttributes(req)...)
	defer span.End()

	var t Transition
	if req.IsURL {
		s.logger.Debug("url transition",
			"url", req.Target,
			"replace", req.Replace,
		)
		t = s.engine.PerformURLTransition(ModeNavigate, req.Target)
	} else {
		s.logger.Debug("named transition",
			"route", req.Target,
			"models", len(req.Models),
			"query_params", len(req.QueryParams),
			"replace", req.Replace,
		)
		t = s.engine.PerformNamedTransition(req.Target, req.Models, req.QueryParams, true)
	}

	if req.Replace && t != nil {
		t.Method(ModeReplace)
	}
	s.metrics.recordTransition(req)
	return t
}

// GenerateURL returns the URL for a route. All arguments are forwarded to
// the engine as given.
func (s *Service) GenerateURL(routeName string, rest ...any) (string, error) {
	_, span := s.startSpan(context.Background(), spanGenerateURL,
		attribute.String("routerservice.route", routeName),
		attribute.Int("routerservice.args", len(rest)),
	)

	u, err := s.engine.GenerateURL(routeName, rest...)
	endSpan(span, err)
	s.metrics.recordURLGeneration(err)
	if err != nil {
		s.logger.Debug("url generation failed", "route", routeName, "error", err)
	}
	return u, err
}

// IsActive reports whether routeName with the given models is currently
// resolved. When a trailing Options value carries query parameters, the
// engine's resolved values for them must also equal the active ones.
func (s *Service) IsActive(routeName string, rest ...any) bool {
	return s.IsActiveQuery(context.Background(), ParseActivityQuery(routeName, rest...))
}

// IsActiveQuery is the structured form of IsActive.
func (s *Service) IsActiveQuery(ctx context.Context, q ActivityQuery) bool {
	_, span := s.startSpan(ctx, spanIsActive, queryAttributes(q)...)
	defer span.End()

	active := s.matches(q)
	span.SetAttributes(attribute.Bool("routerservice.active", active))
	s.metrics.recordActiveCheck(active)
	s.logger.Debug("active check", "route", q.RouteName, "active", active)
	return active
}

func (s *Service) matches(q ActivityQuery) bool {
	if !s.engine.IsRouteActive(q.RouteName, q.Models) {
		return false
	}
	if len(q.QueryParams) == 0 {
		return true
	}
	resolved := s.engine.ResolveQueryParamsForMatch(q.RouteName, q.Models, q.QueryParams.Clone())
	return EqualQueryParams(resolved, s.engine.ActiveQueryParams())
}
