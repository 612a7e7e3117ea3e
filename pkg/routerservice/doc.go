// Package routerservice exposes a small, stable API over a client-side
// router engine.
//
// Application code uses a Service to read the current location state and to
// request navigation without reaching into the engine that owns the route
// state machine, URL generation and history handling.
//
// # Navigation
//
// Navigate accepts either a URL or a route name followed by route models and
// an optional trailing Options value:
//
//	svc := routerservice.New(engine)
//
//	svc.Navigate("/blog/7?sort=asc")                 // URL, passed through verbatim
//	svc.Navigate("blog.post", post)                  // named route with a model
//	svc.Navigate("blog.index", routerservice.Options{
//	    QueryParams: routerservice.QueryParams{"page": 2},
//	})
//	svc.NavigateReplacing("blog.post", post)         // replaces the history entry
//
// A target is a URL when it is empty or starts with "/". Everything else is
// a route name. Named transitions ask the engine to keep the previously
// active value of query parameters the caller did not supply.
//
// The structured form avoids positional arguments entirely:
//
//	t := svc.Transition(ctx, routerservice.Request{
//	    Target:      "blog.post",
//	    Models:      []any{post},
//	    QueryParams: routerservice.QueryParams{"sort": "asc"},
//	    Replace:     true,
//	})
//	if err := t.Wait(ctx); err != nil {
//	    // unknown route, missing model, superseded transition...
//	}
//
// # Active Routes
//
//	svc.IsActive("blog.post", post)
//	svc.IsActive("blog.post", post, routerservice.Options{
//	    QueryParams: routerservice.QueryParams{"sort": "asc"},
//	})
//
// Query parameters are only compared when the route and models match, and
// the comparison is against the engine's resolved values (route defaults
// included).
//
// # Trailing Options
//
// The last positional argument is consumed as options when it is an Options
// or *Options value, implements QueryParamsCarrier, or is a map that owns a
// "queryParams" key. A model with one of those shapes is therefore read as
// options. Pass such models through Request instead.
//
// # Instrumentation
//
// Logging uses log/slog. Prometheus metrics and OpenTelemetry spans are
// enabled with WithMetrics and WithTracer.
package routerservice
