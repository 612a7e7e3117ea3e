package routerservice

import "strings"

// Request describes one navigation attempt.
type Request struct {
	// Target is a route name or, when IsURL is set, a URL.
	Target string

	// Models are the route models, in order. Always nil for URL requests.
	Models []any

	// QueryParams are the query parameters. Always nil for URL requests.
	QueryParams QueryParams

	// IsURL marks Target as a URL to be passed through verbatim. It is
	// always derived from Target with ResemblesURL; Service.Transition
	// overwrites any value set by the caller.
	IsURL bool

	// Replace replaces the current history entry instead of pushing.
	Replace bool
}

// ActivityQuery describes a check against the currently resolved route.
type ActivityQuery struct {
	RouteName   string
	Models      []any
	QueryParams QueryParams
}

// ResemblesURL reports whether a navigation target is a URL rather than a
// route name: it is empty or starts with "/".
func ResemblesURL(target string) bool {
	return target == "" || strings.HasPrefix(target, "/")
}

// ParseRequest classifies the arguments of a navigation call. URL targets
// skip model and query parameter extraction, so any further arguments are
// ignored.
func ParseRequest(target string, rest ...any) Request {
	if ResemblesURL(target) {
		return Request{Target: target, IsURL: true}
	}
	models, qp := ExtractRouteArgs(rest)
	return Request{
		Target:      target,
		Models:      models,
		QueryParams: qp,
	}
}

// ParseActivityQuery classifies the arguments of an activity check.
func ParseActivityQuery(routeName string, rest ...any) ActivityQuery {
	models, qp := ExtractRouteArgs(rest)
	return ActivityQuery{
		RouteName:   routeName,
		Models:      models,
		QueryParams: qp,
	}
}
