package routertest

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/vango-dev/routerservice/pkg/routerservice"
)

var (
	// ErrUnknownRoute is reported for transitions to undeclared routes.
	ErrUnknownRoute = errors.New("routertest: unknown route")

	// ErrUnrecognizedURL is reported when no declared route matches a URL.
	ErrUnrecognizedURL = errors.New("routertest: unrecognized url")

	// ErrModelCount is reported when the models do not fill the route's
	// dynamic segments.
	ErrModelCount = errors.New("routertest: model count does not match dynamic segments")

	// ErrTransitionAborted is reported for a pending transition superseded
	// by a newer one.
	ErrTransitionAborted = errors.New("routertest: transition aborted")
)

// Route is a declared route.
type Route struct {
	// Name is the dot-separated route name (e.g., "blog.post").
	Name string

	// Path is the full URL pattern (e.g., "/blog/:post_id").
	Path string

	// QueryParams are the route's query parameter defaults.
	QueryParams routerservice.QueryParams
}

type activeRoute struct {
	name   string
	models []any
}

// Engine is an in-memory routerservice.Engine.
type Engine struct {
	mu sync.Mutex

	routes      map[string]Route
	chain       []activeRoute
	queryParams routerservice.QueryParams
	currentURL  string
	rootURL     string
	location    routerservice.LocationType
	history     []string

	pending     *Transition
	transitions []*Transition
}

var _ routerservice.Engine = (*Engine)(nil)

// NewEngine creates an empty engine at root URL "/" with location "none".
func NewEngine() *Engine {
	return &Engine{
		routes:      make(map[string]Route),
		queryParams: routerservice.QueryParams{},
		rootURL:     "/",
		location:    routerservice.LocationNone,
	}
}

// WithRoute declares a route. path is the full URL pattern of the route.
func (e *Engine) WithRoute(name, path string, defaults routerservice.QueryParams) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.routes[name] = Route{Name: name, Path: path, QueryParams: defaults.Clone()}
	return e
}

// Enter appends a route to the currently resolved chain, binding models to
// it. Call it root to leaf.
func (e *Engine) Enter(name string, models ...any) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.chain = append(e.chain, activeRoute{name: name, models: append([]any{}, models...)})
	return e
}

// WithQueryParams sets the active query parameters.
func (e *Engine) WithQueryParams(qp routerservice.QueryParams) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queryParams = qp.Clone()
	return e
}

// WithURL sets the current URL.
func (e *Engine) WithURL(u string) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentURL = u
	return e
}

// WithRootURL sets the root URL.
func (e *Engine) WithRootURL(u string) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rootURL = u
	return e
}

// WithLocation sets the location type.
func (e *Engine) WithLocation(l routerservice.LocationType) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.location = l
	return e
}

// CurrentRouteName implements routerservice.State.
func (e *Engine) CurrentRouteName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.chain) == 0 {
		return ""
	}
	return e.chain[len(e.chain)-1].name
}

// CurrentURL implements routerservice.State.
func (e *Engine) CurrentURL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentURL
}

// Location implements routerservice.State.
func (e *Engine) Location() routerservice.LocationType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.location
}

// RootURL implements routerservice.State.
func (e *Engine) RootURL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rootURL
}

// ActiveQueryParams implements routerservice.Matcher.
func (e *Engine) ActiveQueryParams() routerservice.QueryParams {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queryParams.Clone()
}

// IsRouteActive implements routerservice.Matcher. The route must be part
// of the resolved chain and models must equal the trailing models bound
// along the chain up to and including it.
func (e *Engine) IsRouteActive(routeName string, models []any) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, r := range e.chain {
		if r.name == routeName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	var bound []any
	for _, r := range e.chain[:idx+1] {
		bound = append(bound, r.models...)
	}
	if len(models) > len(bound) {
		return false
	}
	tail := bound[len(bound)-len(models):]
	for i := range models {
		if !routerservice.SameValue(models[i], tail[i]) {
			return false
		}
	}
	return true
}

// ResolveQueryParamsForMatch implements routerservice.Matcher. Query
// parameters declared along the route's chain and not supplied take their
// active value, falling back to the route default.
func (e *Engine) ResolveQueryParamsForMatch(routeName string, _ []any, supplied routerservice.QueryParams) routerservice.QueryParams {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolveLocked(routeName, supplied, true)
}

func (e *Engine) resolveLocked(routeName string, supplied routerservice.QueryParams, preserve bool) routerservice.QueryParams {
	out := routerservice.QueryParams{}
	for _, name := range routePrefixes(routeName) {
		r, ok := e.routes[name]
		if !ok {
			continue
		}
		for k, def := range r.QueryParams {
			if v, ok := e.queryParams[k]; ok && preserve {
				out[k] = v
				continue
			}
			out[k] = def
		}
	}
	for k, v := range supplied {
		out[k] = v
	}
	return out
}

// GenerateURL implements routerservice.URLGenerator. args are route models
// optionally followed by an options argument.
func (e *Engine) GenerateURL(routeName string, args ...any) (string, error) {
	models, qp := routerservice.ExtractRouteArgs(args)

	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.routes[routeName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, routeName)
	}
	u, err := e.buildURLLocked(r, models, e.resolveLocked(routeName, qp, false))
	if err != nil {
		return "", err
	}
	return joinRoot(e.rootURL, u), nil
}

// Routes returns the declared routes sorted by name.
func (e *Engine) Routes() []Route {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Route, 0, len(e.routes))
	for _, r := range e.routes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// History returns the URLs recorded by settled transitions.
func (e *Engine) History() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string{}, e.history...)
}

// buildURLLocked renders r's path with models and appends the query
// parameters that differ from the route defaults.
func (e *Engine) buildURLLocked(r Route, models []any, qp routerservice.QueryParams) (string, error) {
	segments := splitPath(r.Path)
	want := countParams(segments)
	if len(models) != want {
		return "", fmt.Errorf("%w: route %q has %d, got %d", ErrModelCount, r.Name, want, len(models))
	}

	var b strings.Builder
	i := 0
	for _, seg := range segments {
		b.WriteByte('/')
		if isParam(seg) {
			b.WriteString(url.PathEscape(fmt.Sprint(models[i])))
			i++
			continue
		}
		b.WriteString(seg)
	}
	if b.Len() == 0 {
		b.WriteByte('/')
	}

	defaults := e.defaultsLocked(r.Name)
	q := url.Values{}
	for k, v := range qp {
		if def, ok := defaults[k]; ok && fmt.Sprint(def) == fmt.Sprint(v) {
			continue
		}
		q.Set(k, fmt.Sprint(v))
	}
	if len(q) > 0 {
		b.WriteByte('?')
		b.WriteString(q.Encode())
	}
	return b.String(), nil
}

func (e *Engine) defaultsLocked(routeName string) routerservice.QueryParams {
	out := routerservice.QueryParams{}
	for _, name := range routePrefixes(routeName) {
		if r, ok := e.routes[name]; ok {
			for k, v := range r.QueryParams {
				out[k] = v
			}
		}
	}
	return out
}

// routePrefixes returns the dot-prefixes of a route name, root first:
// "blog.post" yields "blog", "blog.post".
func routePrefixes(name string) []string {
	if name == "" {
		return nil
	}
	parts := strings.Split(name, ".")
	out := make([]string, len(parts))
	for i := range parts {
		out[i] = strings.Join(parts[:i+1], ".")
	}
	return out
}

func splitPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func isParam(seg string) bool {
	return strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*")
}

func countParams(segments []string) int {
	n := 0
	for _, seg := range segments {
		if isParam(seg) {
			n++
		}
	}
	return n
}

func joinRoot(root, path string) string {
	root = strings.TrimSuffix(root, "/")
	return root + path
}
