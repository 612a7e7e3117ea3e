package routertest

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vango-dev/routerservice/pkg/routerservice"
)

// Transition is the handle returned by Engine. It records the arguments the
// engine was called with.
type Transition struct {
	id          string
	isURL       bool
	target      string
	models      []any
	queryParams routerservice.QueryParams
	preserve    bool

	mu      sync.Mutex
	mode    routerservice.Mode
	settled bool
	err     error
	done    chan struct{}
}

var _ routerservice.Transition = (*Transition)(nil)

func newTransition(isURL bool, target string, mode routerservice.Mode) *Transition {
	return &Transition{
		id:     uuid.NewString(),
		isURL:  isURL,
		target: target,
		mode:   mode,
		done:   make(chan struct{}),
	}
}

// ID returns the transition's unique identifier.
func (t *Transition) ID() string { return t.id }

// IsURL reports whether the transition was started from a URL.
func (t *Transition) IsURL() bool { return t.isURL }

// Target returns the route name or URL the transition was started with.
func (t *Transition) Target() string { return t.target }

// Models returns the models of a named transition.
func (t *Transition) Models() []any { return t.models }

// QueryParams returns the query parameters of a named transition.
func (t *Transition) QueryParams() routerservice.QueryParams { return t.queryParams }

// PreservesQueryParams reports whether unspecified query parameters keep
// their active values.
func (t *Transition) PreservesQueryParams() bool { return t.preserve }

// Method implements routerservice.Transition.
func (t *Transition) Method(mode routerservice.Mode) routerservice.Transition {
	t.mu.Lock()
	t.mode = mode
	t.mu.Unlock()
	return t
}

// Mode implements routerservice.Transition.
func (t *Transition) Mode() routerservice.Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Wait implements routerservice.Transition.
func (t *Transition) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Settled reports whether the transition has completed or failed.
func (t *Transition) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settled
}

// Err returns the failure of a settled transition.
func (t *Transition) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Transition) finish(err error) {
	t.mu.Lock()
	if t.settled {
		t.mu.Unlock()
		return
	}
	t.settled = true
	t.err = err
	t.mu.Unlock()
	close(t.done)
}

// PerformNamedTransition implements routerservice.Transitioner.
func (e *Engine) PerformNamedTransition(routeName string, models []any, qp routerservice.QueryParams, preserveUnspecified bool) routerservice.Transition {
	t := newTransition(false, routeName, routerservice.ModeNavigate)
	t.models = append([]any{}, models...)
	t.queryParams = qp.Clone()
	t.preserve = preserveUnspecified
	e.enqueue(t)
	return t
}

// PerformURLTransition implements routerservice.Transitioner.
func (e *Engine) PerformURLTransition(mode routerservice.Mode, u string) routerservice.Transition {
	t := newTransition(true, u, mode)
	e.enqueue(t)
	return t
}

func (e *Engine) enqueue(t *Transition) {
	e.mu.Lock()
	prev := e.pending
	e.pending = t
	e.transitions = append(e.transitions, t)
	e.mu.Unlock()

	if prev != nil {
		prev.finish(fmt.Errorf("%w: superseded by %s", ErrTransitionAborted, t.id))
	}
}

// Transitions returns every transition the engine was asked to perform.
func (e *Engine) Transitions() []*Transition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Transition{}, e.transitions...)
}

// LastTransition returns the most recent transition, or nil.
func (e *Engine) LastTransition() *Transition {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.transitions) == 0 {
		return nil
	}
	return e.transitions[len(e.transitions)-1]
}

// Pending returns the transition waiting for Flush, or nil.
func (e *Engine) Pending() *Transition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Flush settles the pending transition, updating the route state and
// history. It returns the transition's failure, if any.
func (e *Engine) Flush() error {
	e.mu.Lock()
	t := e.pending
	e.pending = nil
	if t == nil {
		e.mu.Unlock()
		return nil
	}
	err := e.settleLocked(t)
	e.mu.Unlock()

	t.finish(err)
	return err
}

func (e *Engine) settleLocked(t *Transition) error {
	if t.isURL {
		return e.settleURLLocked(t)
	}

	r, ok := e.routes[t.target]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoute, t.target)
	}
	qp := e.resolveLocked(t.target, t.queryParams, t.preserve)
	u, err := e.buildURLLocked(r, t.models, qp)
	if err != nil {
		return err
	}
	e.applyLocked(t.target, t.models, qp, u, t.Mode())
	return nil
}

func (e *Engine) settleURLLocked(t *Transition) error {
	raw := t.target
	if raw == "" {
		raw = "/"
	}
	path, rawQuery, _ := strings.Cut(raw, "?")
	if root := strings.TrimSuffix(e.rootURL, "/"); root != "" && strings.HasPrefix(path, root) {
		path = strings.TrimPrefix(path, root)
		if path == "" {
			path = "/"
		}
	}

	r, models, ok := e.recognizeLocked(path)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnrecognizedURL, t.target)
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnrecognizedURL, err)
	}
	supplied := routerservice.QueryParams{}
	for k, vs := range values {
		if len(vs) > 0 {
			supplied[k] = vs[0]
		}
	}

	u := path
	if rawQuery != "" {
		u += "?" + rawQuery
	}
	e.applyLocked(r.Name, models, e.resolveLocked(r.Name, supplied, false), u, t.Mode())
	return nil
}

// recognizeLocked finds the declared route matching path. Static segments
// win over dynamic ones; ties resolve by route name.
func (e *Engine) recognizeLocked(path string) (Route, []any, bool) {
	names := make([]string, 0, len(e.routes))
	for name := range e.routes {
		names = append(names, name)
	}
	sort.Strings(names)

	segments := splitPath(path)
	var (
		best       Route
		bestModels []any
		bestParams = -1
	)
	for _, name := range names {
		r := e.routes[name]
		models, ok := matchSegments(splitPath(r.Path), segments)
		if !ok {
			continue
		}
		if bestParams < 0 || len(models) < bestParams {
			best, bestModels, bestParams = r, models, len(models)
		}
	}
	return best, bestModels, bestParams >= 0
}

func matchSegments(pattern, segments []string) ([]any, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	models := []any{}
	for i, p := range pattern {
		if isParam(p) {
			v, err := url.PathUnescape(segments[i])
			if err != nil {
				return nil, false
			}
			models = append(models, v)
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return models, true
}

// applyLocked makes routeName the resolved leaf. Models are bound to the
// routes along the chain that own dynamic segments.
func (e *Engine) applyLocked(routeName string, models []any, qp routerservice.QueryParams, u string, mode routerservice.Mode) {
	chain := make([]activeRoute, 0, 4)
	used, parentParams := 0, 0
	for _, name := range routePrefixes(routeName) {
		own := 0
		if r, ok := e.routes[name]; ok {
			total := countParams(splitPath(r.Path))
			own = total - parentParams
			if own < 0 {
				own = 0
			}
			parentParams = total
		}
		if used+own > len(models) {
			own = len(models) - used
		}
		chain = append(chain, activeRoute{name: name, models: append([]any{}, models[used:used+own]...)})
		used += own
	}

	e.chain = chain
	e.queryParams = qp
	e.currentURL = u
	if mode == routerservice.ModeReplace && len(e.history) > 0 {
		e.history[len(e.history)-1] = u
	} else {
		e.history = append(e.history, u)
	}
}
