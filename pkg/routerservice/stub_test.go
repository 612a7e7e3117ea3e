package routerservice

import "context"

// stubTransition is a minimal Transition for package-internal tests.
type stubTransition struct{ mode Mode }

func (t *stubTransition) Method(mode Mode) Transition {
	t.mode = mode
	return t
}

func (t *stubTransition) Mode() Mode { return t.mode }

func (t *stubTransition) Wait(context.Context) error { return nil }

// stubEngine answers every query from its fields and counts engine calls.
type stubEngine struct {
	active   bool
	resolved QueryParams
	current  QueryParams
	urlErr   error

	namedCalls   int
	urlCalls     int
	resolveCalls int
}

func (e *stubEngine) CurrentRouteName() string { return "index" }

func (e *stubEngine) CurrentURL() string { return "/" }

func (e *stubEngine) Location() LocationType { return LocationHistory }

func (e *stubEngine) RootURL() string { return "/" }

func (e *stubEngine) PerformNamedTransition(string, []any, QueryParams, bool) Transition {
	e.namedCalls++
	return &stubTransition{}
}

func (e *stubEngine) PerformURLTransition(mode Mode, _ string) Transition {
	e.urlCalls++
	return &stubTransition{mode: mode}
}

func (e *stubEngine) GenerateURL(routeName string, _ ...any) (string, error) {
	if e.urlErr != nil {
		return "", e.urlErr
	}
	return "/" + routeName, nil
}

func (e *stubEngine) IsRouteActive(string, []any) bool { return e.active }

func (e *stubEngine) ResolveQueryParamsForMatch(_ string, _ []any, supplied QueryParams) QueryParams {
	e.resolveCalls++
	if e.resolved != nil {
		return e.resolved
	}
	return supplied
}

func (e *stubEngine) ActiveQueryParams() QueryParams { return e.current }
