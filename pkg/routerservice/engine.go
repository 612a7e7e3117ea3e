package routerservice

import "context"

// Mode is the history update strategy of a transition.
type Mode int

const (
	// ModeNavigate adds a new history entry (default behavior).
	ModeNavigate Mode = iota

	// ModeReplace replaces the current history entry.
	ModeReplace
)

// String returns the engine-facing name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNavigate:
		return "navigate"
	case ModeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// LocationType identifies the location strategy used by the engine.
type LocationType string

const (
	LocationAuto    LocationType = "auto"
	LocationHash    LocationType = "hash"
	LocationHistory LocationType = "history"
	LocationNone    LocationType = "none"
)

// Transition is a handle to an in-flight or settled navigation.
// Resolution is owned and sequenced by the engine that produced it.
type Transition interface {
	// Method sets the history update strategy and returns the transition.
	Method(mode Mode) Transition

	// Mode returns the current history update strategy.
	Mode() Mode

	// Wait blocks until the transition settles or ctx is done.
	// It returns the transition's failure, if any.
	Wait(ctx context.Context) error
}

// State exposes the engine's scalar location properties.
type State interface {
	CurrentRouteName() string
	CurrentURL() string
	Location() LocationType
	RootURL() string
}

// Transitioner starts transitions.
type Transitioner interface {
	// PerformNamedTransition starts a transition to a named route.
	// When preserveUnspecified is set, query parameters missing from qp keep
	// their currently active values instead of resetting to route defaults.
	PerformNamedTransition(routeName string, models []any, qp QueryParams, preserveUnspecified bool) Transition

	// PerformURLTransition starts a transition to a URL.
	PerformURLTransition(mode Mode, url string) Transition
}

// URLGenerator builds URLs for named routes.
type URLGenerator interface {
	GenerateURL(routeName string, args ...any) (string, error)
}

// Matcher answers questions about the currently resolved route.
type Matcher interface {
	// IsRouteActive reports whether routeName with models is part of the
	// currently resolved route tree.
	IsRouteActive(routeName string, models []any) bool

	// ResolveQueryParamsForMatch returns the query parameters the engine
	// would assign to a transition to routeName with the supplied values.
	ResolveQueryParamsForMatch(routeName string, models []any, supplied QueryParams) QueryParams

	// ActiveQueryParams returns the currently active query parameters.
	ActiveQueryParams() QueryParams
}

// Engine is the router engine consumed by Service.
type Engine interface {
	State
	Transitioner
	URLGenerator
	Matcher
}
