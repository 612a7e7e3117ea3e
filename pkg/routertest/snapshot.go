package routertest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/routerservice/pkg/routerservice"
)

// Snapshot is the YAML description of an engine's route table and state.
// Models and query parameter values are strings, as they appear in URLs.
type Snapshot struct {
	RootURL     string            `yaml:"rootURL,omitempty"`
	Location    string            `yaml:"location,omitempty"`
	CurrentURL  string            `yaml:"currentURL,omitempty"`
	Routes      []SnapshotRoute   `yaml:"routes"`
	Active      []SnapshotActive  `yaml:"active,omitempty"`
	QueryParams map[string]string `yaml:"queryParams,omitempty"`
}

// SnapshotRoute declares a route.
type SnapshotRoute struct {
	Name        string            `yaml:"name"`
	Path        string            `yaml:"path"`
	QueryParams map[string]string `yaml:"queryParams,omitempty"`
}

// SnapshotActive is one entry of the resolved route chain, root first.
type SnapshotActive struct {
	Route  string   `yaml:"route"`
	Models []string `yaml:"models,omitempty"`
}

// LoadSnapshot reads a YAML snapshot from path.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes and validates a YAML snapshot.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("routertest: decode snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the snapshot for inconsistencies.
func (s *Snapshot) Validate() error {
	switch routerservice.LocationType(s.Location) {
	case "", routerservice.LocationAuto, routerservice.LocationHash,
		routerservice.LocationHistory, routerservice.LocationNone:
	default:
		return fmt.Errorf("routertest: unknown location %q", s.Location)
	}

	seen := make(map[string]bool, len(s.Routes))
	for _, r := range s.Routes {
		if r.Name == "" {
			return fmt.Errorf("routertest: route with path %q has no name", r.Path)
		}
		if seen[r.Name] {
			return fmt.Errorf("routertest: route %q declared twice", r.Name)
		}
		seen[r.Name] = true
	}
	for _, a := range s.Active {
		if !seen[a.Route] {
			return fmt.Errorf("%w: active route %q is not declared", ErrUnknownRoute, a.Route)
		}
	}
	return nil
}

// Engine builds an engine from the snapshot.
func (s *Snapshot) Engine() *Engine {
	e := NewEngine()
	if s.RootURL != "" {
		e.WithRootURL(s.RootURL)
	}
	if s.Location != "" {
		e.WithLocation(routerservice.LocationType(s.Location))
	}
	for _, r := range s.Routes {
		e.WithRoute(r.Name, r.Path, stringParams(r.QueryParams))
	}
	for _, a := range s.Active {
		models := make([]any, len(a.Models))
		for i, m := range a.Models {
			models[i] = m
		}
		e.Enter(a.Route, models...)
	}
	e.WithQueryParams(stringParams(s.QueryParams))
	e.WithURL(s.CurrentURL)
	return e
}

// Snapshot captures the engine's current route table and state. Models and
// query parameter values are rendered with fmt.Sprint.
func (e *Engine) Snapshot() *Snapshot {
	routes := e.Routes()

	e.mu.Lock()
	defer e.mu.Unlock()

	s := &Snapshot{
		RootURL:     e.rootURL,
		Location:    string(e.location),
		CurrentURL:  e.currentURL,
		QueryParams: sprintParams(e.queryParams),
	}
	for _, r := range routes {
		s.Routes = append(s.Routes, SnapshotRoute{
			Name:        r.Name,
			Path:        r.Path,
			QueryParams: sprintParams(r.QueryParams),
		})
	}
	for _, a := range e.chain {
		entry := SnapshotActive{Route: a.name}
		for _, m := range a.models {
			entry.Models = append(entry.Models, fmt.Sprint(m))
		}
		s.Active = append(s.Active, entry)
	}
	return s
}

// Marshal encodes the snapshot as YAML.
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func stringParams(m map[string]string) routerservice.QueryParams {
	out := make(routerservice.QueryParams, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sprintParams(q routerservice.QueryParams) map[string]string {
	if len(q) == 0 {
		return nil
	}
	out := make(map[string]string, len(q))
	for k, v := range q {
		out[k] = fmt.Sprint(v)
	}
	return out
}
