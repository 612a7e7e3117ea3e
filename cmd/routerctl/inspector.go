package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/routerservice/pkg/routerservice"
	"github.com/vango-dev/routerservice/pkg/routertest"
)

// inspector serves the session's router state over HTTP.
type inspector struct {
	mu      sync.RWMutex
	session *session
	logger  *slog.Logger
}

func newInspector(s *session) *inspector {
	return &inspector{
		session: s,
		logger:  s.logger.With("component", "inspector"),
	}
}

// stateResponse is the body of GET /state.
type stateResponse struct {
	CurrentRouteName string                     `json:"currentRouteName"`
	CurrentURL       string                     `json:"currentURL"`
	Location         routerservice.LocationType `json:"location"`
	RootURL          string                     `json:"rootURL"`
	QueryParams      routerservice.QueryParams  `json:"queryParams"`
	History          []string                   `json:"history"`
}

// navigateRequest is the body of POST /navigate. Args are positional
// arguments; objects stay maps and everything else becomes a string model.
type navigateRequest struct {
	Target  string `json:"target"`
	Args    []any  `json:"args,omitempty"`
	Replace bool   `json:"replace,omitempty"`
}

// navigateResponse is the body of a successful POST /navigate.
type navigateResponse struct {
	ID    string `json:"id"`
	Mode  string `json:"mode"`
	Route string `json:"route"`
	URL   string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Routes returns the inspector's HTTP handler.
func (in *inspector) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(in.logRequests)

	r.Get("/state", in.handleState)
	r.Get("/active/{route}", in.handleActive)
	r.Get("/url/{route}", in.handleURL)
	r.Post("/navigate", in.handleNavigate)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(in.session.registry, promhttp.HandlerOpts{}))

	return r
}

// reload replaces the engine with one loaded from the snapshot file.
func (in *inspector) reload() error {
	engine, err := loadEngine(in.session.snapshotPath)
	if err != nil {
		return err
	}
	in.mu.Lock()
	in.session.use(engine)
	in.mu.Unlock()
	in.logger.Info("snapshot reloaded", "path", in.session.snapshotPath)
	return nil
}

func (in *inspector) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		in.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (in *inspector) handleState(w http.ResponseWriter, r *http.Request) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	svc := in.session.service
	writeJSON(w, http.StatusOK, stateResponse{
		CurrentRouteName: svc.CurrentRouteName(),
		CurrentURL:       svc.CurrentURL(),
		Location:         svc.Location(),
		RootURL:          svc.RootURL(),
		QueryParams:      in.session.engine.ActiveQueryParams(),
		History:          in.session.engine.History(),
	})
}

func (in *inspector) handleActive(w http.ResponseWriter, r *http.Request) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	q := activityFromRequest(r)
	active := in.session.service.IsActiveQuery(r.Context(), q)
	writeJSON(w, http.StatusOK, map[string]any{
		"route":  q.RouteName,
		"active": active,
	})
}

func (in *inspector) handleURL(w http.ResponseWriter, r *http.Request) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	q := activityFromRequest(r)
	args := append(q.Models, routerservice.Options{QueryParams: q.QueryParams})
	u, err := in.session.service.GenerateURL(q.RouteName, args...)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"route": q.RouteName,
		"url":   u,
	})
}

func (in *inspector) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var body navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	svc := in.session.service
	req := routerservice.ParseRequest(body.Target, jsonArgs(body.Args)...)
	req.Replace = body.Replace
	t := svc.Transition(r.Context(), req)

	if err := in.session.engine.Flush(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	resp := navigateResponse{
		Mode:  t.Mode().String(),
		Route: svc.CurrentRouteName(),
		URL:   svc.CurrentURL(),
	}
	if rt, ok := t.(*routertest.Transition); ok {
		resp.ID = rt.ID()
	}
	writeJSON(w, http.StatusOK, resp)
}

// activityFromRequest reads a route name from the path, models from
// repeated "model" query values and query parameters from "q.<name>" keys.
func activityFromRequest(r *http.Request) routerservice.ActivityQuery {
	q := routerservice.ActivityQuery{
		RouteName:   chi.URLParam(r, "route"),
		Models:      []any{},
		QueryParams: routerservice.QueryParams{},
	}
	values := r.URL.Query()
	for _, m := range values["model"] {
		q.Models = append(q.Models, m)
	}
	for key, vs := range values {
		name, ok := strings.CutPrefix(key, "q.")
		if !ok || len(vs) == 0 {
			continue
		}
		q.QueryParams[name] = vs[0]
	}
	return q
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
