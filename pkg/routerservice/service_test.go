package routerservice_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vango-dev/routerservice/pkg/routerservice"
	"github.com/vango-dev/routerservice/pkg/routertest"
)

type Post struct{ ID string }

func (p *Post) String() string { return p.ID }

func newBlogEngine() *routertest.Engine {
	return routertest.NewEngine().
		WithLocation(routerservice.LocationHistory).
		WithRoute("index", "/", nil).
		WithRoute("about", "/about", nil).
		WithRoute("blog", "/blog", nil).
		WithRoute("blog.index", "/blog", routerservice.QueryParams{"page": "1"}).
		WithRoute("blog.post", "/blog/:post_id", routerservice.QueryParams{"sort": "desc"}).
		WithRoute("blog.post.comment", "/blog/:post_id/comments/:comment_id", nil)
}

func waitFor(t *testing.T, tr routerservice.Transition) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return tr.Wait(ctx)
}

func TestNavigate_RouteNameWithModelsAndQueryParams(t *testing.T) {
	eng := newBlogEngine()
	svc := routerservice.New(eng)
	m1, m2 := &Post{ID: "1"}, &Post{ID: "2"}

	svc.Navigate("blog.post.comment", m1, m2, routerservice.Options{
		QueryParams: routerservice.QueryParams{"a": 1},
	})

	tr := eng.LastTransition()
	if tr == nil {
		t.Fatal("expected a transition to be recorded")
	}
	if tr.IsURL() {
		t.Error("route name was treated as a URL")
	}
	if tr.Target() != "blog.post.comment" {
		t.Errorf("Target() = %q, want %q", tr.Target(), "blog.post.comment")
	}
	if !reflect.DeepEqual(tr.Models(), []any{m1, m2}) {
		t.Errorf("Models() = %v, want [m1 m2]", tr.Models())
	}
	if !reflect.DeepEqual(tr.QueryParams(), routerservice.QueryParams{"a": 1}) {
		t.Errorf("QueryParams() = %v, want {a:1}", tr.QueryParams())
	}
	if !tr.PreservesQueryParams() {
		t.Error("named transitions should preserve unspecified query params")
	}
	if tr.Mode() != routerservice.ModeNavigate {
		t.Errorf("Mode() = %v, want navigate", tr.Mode())
	}
}

func TestNavigate_URLPassesThroughVerbatim(t *testing.T) {
	eng := newBlogEngine()
	svc := routerservice.New(eng)

	svc.Navigate("/foo/bar?x=1", &Post{ID: "1"}, routerservice.Options{
		QueryParams: routerservice.QueryParams{"a": 1},
	})

	tr := eng.LastTransition()
	if !tr.IsURL() {
		t.Fatal("expected a URL transition")
	}
	if tr.Target() != "/foo/bar?x=1" {
		t.Errorf("Target() = %q, want the URL unmodified", tr.Target())
	}
	if len(tr.Models()) != 0 || len(tr.QueryParams()) != 0 {
		t.Errorf("URL transition carried models %v / query params %v", tr.Models(), tr.QueryParams())
	}
}

func TestNavigate_EmptyTargetIsURL(t *testing.T) {
	eng := newBlogEngine()
	svc := routerservice.New(eng)

	svc.Navigate("")
	if tr := eng.LastTransition(); !tr.IsURL() || tr.Target() != "" {
		t.Errorf("Navigate(\"\") recorded %+v, want empty URL transition", tr)
	}
	if err := eng.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if got := svc.CurrentRouteName(); got != "index" {
		t.Errorf("CurrentRouteName() = %q, want index", got)
	}
}

func TestNavigateReplacing_MatchesNavigateClassification(t *testing.T) {
	eng := newBlogEngine()
	svc := routerservice.New(eng)
	post := &Post{ID: "7"}
	opts := routerservice.Options{QueryParams: routerservice.QueryParams{"sort": "asc"}}

	svc.Navigate("blog.post", post, opts)
	pushed := eng.LastTransition()
	svc.NavigateReplacing("blog.post", post, opts)
	replaced := eng.LastTransition()

	if pushed.Target() != replaced.Target() ||
		!reflect.DeepEqual(pushed.Models(), replaced.Models()) ||
		!reflect.DeepEqual(pushed.QueryParams(), replaced.QueryParams()) ||
		pushed.PreservesQueryParams() != replaced.PreservesQueryParams() {
		t.Errorf("classification differs: navigate=%+v replace=%+v", pushed, replaced)
	}
	if replaced.Mode() != routerservice.ModeReplace {
		t.Errorf("Mode() = %v, want replace", replaced.Mode())
	}

	svc.NavigateReplacing("/about")
	if tr := eng.LastTransition(); !tr.IsURL() || tr.Mode() != routerservice.ModeReplace {
		t.Errorf("URL replace recorded %+v", tr)
	}
}

func TestNavigateReplacing_ReplacesHistoryEntry(t *testing.T) {
	eng := newBlogEngine()
	svc := routerservice.New(eng)

	svc.Navigate("about")
	if err := eng.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	svc.NavigateReplacing("blog.post", &Post{ID: "3"})
	if err := eng.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	want := []string{"/blog/3"}
	if got := eng.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("History() = %v, want %v", got, want)
	}
	if got := svc.CurrentURL(); got != "/blog/3" {
		t.Errorf("CurrentURL() = %q, want /blog/3", got)
	}
}

func TestNavigate_FailuresSurfaceThroughHandle(t *testing.T) {
	eng := newBlogEngine()
	svc := routerservice.New(eng)

	tr := svc.Navigate("no.such.route")
	if tr == nil {
		t.Fatal("Navigate() should return a handle even for unknown routes")
	}
	_ = eng.Flush()
	if err := waitFor(t, tr); !errors.Is(err, routertest.ErrUnknownRoute) {
		t.Errorf("Wait() = %v, want ErrUnknownRoute", err)
	}

	tr = svc.Navigate("blog.post")
	_ = eng.Flush()
	if err := waitFor(t, tr); !errors.Is(err, routertest.ErrModelCount) {
		t.Errorf("Wait() = %v, want ErrModelCount", err)
	}
}

func TestNavigate_SupersededTransitionAborts(t *testing.T) {
	eng := newBlogEngine()
	svc := routerservice.New(eng)

	first := svc.Navigate("about")
	second := svc.Navigate("blog.index")
	if err := eng.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	if err := waitFor(t, first); !errors.Is(err, routertest.ErrTransitionAborted) {
		t.Errorf("first Wait() = %v, want ErrTransitionAborted", err)
	}
	if err := waitFor(t, second); err != nil {
		t.Errorf("second Wait() = %v, want nil", err)
	}
	if got := svc.CurrentRouteName(); got != "blog.index" {
		t.Errorf("CurrentRouteName() = %q, want blog.index", got)
	}
}

func TestNavigate_PreservesUnspecifiedQueryParams(t *testing.T) {
	eng := newBlogEngine().
		Enter("blog").
		Enter("blog.post", "7").
		WithQueryParams(routerservice.QueryParams{"sort": "asc"})
	svc := routerservice.New(eng)

	svc.Navigate("blog.post", "8")
	if err := eng.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	want := routerservice.QueryParams{"sort": "asc"}
	if got := eng.ActiveQueryParams(); !reflect.DeepEqual(got, want) {
		t.Errorf("ActiveQueryParams() = %v, want %v", got, want)
	}
	if got := svc.CurrentURL(); got != "/blog/8?sort=asc" {
		t.Errorf("CurrentURL() = %q, want /blog/8?sort=asc", got)
	}
}

func TestTransition_StructuredRequest(t *testing.T) {
	eng := newBlogEngine()
	svc := routerservice.New(eng)

	// A model carrying query params is safe in the structured form.
	model := routerservice.Options{QueryParams: routerservice.QueryParams{"x": 1}}
	tr := svc.Transition(context.Background(), routerservice.Request{
		Target:  "blog.post",
		Models:  []any{model},
		Replace: true,
	})

	rec := eng.LastTransition()
	if !reflect.DeepEqual(rec.Models(), []any{model}) {
		t.Errorf("Models() = %v, want the options value as a model", rec.Models())
	}
	if tr.Mode() != routerservice.ModeReplace {
		t.Errorf("Mode() = %v, want replace", tr.Mode())
	}
}

func TestTransition_DerivesURLFromTarget(t *testing.T) {
	tests := []struct {
		name    string
		req     routerservice.Request
		wantURL bool
	}{
		{
			name:    "url target without flag",
			req:     routerservice.Request{Target: "/blog/7"},
			wantURL: true,
		},
		{
			name:    "empty target",
			req:     routerservice.Request{Target: ""},
			wantURL: true,
		},
		{
			name: "url target drops models and query params",
			req: routerservice.Request{
				Target:      "/about",
				Models:      []any{"7"},
				QueryParams: routerservice.QueryParams{"sort": "asc"},
			},
			wantURL: true,
		},
		{
			name:    "route name flagged as url",
			req:     routerservice.Request{Target: "blog.post", IsURL: true, Models: []any{"7"}},
			wantURL: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newBlogEngine()
			svc := routerservice.New(eng)

			svc.Transition(context.Background(), tt.req)

			rec := eng.LastTransition()
			if rec == nil {
				t.Fatal("no transition recorded")
			}
			if rec.IsURL() != tt.wantURL {
				t.Fatalf("IsURL() = %v, want %v", rec.IsURL(), tt.wantURL)
			}
			if rec.Target() != tt.req.Target {
				t.Errorf("Target() = %q, want %q", rec.Target(), tt.req.Target)
			}
			if tt.wantURL {
				if rec.Models() != nil || rec.QueryParams() != nil {
					t.Errorf("url transition carried models %v and query params %v", rec.Models(), rec.QueryParams())
				}
				return
			}
			if !reflect.DeepEqual(rec.Models(), tt.req.Models) {
				t.Errorf("Models() = %v, want %v", rec.Models(), tt.req.Models)
			}
		})
	}
}

func TestIsActive(t *testing.T) {
	post1, post2 := &Post{ID: "1"}, &Post{ID: "2"}
	eng := newBlogEngine().
		Enter("blog").
		Enter("blog.post", post1).
		WithQueryParams(routerservice.QueryParams{"sort": "asc"})
	svc := routerservice.New(eng)

	tests := []struct {
		name string
		args []any
		want bool
	}{
		{"leaf with model", []any{post1}, true},
		{"leaf without models", nil, true},
		{"other model", []any{post2}, false},
		{"too many models", []any{post1, post2}, false},
		{"matching query params", []any{post1, routerservice.Options{QueryParams: routerservice.QueryParams{"sort": "asc"}}}, true},
		{"mismatching query params", []any{post1, routerservice.Options{QueryParams: routerservice.QueryParams{"sort": "desc"}}}, false},
		{"unknown query param", []any{post1, routerservice.Options{QueryParams: routerservice.QueryParams{"page": "2"}}}, false},
		{"query params with other model", []any{post2, routerservice.Options{QueryParams: routerservice.QueryParams{"sort": "asc"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.IsActive("blog.post", tt.args...); got != tt.want {
				t.Errorf("IsActive(blog.post, %v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}

	if !svc.IsActive("blog") {
		t.Error("expected parent route to be active")
	}
	if svc.IsActive("blog.index") {
		t.Error("expected sibling route to be inactive")
	}
}

func TestIsActive_ResolvesDefaults(t *testing.T) {
	// Active state carries the default sort; supplying only the default
	// still resolves to the full active set.
	eng := newBlogEngine().
		Enter("blog").
		Enter("blog.post", "1").
		WithQueryParams(routerservice.QueryParams{"sort": "desc"})
	svc := routerservice.New(eng)

	if !svc.IsActive("blog.post", "1", routerservice.Options{QueryParams: routerservice.QueryParams{"sort": "desc"}}) {
		t.Error("expected default-valued query params to match")
	}
}

func TestIsActive_AboutScenario(t *testing.T) {
	eng := newBlogEngine().Enter("about")
	svc := routerservice.New(eng)

	if !svc.IsActive("about") {
		t.Error(`IsActive("about") = false, want true`)
	}
	if svc.IsActive("blog.index") {
		t.Error(`IsActive("blog.index") = true, want false`)
	}
	if !svc.IsActive("about", routerservice.Options{QueryParams: routerservice.QueryParams{}}) {
		t.Error(`IsActive("about", {queryParams: {}}) = false, want true`)
	}
	if !svc.IsActiveQuery(context.Background(), routerservice.ActivityQuery{RouteName: "about"}) {
		t.Error("IsActiveQuery(about) = false, want true")
	}
}

func TestGenerateURL_ForwardsArguments(t *testing.T) {
	eng := newBlogEngine().WithRootURL("/app/")
	svc := routerservice.New(eng)

	got, err := svc.GenerateURL("blog.post", &Post{ID: "9"}, routerservice.Options{
		QueryParams: routerservice.QueryParams{"sort": "asc"},
	})
	if err != nil {
		t.Fatalf("GenerateURL() error: %v", err)
	}
	if got != "/app/blog/9?sort=asc" {
		t.Errorf("GenerateURL() = %q, want /app/blog/9?sort=asc", got)
	}

	if _, err := svc.GenerateURL("missing"); !errors.Is(err, routertest.ErrUnknownRoute) {
		t.Errorf("GenerateURL(missing) error = %v, want ErrUnknownRoute", err)
	}
}

func TestAccessors_ReadThrough(t *testing.T) {
	eng := newBlogEngine().WithRootURL("/app/").WithURL("/about").Enter("about")
	svc := routerservice.New(eng)

	if got := svc.CurrentRouteName(); got != "about" {
		t.Errorf("CurrentRouteName() = %q, want about", got)
	}
	if got := svc.CurrentURL(); got != "/about" {
		t.Errorf("CurrentURL() = %q, want /about", got)
	}
	if got := svc.Location(); got != routerservice.LocationHistory {
		t.Errorf("Location() = %q, want history", got)
	}
	if got := svc.RootURL(); got != "/app/" {
		t.Errorf("RootURL() = %q, want /app/", got)
	}

	svc.Navigate("/app/blog/5")
	if err := eng.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if got := svc.CurrentRouteName(); got != "blog.post" {
		t.Errorf("CurrentRouteName() after navigation = %q, want blog.post", got)
	}
	if got := svc.CurrentURL(); got != "/blog/5" {
		t.Errorf("CurrentURL() after navigation = %q, want /blog/5", got)
	}
}
