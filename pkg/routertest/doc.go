// Package routertest provides an in-memory router engine for testing code
// built on routerservice.
//
// The engine keeps a declared route table, the currently resolved route
// chain and the active query parameters. Transitions are recorded and stay
// pending until Flush is called, which plays the role of the host's run
// loop turn. Starting a transition while another is pending aborts the
// older one.
//
// # Quick Start
//
//	func TestPostLink(t *testing.T) {
//	    eng := routertest.NewEngine().
//	        WithRoute("blog", "/blog", nil).
//	        WithRoute("blog.post", "/blog/:post_id", routerservice.QueryParams{"sort": "desc"}).
//	        Enter("blog").
//	        Enter("blog.post", "7").
//	        WithQueryParams(routerservice.QueryParams{"sort": "desc"})
//
//	    svc := routerservice.New(eng)
//	    if !svc.IsActive("blog.post", "7") {
//	        t.Fatal("expected blog.post to be active")
//	    }
//
//	    tr := svc.Navigate("blog.post", "8")
//	    eng.Flush()
//	    if err := tr.Wait(context.Background()); err != nil {
//	        t.Fatalf("transition failed: %v", err)
//	    }
//	}
//
// # Snapshots
//
// Engines can be described in YAML and loaded with LoadSnapshot:
//
//	rootURL: /
//	location: history
//	routes:
//	  - name: blog.post
//	    path: /blog/:post_id
//	    queryParams: {sort: desc}
//	active:
//	  - route: blog.post
//	    models: ["7"]
//	queryParams: {sort: asc}
package routertest
