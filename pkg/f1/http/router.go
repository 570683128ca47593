package http

import (
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Route is one registered method and pattern.
type Route struct {
	Method  string
	Pattern string
}

func (r Route) String() string { return r.Method + " " + r.Pattern }

// Router dispatches dashboard requests through chi and remembers what it serves.
type Router struct {
	mux    *chi.Mux
	routes []Route
}

func NewRouter() *Router {
	return &Router{mux: chi.NewRouter()}
}

// ServeHTTP collapses repeated and trailing slashes before dispatch, so "//api/drivers/" reaches
// "/api/drivers".
func (rou *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if clean := path.Clean("/" + r.URL.Path); clean != r.URL.Path {
		r.URL.Path = clean
		r.URL.RawPath = ""
	}

	rou.mux.ServeHTTP(w, r)
}

// Add registers handler under a span named after the route.
func (rou *Router) Add(method, pattern string, handler http.Handler) {
	rou.mux.Method(method, pattern, otelhttp.NewHandler(handler, method+" "+pattern))
	rou.routes = append(rou.routes, Route{Method: method, Pattern: pattern})
}

// Use registers middlewares. chi requires them before the first route.
func (rou *Router) Use(middlewares ...func(http.Handler) http.Handler) {
	rou.mux.Use(middlewares...)
}

func (rou *Router) NotFound(handler http.Handler) {
	rou.mux.NotFound(handler.ServeHTTP)
}

// Routes lists the registered routes ordered by pattern, then method.
func (rou *Router) Routes() []Route {
	out := slices.Clone(rou.routes)

	slices.SortFunc(out, func(a, b Route) int {
		if c := strings.Compare(a.Pattern, b.Pattern); c != 0 {
			return c
		}

		return strings.Compare(a.Method, b.Method)
	})

	return out
}
