package f1

import (
	"net/http"
	"path"
	"strings"
	"time"

	pkghttp "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/http"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/infra"
)

// Middleware wraps a Handler with full *Context access. Returning (nil, err) without calling next
// short-circuits the chain.
type Middleware func(next Handler) Handler

type routeDef struct {
	method  string
	pattern string
	handler Handler
}

// RouteGroup collects routes and middleware under a path prefix. Children inherit the middleware
// of their parents.
type RouteGroup struct {
	prefix      string
	middlewares []Middleware
	routes      []routeDef
	children    []*RouteGroup
}

func newRouteGroup(prefix string) *RouteGroup {
	return &RouteGroup{prefix: normalizeGroupPrefix(prefix)}
}

// GET registers a handler for HTTP GET on this group.
func (g *RouteGroup) GET(pattern string, h Handler) *RouteGroup {
	g.routes = append(g.routes, routeDef{method: http.MethodGet, pattern: pattern, handler: h})
	return g
}

// POST registers a handler for HTTP POST on this group.
func (g *RouteGroup) POST(pattern string, h Handler) *RouteGroup {
	g.routes = append(g.routes, routeDef{method: http.MethodPost, pattern: pattern, handler: h})
	return g
}

// UseMiddleware appends middleware to this group and every group below it.
func (g *RouteGroup) UseMiddleware(mws ...Middleware) *RouteGroup {
	g.middlewares = append(g.middlewares, mws...)
	return g
}

// Group returns the child group for prefix, creating it on first use. Callbacks run against the
// child, which allows inline registration.
func (g *RouteGroup) Group(prefix string, fns ...func(sub *RouteGroup)) *RouteGroup {
	sub := g

	if normalized := normalizeGroupPrefix(prefix); normalized != "" {
		sub = g.child(normalized)
	}

	for _, fn := range fns {
		if fn != nil {
			fn(sub)
		}
	}

	return sub
}

func (g *RouteGroup) child(prefix string) *RouteGroup {
	for _, c := range g.children {
		if c.prefix == prefix {
			return c
		}
	}

	c := &RouteGroup{prefix: prefix}
	g.children = append(g.children, c)

	return c
}

// compile registers every route of the tree on router with its full path and middleware chain.
func (g *RouteGroup) compile(router *pkghttp.Router, container *infra.Container, timeout time.Duration,
	parentPrefix string, inherited []Middleware) {
	prefix := parentPrefix + g.prefix

	mws := make([]Middleware, 0, len(inherited)+len(g.middlewares))
	mws = append(mws, inherited...)
	mws = append(mws, g.middlewares...)

	for _, rd := range g.routes {
		pattern := prefix + "/" + strings.TrimLeft(rd.pattern, "/")
		if rd.pattern == "" || rd.pattern == "/" {
			pattern = prefix
		}

		if pattern == "" {
			pattern = "/"
		}

		router.Add(rd.method, pattern, handler{
			function:       composeMiddleware(mws, rd.handler),
			container:      container,
			requestTimeout: timeout,
		})
	}

	for _, c := range g.children {
		c.compile(router, container, timeout, prefix, mws)
	}
}

// composeMiddleware applies mws in declaration order, the first being outermost.
func composeMiddleware(mws []Middleware, final Handler) Handler {
	h := final
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}

func normalizeGroupPrefix(prefix string) string {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return ""
	}

	normalized := path.Clean("/" + strings.TrimLeft(trimmed, "/"))
	if normalized == "/" {
		return ""
	}

	return normalized
}
