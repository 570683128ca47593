/*
Package f1 serves the Formula 1 dashboard: an HTTP JSON API over a relational F1 database with
standings, driver and team statistics, race results, analytics, write operations and an audit log.
*/
package f1

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/config"
	pkghttp "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/http"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/infra"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/logging"
)

const configLocation = "./configs"

// App is the dashboard server.
type App struct {
	Config config.Config

	container      *infra.Container
	httpServer     *httpServer
	metricServer   *metricServer
	routes         *RouteGroup
	requestTimeout time.Duration
	tracerProvider *sdktrace.TracerProvider

	compileOnce sync.Once
}

// New reads configs/.env and the environment, then builds the App.
func New() *App {
	return NewWithConfig(config.NewEnvFile(configLocation, logging.NewLogger(logging.INFO)))
}

// NewWithConfig builds the App, its container and the dashboard routes from cfg.
func NewWithConfig(cfg config.Config) *App {
	return newApp(cfg, infra.NewContainer(cfg))
}

func newApp(cfg config.Config, c *infra.Container) *App {
	a := &App{
		Config:    cfg,
		container: c,
		routes:    newRouteGroup(""),
	}

	a.requestTimeout = time.Duration(a.intConfig("REQUEST_TIMEOUT", defaultRequestTimeout)) * time.Second

	a.httpServer = newHTTPServer(c, a.intConfig("HTTP_PORT", defaultHTTPPort), middlewareConfig{
		logProbes: cfg.GetOrDefault("LOG_DISABLE_PROBES", "true") != "true",
		corsHeaders: map[string]string{
			"Access-Control-Allow-Origin":  cfg.Get("ACCESS_CONTROL_ALLOW_ORIGIN"),
			"Access-Control-Allow-Headers": cfg.Get("ACCESS_CONTROL_ALLOW_HEADERS"),
		},
	})

	if port := a.intConfig("METRICS_PORT", defaultMetricPort); port > 0 {
		a.metricServer = newMetricServer(port)
	}

	a.initTracer()

	a.routes.UseMiddleware(errorLogging)
	registerDashboardRoutes(a.routes)

	return a
}

func (a *App) intConfig(key string, def int) int {
	raw := a.Config.GetOrDefault(key, strconv.Itoa(def))

	v, err := strconv.Atoi(raw)
	if err != nil {
		a.container.Warnf("invalid %s %q, using %d", key, raw, def)
		return def
	}

	return v
}

// Container exposes the shared dependencies.
func (a *App) Container() *infra.Container {
	return a.container
}

// GET adds a route to the root group.
func (a *App) GET(pattern string, h Handler) {
	a.routes.GET(pattern, h)
}

// POST adds a route to the root group.
func (a *App) POST(pattern string, h Handler) {
	a.routes.POST(pattern, h)
}

// Group returns the route group for prefix.
func (a *App) Group(prefix string, fns ...func(sub *RouteGroup)) *RouteGroup {
	return a.routes.Group(prefix, fns...)
}

// UseMiddleware adds middleware around every route.
func (a *App) UseMiddleware(mws ...Middleware) {
	a.routes.UseMiddleware(mws...)
}

// Handler compiles the registered routes and returns the root HTTP handler. Routes added after the
// first call are ignored.
func (a *App) Handler() http.Handler {
	a.compileOnce.Do(func() {
		r := a.httpServer.router

		r.Add(http.MethodGet, "/.well-known/health", handler{
			function:       healthHandler,
			container:      a.container,
			requestTimeout: a.requestTimeout,
		})

		a.routes.compile(r, a.container, a.requestTimeout, "", nil)

		r.NotFound(handler{function: catchAllHandler, container: a.container})
	})

	return a.httpServer.router
}

// Routes compiles the registered routes and lists them as "METHOD /pattern".
func (a *App) Routes() []string {
	a.Handler()

	routes := a.httpServer.router.Routes()
	out := make([]string, 0, len(routes))

	for _, r := range routes {
		out = append(out, r.String())
	}

	return out
}

// Run starts the HTTP and metrics servers and blocks until SIGINT or SIGTERM, then shuts down.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, r := range a.Routes() {
		a.container.Debugf("registered route %s", r)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.httpServer.run(a.container)
	})

	if a.metricServer != nil {
		g.Go(func() error {
			return a.metricServer.Run(a.container)
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutDownTimeout)
		defer cancel()

		return a.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		a.container.Errorf("server stopped with error: %v", err)
	}
}

// Shutdown stops both servers, flushes traces and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.container.Info("Shutting down servers")

	var errs []error

	if a.httpServer != nil {
		errs = append(errs, a.httpServer.Shutdown(ctx))
	}

	if a.metricServer != nil {
		errs = append(errs, a.metricServer.Shutdown(ctx))
	}

	if a.tracerProvider != nil {
		errs = append(errs, a.tracerProvider.Shutdown(ctx))
	}

	errs = append(errs, a.container.Close())

	return errors.Join(errs...)
}

// errorLogging logs failed requests: server side failures at ERROR, rejected input at WARN.
func errorLogging(next Handler) Handler {
	return func(c *Context) (any, error) {
		data, err := next(c)
		if err == nil {
			return data, nil
		}

		if pkghttp.StatusCode(err) >= http.StatusInternalServerError {
			c.Errorf("request failed: %v", err)
		} else {
			c.Warnf("request rejected: %v", err)
		}

		return data, err
	}
}
