package f1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	pkghttp "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/http"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/http/middleware"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/infra"
)

type httpServer struct {
	router *pkghttp.Router
	port   int
	srv    *http.Server
}

type middlewareConfig struct {
	logProbes   bool
	corsHeaders map[string]string
}

func newHTTPServer(c *infra.Container, port int, cfg middlewareConfig) *httpServer {
	r := pkghttp.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logging(cfg.logProbes, c.Logger),
		middleware.CORS(cfg.corsHeaders),
		middleware.Metrics(c.Metrics()),
	)

	return &httpServer{
		router: r,
		port:   port,
	}
}

func (s *httpServer) run(c *infra.Container) error {
	if s.srv != nil {
		c.Logf("Server already running on port: %d", s.port)
		return nil
	}

	c.Logf("Starting server on port: %d", s.port)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.Errorf("error while listening to http server, err: %v", err)
		return err
	}

	return nil
}

func (s *httpServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}

	return ShutdownWithContext(ctx, func(ctx context.Context) error {
		return s.srv.Shutdown(ctx)
	}, func() error {
		return s.srv.Close()
	})
}
