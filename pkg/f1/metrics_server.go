package f1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/infra"
)

type metricServer struct {
	port int
	srv  *http.Server
}

func newMetricServer(port int) *metricServer {
	return &metricServer{port: port}
}

func (m *metricServer) Run(c *infra.Container) error {
	c.Logf("Starting metrics server on port: %d", m.port)

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.MetricsHandler())

	m.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", m.port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	err := m.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.Errorf("error while listening to metrics server, err: %v", err)
		return err
	}

	return nil
}

func (m *metricServer) Shutdown(ctx context.Context) error {
	if m.srv == nil {
		return nil
	}

	return ShutdownWithContext(ctx, func(ctx context.Context) error {
		return m.srv.Shutdown(ctx)
	}, nil)
}
