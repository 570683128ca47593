// Package infra wires the shared dependencies of the dashboard: logger, metrics, database and the
// page service.
package infra

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/config"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/dashboard"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/datasource/sql"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/logging"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/metrics"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/validation"
)

const defaultAppName = "f1-dashboard"

// Container is handed to every handler.
type Container struct {
	logging.Logger

	appName        string
	metricsManager metrics.Manager
	metricsHandler http.Handler
	exporter       *metrics.Exporter

	SQL       *sql.DB
	Dashboard *dashboard.Service
}

// NewContainer builds every dependency from cfg with a stdout logger.
func NewContainer(cfg config.Config) *Container {
	return NewContainerWithLogger(cfg, logging.NewLogger(logging.GetLevelFromString(cfg.Get("LOG_LEVEL"))))
}

// NewContainerWithLogger builds every dependency from cfg, logging to logger.
func NewContainerWithLogger(cfg config.Config, logger logging.Logger) *Container {
	c := &Container{
		Logger:  logger,
		appName: cfg.GetOrDefault("APP_NAME", defaultAppName),
	}

	c.initMetrics()

	c.SQL = sql.New(sql.NewDBConfig(cfg), c.Logger, c.metricsManager)

	year, err := strconv.Atoi(cfg.GetOrDefault("CHAMPIONSHIP_YEAR", strconv.Itoa(dashboard.DefaultChampionshipYear)))
	if err != nil {
		c.Warnf("invalid CHAMPIONSHIP_YEAR, using %d", dashboard.DefaultChampionshipYear)
		year = dashboard.DefaultChampionshipYear
	}

	c.Dashboard = dashboard.New(c.SQL,
		dashboard.WithChampionshipYear(year),
		dashboard.WithValidator(validation.New(cfg.GetOrDefault("VALIDATION_LOCALE", "en"))),
	)

	return c
}

func (c *Container) initMetrics() {
	exporter, err := metrics.NewPrometheusExporter(c.appName, c.Logger)
	if err != nil {
		c.Errorf("could not start prometheus exporter, metrics are disabled: %v", err)

		c.metricsManager = metrics.NewMetricsManager(noop.NewMeterProvider().Meter(c.appName), c.Logger)
		c.metricsHandler = http.NotFoundHandler()

		return
	}

	c.exporter = exporter
	c.metricsManager = exporter
	c.metricsHandler = exporter.Handler()

	registerFrameworkMetrics(c.metricsManager)
}

func registerFrameworkMetrics(m metrics.Manager) {
	httpBuckets := []float64{.001, .003, .005, .01, .02, .03, .05, .1, .2, .3, .5, .75, 1, 2, 3, 5, 10, 30}
	sqlBuckets := []float64{.05, .075, .1, .125, .15, .2, .3, .5, .75, 1, 2, 3, 4, 5, 7.5, 10}

	m.NewHistogram("app_http_response", "Response time of HTTP requests in seconds.", httpBuckets...)
	m.NewHistogram("app_sql_stats", "Response time of SQL operations in milliseconds.", sqlBuckets...)
	m.NewCounter("app_procedure_calls", "Number of stored procedure calls.")
	m.NewGauge("app_sql_open_connections", "Number of open SQL connections.")
}

// Metrics returns the metrics manager.
func (c *Container) Metrics() metrics.Manager {
	return c.metricsManager
}

// MetricsHandler serves the Prometheus scrape endpoint.
func (c *Container) MetricsHandler() http.Handler {
	return c.metricsHandler
}

// AppName is the configured application name.
func (c *Container) AppName() string {
	return c.appName
}

// Health reports the state of the database.
func (c *Container) Health(ctx context.Context) map[string]any {
	db := c.SQL.HealthCheck(ctx)

	status := "UP"
	if db.Status != "UP" {
		status = "DEGRADED"
	}

	return map[string]any{
		"name":   c.appName,
		"status": status,
		"sql":    db,
	}
}

// Close releases the database handle and flushes the meter provider.
func (c *Container) Close() error {
	var errs []error

	if c.SQL != nil {
		errs = append(errs, c.SQL.Close())
	}

	if c.exporter != nil {
		errs = append(errs, c.exporter.Provider().Shutdown(context.Background()))
	}

	return errors.Join(errs...)
}
