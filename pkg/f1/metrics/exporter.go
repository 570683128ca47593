package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelProm "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Exporter bundles a Manager with the Prometheus registry its instruments are exported to.
type Exporter struct {
	Manager

	provider *sdkmetric.MeterProvider
	registry *prometheus.Registry
}

// NewPrometheusExporter creates a meter provider exporting to a private Prometheus registry.
func NewPrometheusExporter(appName string, logger Logger) (*Exporter, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelProm.New(otelProm.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return &Exporter{
		Manager:  NewMetricsManager(provider.Meter(appName), logger),
		provider: provider,
		registry: registry,
	}, nil
}

// Handler serves the registry in Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Provider exposes the meter provider so it can be flushed on shutdown.
func (e *Exporter) Provider() *sdkmetric.MeterProvider {
	return e.provider
}
