package f1

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	defaultZipkinURL = "http://localhost:9411/api/v2/spans"
	defaultOTLPURL   = "localhost:4317"
)

// initTracer installs a global tracer provider when TRACE_EXPORTER names a supported exporter.
// Without one, spans from otelhttp and otelsql stay no-ops.
func (a *App) initTracer() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	name := strings.ToLower(a.Config.GetOrDefault("TRACE_EXPORTER", "none"))
	if name == "none" {
		return
	}

	exporter, err := a.newSpanExporter(name)
	if err != nil {
		a.container.Errorf("could not create %s trace exporter: %v", name, err)
		return
	}

	a.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", a.container.AppName()))),
	)

	otel.SetTracerProvider(a.tracerProvider)

	a.container.Infof("exporting traces to %s", name)
}

func (a *App) newSpanExporter(name string) (sdktrace.SpanExporter, error) {
	switch name {
	case "zipkin":
		return zipkin.New(a.Config.GetOrDefault("TRACER_URL", defaultZipkinURL))
	case "otlp":
		return otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(a.Config.GetOrDefault("TRACER_URL", defaultOTLPURL)),
		)
	default:
		return nil, errUnsupportedTraceExporter{name: name}
	}
}

type errUnsupportedTraceExporter struct {
	name string
}

func (e errUnsupportedTraceExporter) Error() string {
	return "unsupported trace exporter " + e.name
}
