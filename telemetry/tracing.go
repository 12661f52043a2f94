package telemetry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"taskflow-app/taskflow/config"
)

const serviceName = "taskflow"

const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// ExporterName resolves which span exporter cfg asks for. Without an
// explicit TRACE_EXPORTER, an OTLP endpoint turns on OTLP export.
func ExporterName(cfg config.Config) (string, error) {
	switch name := strings.ToLower(strings.TrimSpace(cfg.TraceExporter)); name {
	case "":
		if cfg.OTLPEndpoint != "" {
			return ExporterOTLP, nil
		}
		return ExporterNone, nil
	case ExporterOTLP:
		if cfg.OTLPEndpoint == "" {
			return "", fmt.Errorf("TRACE_EXPORTER=otlp requires OTEL_EXPORTER_OTLP_ENDPOINT")
		}
		return name, nil
	case ExporterStdout, ExporterNone:
		return name, nil
	default:
		return "", fmt.Errorf("unknown TRACE_EXPORTER %q", cfg.TraceExporter)
	}
}

// NewExporter builds the span exporter cfg asks for, or nil when tracing
// export is off. stdout receives spans for the stdout exporter.
func NewExporter(ctx context.Context, cfg config.Config, stdout io.Writer) (sdktrace.SpanExporter, error) {
	name, err := ExporterName(cfg)
	if err != nil {
		return nil, err
	}

	switch name {
	case ExporterOTLP:
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(tracesURL(cfg.OTLPEndpoint)))
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(stdout), stdouttrace.WithPrettyPrint())
	default:
		return nil, nil
	}
}

// tracesURL appends the OTLP/HTTP traces path to a collector base URL, the
// way OTEL_EXPORTER_OTLP_ENDPOINT is defined.
func tracesURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + "/v1/traces"
}

// NewTracerProvider samples every root span and batches finished spans to
// exporter. A nil exporter yields a provider that records nothing.
func NewTracerProvider(exporter sdktrace.SpanExporter) *sdktrace.TracerProvider {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	return sdktrace.NewTracerProvider(opts...)
}
