package tracing

import (
	"context"

	"github.com/Gobusters/ectologger"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogExporter writes completed spans to the run log at debug level. It is
// only wired up when tracing is explicitly requested on the command line.
type LogExporter struct {
	logger ectologger.Logger
}

func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		e.logger.WithFields(map[string]any{
			"span":     span.Name(),
			"duration": span.EndTime().Sub(span.StartTime()).String(),
		}).Debug("Span completed")
	}
	return nil
}

func (e *LogExporter) Shutdown(ctx context.Context) error {
	return nil
}

// Init installs a tracer provider backed by the log exporter and returns a
// shutdown function that flushes pending spans.
func Init(logger ectologger.Logger) func(context.Context) error {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(&LogExporter{logger: logger}),
	)
	otel.SetTracerProvider(provider)
	SetTracer(provider.Tracer("thistle"))
	return provider.Shutdown
}
