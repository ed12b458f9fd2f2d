package bmlambda

import (
	"context"
	"os"

	"github.com/aws-observability/aws-otel-go/exporters/xrayudp"
	"github.com/cockroachdb/errors"
	lambdadetector "go.opentelemetry.io/contrib/detectors/aws/lambda"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

// provideTracing is an fx provider for the tracer provider and propagator.
// Both are injected explicitly rather than installed as otel globals, so tests
// can run with isolated providers.
//
// Set OTEL_SDK_DISABLED=true to disable tracing entirely (used in tests).
func provideTracing(lc fx.Lifecycle, env Environment) (trace.TracerProvider, propagation.TextMapPropagator, error) {
	if os.Getenv("OTEL_SDK_DISABLED") == "true" {
		return noop.NewTracerProvider(), propagation.TraceContext{}, nil
	}

	ctx := context.Background()

	exporter, err := newExporter(ctx, env)
	if err != nil {
		return nil, nil, err
	}

	// Detect Lambda resource attributes (function name, version, etc.).
	res, err := lambdadetector.NewResourceDetector().Detect(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Synchronous span processor: the runtime freezes the sandbox as soon as
	// the invocation returns, so spans must be exported immediately rather
	// than batched.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
		sdktrace.WithIDGenerator(xray.NewIDGenerator()),
	)
	lc.Append(fx.Hook{OnStop: tp.Shutdown})

	return tp, xray.Propagator{}, nil
}

func newExporter(ctx context.Context, env Environment) (sdktrace.SpanExporter, error) {
	switch env.otelExporter() {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "xrayudp", "":
		// Export directly to Lambda's built-in X-Ray daemon via UDP, no
		// collector layer needed.
		return xrayudp.NewSpanExporter(ctx)
	default:
		return nil, errors.Newf("unsupported OTEL_EXPORTER: %q (supported: xrayudp, stdout)", env.otelExporter())
	}
}
