package bmlambda

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const httpClientTimeout = 30 * time.Second

// provideHTTPClient is an fx provider for the shared outbound HTTP client.
// The transport is wrapped with otelhttp so calls to external services show
// up as subsegments in the trace.
func provideHTTPClient(tp trace.TracerProvider, prop propagation.TextMapPropagator) *http.Client {
	return &http.Client{
		Timeout: httpClientTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(tp),
			otelhttp.WithPropagators(prop),
		),
	}
}
