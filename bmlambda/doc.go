// Package bmlambda provides the shared runtime plumbing for event-driven
// AWS Lambda functions in this repository.
//
// # Overview
//
// bmlambda handles the boilerplate every function needs before it can do
// useful work: environment parsing, structured logging, OpenTelemetry
// tracing, and instrumented AWS SDK clients. The pieces are assembled with
// [go.uber.org/fx] so application code only declares constructors:
//
//	bmlambda.NewApp[bmlambda.BaseEnvironment](
//	    fx.Provide(appconfig.Load, handler.New),
//	    bmlambda.WithAWSClient(func(cfg aws.Config) *budgets.Client {
//	        return budgets.NewFromConfig(cfg)
//	    }),
//	    bmlambda.Handle(func(h *handler.Handler) any { return h.Handle }),
//	).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    bmlambda.BaseEnvironment
//	}
//
// BaseEnvironment reads the following environment variables:
//
//	| Variable      | Required | Default     | Description                            |
//	|---------------|----------|-------------|----------------------------------------|
//	| SERVICE_NAME  | No       | budgetmaker | Service name for logging and tracing   |
//	| LOG_LEVEL     | No       | info        | Log level (debug, info, warn, error)   |
//	| OTEL_EXPORTER | No       | xrayudp     | Trace exporter: "stdout" or "xrayudp"  |
//
// # Tracing
//
// OpenTelemetry tracing is configured from OTEL_EXPORTER:
//
//   - "xrayudp" (default): export to Lambda's X-Ray daemon via UDP
//   - "stdout": pretty-printed spans for local development
//
// The tracer provider and propagator are injected explicitly (no globals).
// AWS SDK clients registered through [WithAWSClient] and the shared HTTP
// client are instrumented automatically.
package bmlambda
