package bmlambda

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds a production zap logger at the level configured in the environment.
// The service name is attached to every entry.
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	return cfg.Build(zap.Fields(zap.String("service", env.serviceName())))
}

// provideLogger is an fx provider that builds the logger and flushes it on shutdown.
func provideLogger(lc fx.Lifecycle, env Environment) (*zap.Logger, error) {
	log, err := NewLogger(env)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		// Sync fails on stderr in some environments; the entries are already out.
		_ = log.Sync()
		return nil
	}})
	return log, nil
}

// WithTrace returns the logger annotated with trace_id and span_id from the
// context, for trace-log correlation in CloudWatch Logs Insights.
func WithTrace(ctx context.Context, log *zap.Logger) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return log
	}
	sc := span.SpanContext()
	return log.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}
