package bmlambda

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// App assembles the function's dependency graph and hands a handler to the
// Lambda runtime.
type App struct {
	opts []fx.Option
}

// NewApp creates an App with the base providers (environment, logger, tracing,
// AWS config, HTTP client) plus any application-specific fx options. Register
// the Lambda entry with [Handle].
func NewApp[E Environment](opts ...fx.Option) *App {
	base := []fx.Option{
		fx.Provide(ParseEnv[E]()),
		fx.Provide(func(e E) Environment { return e }),
		fx.Provide(
			provideLogger,
			provideTracing,
			provideAWSConfig,
			provideHTTPClient,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	}
	return &App{opts: append(base, opts...)}
}

// Handle registers the handler function that is passed to the Lambda runtime
// once the graph is built. The fn callback receives the injected handler value
// and returns anything lambda.StartWithOptions accepts:
//
//	bmlambda.Handle(func(h *handler.Handler) any { return h.Handle })
func Handle[H any](fn func(H) any) fx.Option {
	return fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, h H) {
		lc.Append(fx.Hook{OnStart: func(context.Context) error {
			go func() {
				// Blocks for the lifetime of the execution environment.
				lambda.StartWithOptions(fn(h))
				_ = sd.Shutdown()
			}()
			return nil
		}})
	})
}

// Options exposes the assembled fx options, for tests that want to build the
// graph without starting the Lambda runtime.
func (a *App) Options() fx.Option {
	return fx.Options(a.opts...)
}

// Run starts the application and blocks until the runtime exits.
func (a *App) Run() {
	fx.New(a.opts...).Run()
}
