// Package delivery defines the contract shared by every inbound transport.
package delivery

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"
)

const groupTag = `group:"deliveries"`

// Delivery is a long-running server. Its constructor registers shutdown on
// the fx lifecycle; Serve blocks until that shutdown happens.
type Delivery interface {
	Serve(ctx context.Context) error
}

// Provide registers a Delivery constructor with the group Run starts.
func Provide(constructor any) fx.Option {
	return fx.Provide(fx.Annotate(constructor, fx.ResultTags(groupTag)))
}

// Run starts every provided Delivery once the fx graph is built.
var Run = fx.Invoke(serveAll)

type serveParams struct {
	fx.In
	fx.Shutdowner

	Ctx        context.Context
	Logger     *slog.Logger
	Deliveries []Delivery `group:"deliveries"`
}

// serveAll runs each delivery in the background. One that fails stops the
// whole app so the OnStop hooks still run.
func serveAll(params serveParams) {
	for _, d := range params.Deliveries {
		go func() {
			err := d.Serve(params.Ctx)
			if err == nil {
				return
			}
			params.Logger.Error("delivery stopped", slog.Any("error", err))

			if err := params.Shutdown(fx.ExitCode(1)); err != nil {
				params.Logger.Error("shutdown failed", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
