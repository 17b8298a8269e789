package railimpl

import (
	"context"

	"github.com/orgball2608/story-playback/internal/rail"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(rail.Client)),
		),
	),
	fx.Invoke(func(lc fx.Lifecycle, r rail.Client) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return r.Start(ctx)
			},
			OnStop: func(context.Context) error {
				return r.Stop()
			},
		})
	}),
)
