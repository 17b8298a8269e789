package app

import (
	"context"

	"github.com/orgball2608/story-playback/internal/migrations"
	"github.com/orgball2608/story-playback/internal/rail/railimpl"
	repositories "github.com/orgball2608/story-playback/internal/repositories/fx"
	"github.com/orgball2608/story-playback/internal/tracker/trackerimpl"
	"github.com/orgball2608/story-playback/pkg/config"
	"github.com/orgball2608/story-playback/pkg/logger"
	"github.com/orgball2608/story-playback/pkg/pgx"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	fx.Invoke(func(lc fx.Lifecycle, c *config.Config) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return migrations.Run(ctx, c.GetDSN(), "up")
			},
		})
	}),
	repositories.Module,
	trackerimpl.Module,
	railimpl.Module,
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, srv *Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
