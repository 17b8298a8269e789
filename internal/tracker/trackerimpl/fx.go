package trackerimpl

import (
	"context"
	"time"

	"github.com/orgball2608/story-playback/internal/tracker"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		New,
		func(impl *Impl) tracker.Client { return impl },
	),
	fx.Invoke(func(lc fx.Lifecycle, impl *Impl) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				timeout := 5 * time.Second
				if deadline, ok := ctx.Deadline(); ok {
					timeout = time.Until(deadline)
				}
				return impl.Close(timeout)
			},
		})
	}),
)
