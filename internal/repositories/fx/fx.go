package fx

import (
	"github.com/orgball2608/story-playback/internal/repositories/story"
	"go.uber.org/fx"
)

// Module provides every repository the engine reads from. Stories, users
// and views share one postgres schema.
var Module = fx.Options(
	story.Module,
)
