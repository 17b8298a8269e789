package trackerimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/orgball2608/story-playback/internal/metrics"
	"github.com/orgball2608/story-playback/internal/repositories/story"
	"github.com/orgball2608/story-playback/internal/tracker"
	"github.com/orgball2608/story-playback/pkg/config"
	"github.com/orgball2608/story-playback/pkg/logger"
	"github.com/orgball2608/story-playback/pkg/retry"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	StoryRepo story.Repository
	Logger    logger.Logger
	Config    *config.Config
}

type Impl struct {
	StoryRepo story.Repository
	Logger    logger.Logger

	pool     *ants.Pool
	recorded *lru.Cache[string, struct{}]
	timeout  time.Duration
	retry    retry.Config
}

var _ tracker.Client = (*Impl)(nil)

func New(opts Opts) (*Impl, error) {
	workers := opts.Config.Tracker.Workers
	if workers <= 0 {
		workers = 1
	}
	cacheSize := opts.Config.Tracker.CacheSize
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	timeout := opts.Config.Tracker.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker pool: %w", err)
	}
	recorded, err := lru.New[string, struct{}](cacheSize)
	if err != nil {
		pool.Release()
		return nil, fmt.Errorf("failed to create recorded views cache: %w", err)
	}

	return &Impl{
		StoryRepo: opts.StoryRepo,
		Logger:    opts.Logger.WithComponent("ViewTracker"),
		pool:      pool,
		recorded:  recorded,
		timeout:   timeout,
		retry:     retry.DefaultConfig(),
	}, nil
}

// Record submits the view to the worker pool and returns immediately. Views
// are submitted in call order; they may complete in any order.
func (t *Impl) Record(storyID string, viewer domain.User) {
	if storyID == "" || viewer.ID == "" {
		return
	}
	key := storyID + "/" + viewer.ID
	if t.recorded.Contains(key) {
		return
	}

	err := t.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		err := retry.Do(ctx, t.Logger, "record story view", func() error {
			err := t.StoryRepo.RecordView(ctx, storyID, viewer)
			if errors.Is(err, story.ErrNotFound) {
				return retry.Permanent(err)
			}
			return err
		}, t.retry)
		if err != nil {
			metrics.ViewsFailed.WithLabelValues("store").Inc()
			t.Logger.Warn("Failed to record story view", "story_id", storyID, "viewer_id", viewer.ID, "error", err)
			return
		}

		t.recorded.Add(key, struct{}{})
		metrics.ViewsRecorded.Inc()
		t.Logger.Debug("Story view recorded", "story_id", storyID, "viewer_id", viewer.ID)
	})
	if err != nil {
		cause := "submit"
		if errors.Is(err, ants.ErrPoolOverload) {
			cause = "overload"
		}
		metrics.ViewsFailed.WithLabelValues(cause).Inc()
		t.Logger.Warn("Dropping story view", "story_id", storyID, "viewer_id", viewer.ID, "error", err)
	}
}

func (t *Impl) Viewers(ctx context.Context, s domain.Story, requester *domain.User) ([]domain.Viewer, error) {
	if requester == nil || requester.ID != s.UserID {
		return nil, story.ErrForbidden
	}
	viewers, err := t.StoryRepo.ListViewers(ctx, s.ID, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list viewers of story %s: %w", s.ID, err)
	}
	return viewers, nil
}

// Close waits for queued views to finish, up to the given timeout.
func (t *Impl) Close(timeout time.Duration) error {
	return t.pool.ReleaseTimeout(timeout)
}
