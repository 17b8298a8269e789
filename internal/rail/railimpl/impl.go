package railimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/orgball2608/story-playback/internal/metrics"
	"github.com/orgball2608/story-playback/internal/playback"
	"github.com/orgball2608/story-playback/internal/rail"
	"github.com/orgball2608/story-playback/internal/repositories/story"
	"github.com/orgball2608/story-playback/internal/tracker"
	"github.com/orgball2608/story-playback/pkg/config"
	"github.com/orgball2608/story-playback/pkg/logger"
	"go.uber.org/fx"
)

const refreshTimeout = 10 * time.Second

type Opts struct {
	fx.In

	StoryRepo story.Repository
	Tracker   tracker.Client
	Logger    logger.Logger
	Config    *config.Config
	Clock     clockwork.Clock `optional:"true"`
}

type Impl struct {
	StoryRepo story.Repository
	Tracker   tracker.Client
	Logger    logger.Logger

	clock    clockwork.Clock
	playback playback.Config
	interval time.Duration

	refreshMu sync.Mutex
	wg        sync.WaitGroup

	mu          sync.RWMutex
	stories     []domain.Story
	stale       bool
	invalidated uint64
	pending     bool
	draining    bool
	stopped     bool
	sessions  map[string]*playback.Session
	scheduler gocron.Scheduler
}

var _ rail.Client = (*Impl)(nil)

func New(opts Opts) *Impl {
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	sc := opts.Config.Stories
	interval := sc.RefreshInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &Impl{
		StoryRepo: opts.StoryRepo,
		Tracker:   opts.Tracker,
		Logger:    opts.Logger.WithComponent("Rail"),
		clock:     clk,
		playback: playback.Config{
			Duration:       sc.Duration,
			Tick:           sc.Tick,
			SwipeThreshold: sc.SwipeThreshold,
			RetreatZone:    sc.RetreatZone,
		},
		interval: interval,
		stale:    true,
		sessions: make(map[string]*playback.Session),
	}
}

func (r *Impl) Stories() []domain.Story {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stories
}

func (r *Impl) Avatars(viewerID string) []rail.Avatar {
	groups := playback.Group(r.Stories(), viewerID)

	avatars := make([]rail.Avatar, 0, len(groups))
	for _, g := range groups {
		avatars = append(avatars, rail.Avatar{
			AuthorID: g.AuthorID,
			Name:     g.Name,
			Avatar:   g.Avatar,
			Viewed:   g.AllViewed,
			Count:    len(g.Stories),
		})
	}
	return avatars
}

// Launch opens a playback session over the cached list. The session's end
// invalidates the cache before onClose runs.
func (r *Impl) Launch(authorID string, viewer *domain.User, onClose func(playback.Ended)) (*playback.Session, error) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil, rail.ErrStopped
	}
	if !hasAuthor(r.stories, authorID) {
		r.mu.Unlock()
		return nil, rail.ErrUnknownAuthor
	}

	// playback.Launch never closes the session it returns, so ended cannot
	// run while r.mu is held here.
	s := playback.Launch(playback.Opts{
		Stories:  r.stories,
		AuthorID: authorID,
		Viewer:   viewer,
		Tracker:  r.Tracker,
		Logger:   r.Logger,
		Clock:    r.clock,
		Config:   r.playback,
		OnClose: func(e playback.Ended) {
			r.ended(e)
			if onClose != nil {
				onClose(e)
			}
		},
	})
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	metrics.SessionsLaunched.Inc()
	r.Logger.Info("Session launched", "session_id", s.ID(), "author_id", authorID)
	return s, nil
}

func (r *Impl) ended(e playback.Ended) {
	r.mu.Lock()
	delete(r.sessions, e.SessionID)
	r.mu.Unlock()

	metrics.SessionsEnded.WithLabelValues(string(e.Reason)).Inc()
	r.Logger.Info("Session ended", "session_id", e.SessionID, "reason", string(e.Reason))
	r.Invalidate()
}

// Refresh reloads the story list and hands it to every live session.
func (r *Impl) Refresh(ctx context.Context) error {
	return r.refresh(ctx, "manual")
}

func (r *Impl) refresh(ctx context.Context, trigger string) error {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	r.mu.RLock()
	seen := r.invalidated
	r.mu.RUnlock()

	stories, err := r.StoryRepo.List(ctx)
	if err != nil {
		metrics.RailRefreshes.WithLabelValues(trigger, "error").Inc()
		return fmt.Errorf("failed to refresh stories: %w", err)
	}

	r.mu.Lock()
	r.stories = stories
	r.stale = r.invalidated != seen
	live := make([]*playback.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.mu.Unlock()

	// Forwarded outside r.mu: a stale close re-enters the rail through ended.
	// Sessions launched after the snapshot already hold this list.
	for _, s := range live {
		s.Refresh(stories)
	}

	metrics.RailRefreshes.WithLabelValues(trigger, "ok").Inc()
	r.Logger.Debug("Stories refreshed", "trigger", trigger, "stories", len(stories), "sessions", len(live))
	return nil
}

// Invalidate never drops a request: invalidations that arrive while a
// refresh is running are coalesced into one more refresh after it.
func (r *Impl) Invalidate() {
	r.mu.Lock()
	r.stale = true
	r.invalidated++
	r.pending = true
	if r.stopped || r.draining {
		r.mu.Unlock()
		return
	}
	r.draining = true
	r.wg.Add(1)
	r.mu.Unlock()

	go r.drain()
}

func (r *Impl) drain() {
	defer r.wg.Done()
	for {
		r.mu.Lock()
		if !r.pending || r.stopped {
			r.draining = false
			r.mu.Unlock()
			return
		}
		r.pending = false
		r.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		if err := r.refresh(ctx, "invalidate"); err != nil {
			r.Logger.Warn("Failed to refresh invalidated stories", "error", err)
		}
		cancel()
	}
}

func (r *Impl) Stale() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stale
}

// Start loads the story list and schedules the periodic refresh.
func (r *Impl) Start(ctx context.Context) error {
	if err := r.refresh(ctx, "start"); err != nil {
		return err
	}

	scheduler, err := gocron.NewScheduler(gocron.WithClock(r.clock))
	if err != nil {
		return fmt.Errorf("failed to create refresh scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() {
			taskCtx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()
			if err := r.refresh(taskCtx, "schedule"); err != nil {
				r.Logger.Error("Scheduled story refresh failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule story refresh: %w", err)
	}

	scheduler.Start()

	r.mu.Lock()
	r.scheduler = scheduler
	r.mu.Unlock()

	r.Logger.Info("Story rail started", "refresh_interval", r.interval.String())
	return nil
}

// Stop shuts the scheduler down and closes every live session.
func (r *Impl) Stop() error {
	r.mu.Lock()
	r.stopped = true
	scheduler := r.scheduler
	r.scheduler = nil
	live := make([]*playback.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.mu.Unlock()

	for _, s := range live {
		s.Close()
	}

	var err error
	if scheduler != nil {
		if err = scheduler.Shutdown(); err != nil {
			err = fmt.Errorf("failed to shut down refresh scheduler: %w", err)
		}
	}
	r.wg.Wait()
	return err
}

func hasAuthor(stories []domain.Story, authorID string) bool {
	for _, s := range stories {
		if s.AuthorID == authorID {
			return true
		}
	}
	return false
}
