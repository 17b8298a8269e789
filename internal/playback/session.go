package playback

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/orgball2608/story-playback/internal/tracker"
	"github.com/orgball2608/story-playback/pkg/logger"
)

type State int

const (
	StateInert State = iota
	StateLoading
	StatePlaying
	StateExpanded
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateExpanded:
		return "expanded"
	case StateClosed:
		return "closed"
	}
	return "inert"
}

type Reason string

const (
	ReasonFinished       Reason = "finished"
	ReasonClosed         Reason = "closed"
	ReasonViewerSelected Reason = "viewer_selected"
	ReasonStale          Reason = "stale"
)

// Ended is sent once when a session closes. The story list the session was
// launched with may be stale from then on.
type Ended struct {
	SessionID string
	Reason    Reason
	Viewer    *domain.Viewer // set when the owner picked a viewer from the stats overlay
}

// Frame is what the host renders for the current instant.
type Frame struct {
	SessionID    string
	State        State
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	StoryIndex   int
	StoryCount   int
	Story        *domain.Story
	Progress     int
	IsMine       bool
	MediaFailed  bool
	Stats        *Stats
}

type Opts struct {
	Stories  []domain.Story
	AuthorID string
	Viewer   *domain.User
	Tracker  tracker.Client
	Logger   logger.Logger
	Clock    clockwork.Clock
	Config   Config
	OnClose  func(Ended)
}

// Session is one full-screen playback, from launch to close. All commands
// are serialized; callbacks and view tracking run after the lock is released.
type Session struct {
	id      string
	logger  logger.Logger
	tracker tracker.Client
	viewer  *domain.User
	onClose func(Ended)
	zones   Zones

	mu          sync.Mutex
	clock       *Clock
	clockGen    uint64
	gesture     *Gesture
	groups      []domain.AuthorGroup
	authorID    string
	index       int
	progress    int
	state       State
	mediaFailed bool
	stats       *Stats
}

type effects []func()

func (e effects) run() {
	for _, f := range e {
		f()
	}
}

// Launch starts a session at the first story of authorID. With no stories
// for that author the session is inert: it renders nothing and ignores
// navigation.
func Launch(opts Opts) *Session {
	cfg := withDefaults(opts.Config)

	s := &Session{
		id:      uuid.NewString(),
		logger:  opts.Logger.WithComponent("Playback"),
		tracker: opts.Tracker,
		viewer:  opts.Viewer,
		onClose: opts.OnClose,
		zones:   Zones{RetreatRatio: cfg.RetreatZone},
		clock:   NewClock(opts.Clock, cfg.Duration, cfg.Tick),
		gesture: NewGesture(cfg.SwipeThreshold),
		groups:  Group(opts.Stories, viewerID(opts.Viewer)),
	}

	if findGroup(s.groups, opts.AuthorID) < 0 {
		s.logger.Warn("No stories for author, session is inert", "session_id", s.id, "author_id", opts.AuthorID)
		return s
	}

	s.mu.Lock()
	s.authorID = opts.AuthorID
	fx := s.activateLocked()
	s.mu.Unlock()
	fx.run()

	s.logger.Debug("Session launched", "session_id", s.id, "author_id", opts.AuthorID)
	return s
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Duration <= 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.SwipeThreshold <= 0 {
		cfg.SwipeThreshold = def.SwipeThreshold
	}
	if cfg.RetreatZone <= 0 || cfg.RetreatZone >= 1 {
		cfg.RetreatZone = def.RetreatZone
	}
	return cfg
}

func viewerID(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := Frame{
		SessionID:   s.id,
		State:       s.state,
		Progress:    s.progress,
		MediaFailed: s.mediaFailed,
	}
	if !s.liveLocked() {
		return f
	}

	g := s.groups[findGroup(s.groups, s.authorID)]
	story := g.Stories[s.index]
	f.AuthorID = g.AuthorID
	f.AuthorName = g.Name
	f.AuthorAvatar = g.Avatar
	f.StoryIndex = s.index
	f.StoryCount = len(g.Stories)
	f.Story = &story
	f.IsMine = IsMyStory(story, s.viewer)
	if s.stats != nil {
		st := *s.stats
		f.Stats = &st
	}
	return f
}

func (s *Session) Advance() {
	s.navigate(IntentAdvance)
}

func (s *Session) Retreat() {
	s.navigate(IntentRetreat)
}

// Tap handles a tap at x on a surface of the given width.
func (s *Session) Tap(x, width float64) {
	s.navigate(s.zones.Hit(x, width))
}

func (s *Session) TouchStart(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.navigableLocked() {
		s.gesture.Begin(x)
	}
}

func (s *Session) TouchEnd(x float64) {
	s.mu.Lock()
	intent := s.gesture.End(x)
	fx := s.navigateLocked(intent)
	s.mu.Unlock()
	fx.run()
}

func (s *Session) navigate(intent Intent) {
	s.mu.Lock()
	fx := s.navigateLocked(intent)
	s.mu.Unlock()
	fx.run()
}

func (s *Session) navigateLocked(intent Intent) effects {
	if !s.navigableLocked() {
		return nil
	}
	switch intent {
	case IntentAdvance:
		return s.advanceLocked()
	case IntentRetreat:
		return s.retreatLocked()
	}
	return nil
}

// MediaLoaded starts playback of storyID. Loads for anything but the active
// story of a live session are discarded.
func (s *Session) MediaLoaded(storyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading || s.activeLocked().ID != storyID {
		s.logger.Debug("Ignoring stale media load", "session_id", s.id, "story_id", storyID, "state", s.state.String())
		return
	}
	s.state = StatePlaying
	s.mediaFailed = false
	s.startClockLocked()
}

// MediaFailed marks the active story as unrenderable. Playback stays in
// loading; the viewer can still navigate away.
func (s *Session) MediaFailed(storyID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading || s.activeLocked().ID != storyID {
		return
	}
	s.mediaFailed = true
	s.logger.Warn("Story media failed to load", "session_id", s.id, "story_id", storyID, "error", err)
}

// Expand opens the stats overlay and pauses playback. Only the story's
// owner can open it, and only while the story is playing.
func (s *Session) Expand() (Stats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return Stats{}, false
	}
	active := s.activeLocked()
	if !IsMyStory(active, s.viewer) {
		return Stats{}, false
	}

	s.stopClockLocked()
	st := NewStats(active)
	s.stats = &st
	s.state = StateExpanded
	return st, true
}

// Collapse closes the stats overlay and replays the active story from 0.
func (s *Session) Collapse() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateExpanded {
		return
	}
	s.stats = nil
	s.progress = 0
	s.state = StatePlaying
	s.startClockLocked()
}

// SelectViewer picks a viewer from the open stats overlay. The session
// closes so the host can navigate to that viewer.
func (s *Session) SelectViewer(viewerID string) (domain.Viewer, bool) {
	s.mu.Lock()
	if s.state != StateExpanded || s.stats == nil {
		s.mu.Unlock()
		return domain.Viewer{}, false
	}
	v, ok := s.stats.find(viewerID)
	if !ok {
		s.mu.Unlock()
		return domain.Viewer{}, false
	}
	fx := s.closeLocked(ReasonViewerSelected, &v)
	s.mu.Unlock()
	fx.run()
	return v, true
}

func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	fx := s.closeLocked(ReasonClosed, nil)
	s.mu.Unlock()
	fx.run()
}

// Refresh swaps in a newer story list. Groups are derived again from
// scratch; the session follows the active author and closes if it is gone.
func (s *Session) Refresh(stories []domain.Story) {
	s.mu.Lock()
	if !s.liveLocked() {
		s.mu.Unlock()
		return
	}

	prev := s.activeLocked().ID
	s.groups = Group(stories, viewerID(s.viewer))

	var fx effects
	g := findGroup(s.groups, s.authorID)
	switch {
	case g < 0:
		fx = s.closeLocked(ReasonStale, nil)
	default:
		if last := len(s.groups[g].Stories) - 1; s.index > last {
			s.index = last
		}
		active := s.activeLocked()
		if active.ID != prev {
			fx = s.activateLocked()
		} else if s.stats != nil {
			st := NewStats(active)
			s.stats = &st
		}
	}
	s.mu.Unlock()
	fx.run()
}

func (s *Session) liveLocked() bool {
	return s.state != StateInert && s.state != StateClosed
}

func (s *Session) navigableLocked() bool {
	return s.liveLocked() && s.state != StateExpanded
}

func (s *Session) activeLocked() domain.Story {
	g := findGroup(s.groups, s.authorID)
	if g < 0 || s.index >= len(s.groups[g].Stories) {
		return domain.Story{}
	}
	return s.groups[g].Stories[s.index]
}

func (s *Session) advanceLocked() effects {
	g := findGroup(s.groups, s.authorID)
	if s.index < len(s.groups[g].Stories)-1 {
		s.index++
		return s.activateLocked()
	}
	if g < len(s.groups)-1 {
		s.authorID = s.groups[g+1].AuthorID
		s.index = 0
		return s.activateLocked()
	}
	return s.closeLocked(ReasonFinished, nil)
}

func (s *Session) retreatLocked() effects {
	g := findGroup(s.groups, s.authorID)
	if s.index > 0 {
		s.index--
		return s.activateLocked()
	}
	if g > 0 {
		prev := s.groups[g-1]
		s.authorID = prev.AuthorID
		s.index = len(prev.Stories) - 1
		return s.activateLocked()
	}
	return nil
}

// activateLocked makes the story at the current position active: the clock
// is cancelled, progress resets and playback waits for the media.
func (s *Session) activateLocked() effects {
	s.stopClockLocked()
	s.progress = 0
	s.mediaFailed = false
	s.stats = nil
	s.state = StateLoading

	story := s.activeLocked()
	if s.tracker == nil || s.viewer == nil {
		return nil
	}
	viewer := *s.viewer
	return effects{func() { s.tracker.Record(story.ID, viewer) }}
}

func (s *Session) closeLocked(reason Reason, viewer *domain.Viewer) effects {
	s.stopClockLocked()
	s.state = StateClosed
	s.stats = nil

	ended := Ended{SessionID: s.id, Reason: reason, Viewer: viewer}
	s.logger.Debug("Session closed", "session_id", s.id, "reason", string(reason))
	if s.onClose == nil {
		return nil
	}
	return effects{func() { s.onClose(ended) }}
}

func (s *Session) stopClockLocked() {
	s.clockGen++
	s.clock.Stop()
}

func (s *Session) startClockLocked() {
	s.clockGen++
	gen := s.clockGen
	s.clock.Start(
		func(progress int) { s.onTick(gen, progress) },
		func() { s.onComplete(gen) },
	)
}

func (s *Session) onTick(gen uint64, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.clockGen || s.state != StatePlaying {
		return
	}
	s.progress = progress
}

func (s *Session) onComplete(gen uint64) {
	s.mu.Lock()
	if gen != s.clockGen || s.state != StatePlaying {
		s.mu.Unlock()
		return
	}
	fx := s.advanceLocked()
	s.mu.Unlock()
	fx.run()
}
