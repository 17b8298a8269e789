package playback

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock advances a 0..100 progress value over a fixed duration and reports
// completion once. At most one run is active; Start cancels the previous one.
type Clock struct {
	clk      clockwork.Clock
	duration time.Duration
	tick     time.Duration

	mu  sync.Mutex
	run *clockRun
}

type clockRun struct {
	ticker clockwork.Ticker
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (r *clockRun) cancel() {
	r.once.Do(func() {
		r.ticker.Stop()
		close(r.stop)
	})
}

func (r *clockRun) stopped() bool {
	select {
	case <-r.stop:
		return true
	default:
		return false
	}
}

func NewClock(clk clockwork.Clock, duration, tick time.Duration) *Clock {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	if tick <= 0 {
		tick = DefaultTick
	}
	if duration < tick {
		duration = tick
	}
	return &Clock{clk: clk, duration: duration, tick: tick}
}

// Start begins a new run. onTick receives the progress after every tick;
// onComplete fires once, after the tick that reaches 100.
func (c *Clock) Start(onTick func(progress int), onComplete func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.run != nil {
		c.run.cancel()
	}

	r := &clockRun{
		ticker: c.clk.NewTicker(c.tick),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	c.run = r

	go c.loop(r, onTick, onComplete)
}

func (c *Clock) loop(r *clockRun, onTick func(int), onComplete func()) {
	defer close(r.done)

	var elapsed time.Duration
	for {
		select {
		case <-r.stop:
			return
		case <-r.ticker.Chan():
		}
		if r.stopped() {
			return
		}

		elapsed += c.tick
		progress := int(elapsed * 100 / c.duration)
		if progress > 100 {
			progress = 100
		}
		if onTick != nil {
			onTick(progress)
		}
		if progress < 100 {
			continue
		}

		r.cancel()
		if onComplete != nil {
			onComplete()
		}
		return
	}
}

// Stop cancels the current run. Ticks that arrive after Stop are dropped.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.run != nil {
		c.run.cancel()
		c.run = nil
	}
}

func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run != nil && !c.run.stopped()
}

// Done returns a channel closed when the current run's goroutine exits. It
// is nil when the clock was never started or has been stopped.
func (c *Clock) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == nil {
		return nil
	}
	return c.run.done
}
