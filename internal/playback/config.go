package playback

import "time"

const (
	DefaultDuration       = 5 * time.Second
	DefaultTick           = 50 * time.Millisecond
	DefaultSwipeThreshold = 50.0
	DefaultRetreatZone    = 1.0 / 3
)

type Config struct {
	Duration       time.Duration
	Tick           time.Duration
	SwipeThreshold float64
	RetreatZone    float64
}

func DefaultConfig() Config {
	return Config{
		Duration:       DefaultDuration,
		Tick:           DefaultTick,
		SwipeThreshold: DefaultSwipeThreshold,
		RetreatZone:    DefaultRetreatZone,
	}
}
