package playback

import "math"

type Intent int

const (
	IntentNone Intent = iota
	IntentAdvance
	IntentRetreat
)

func (i Intent) String() string {
	switch i {
	case IntentAdvance:
		return "advance"
	case IntentRetreat:
		return "retreat"
	}
	return "none"
}

// Gesture turns a horizontal swipe into an intent. It is either idle or
// awaiting the end of a touch that started at startX.
type Gesture struct {
	threshold float64
	awaiting  bool
	startX    float64
}

func NewGesture(threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Gesture{threshold: threshold}
}

func (g *Gesture) Begin(x float64) {
	g.awaiting = true
	g.startX = x
}

// End finishes the gesture and resets the recognizer. Swiping left moves
// forward, swiping right moves back.
func (g *Gesture) End(x float64) Intent {
	if !g.awaiting {
		return IntentNone
	}
	delta := g.startX - x
	g.awaiting = false
	g.startX = 0

	if math.Abs(delta) <= g.threshold {
		return IntentNone
	}
	if delta > 0 {
		return IntentAdvance
	}
	return IntentRetreat
}

// Zones maps a tap to an intent: the left RetreatRatio of the width goes
// back, the rest goes forward.
type Zones struct {
	RetreatRatio float64
}

func (z Zones) Hit(x, width float64) Intent {
	if width <= 0 || x < 0 || x > width {
		return IntentNone
	}
	ratio := z.RetreatRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultRetreatZone
	}
	if x < width*ratio {
		return IntentRetreat
	}
	return IntentAdvance
}
