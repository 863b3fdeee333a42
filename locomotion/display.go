package locomotion

// Observer receives a report after every completed tick.
type Observer interface {
	Observe(r Report)
}

type ObserverFunc func(r Report)

func (f ObserverFunc) Observe(r Report) {
	f(r)
}

// DisplayState is what a presentation layer should show for the character.
// It is derived from motion, never fed back into it.
type DisplayState string

const (
	DisplayIdle DisplayState = "idle"
	DisplayWalk DisplayState = "walk"
	DisplayRun  DisplayState = "run"
	DisplayJump DisplayState = "jump"
	DisplayFall DisplayState = "fall"
)

const (
	idleSpeedEpsilon = 1e-3
	// DefaultRunThreshold is the horizontal speed above which a grounded
	// character is shown running.
	DefaultRunThreshold = 2.0
)

// DeriveDisplayState maps grounded state, horizontal speed and the sign of
// the vertical velocity onto a display state.
func DeriveDisplayState(grounded bool, horizontal, vertical, runThreshold float64) DisplayState {
	if !grounded {
		if vertical > 0 {
			return DisplayJump
		}
		return DisplayFall
	}
	switch {
	case horizontal < idleSpeedEpsilon:
		return DisplayIdle
	case horizontal < runThreshold:
		return DisplayWalk
	default:
		return DisplayRun
	}
}

// DisplayTracker is an Observer that follows the display state across ticks
// and calls OnChange whenever it changes.
type DisplayTracker struct {
	RunThreshold float64
	OnChange     func(from, to DisplayState, r Report)

	current DisplayState
}

func NewDisplayTracker(onChange func(from, to DisplayState, r Report)) *DisplayTracker {
	return &DisplayTracker{RunThreshold: DefaultRunThreshold, OnChange: onChange, current: DisplayIdle}
}

func (d *DisplayTracker) Current() DisplayState {
	if d.current == "" {
		return DisplayIdle
	}
	return d.current
}

func (d *DisplayTracker) Observe(r Report) {
	next := DeriveDisplayState(r.State.Grounded, horizontalSpeed(r.Step.Movement), r.State.VerticalVelocity(), d.RunThreshold)
	if r.Step.Jumped {
		next = DisplayJump
	}
	prev := d.Current()
	if next == prev {
		return
	}
	d.current = next
	if d.OnChange != nil {
		d.OnChange(prev, next, r)
	}
}
