package input

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/locomotion"
)

const (
	DefaultDeadzone  = 0.2
	DefaultTapWindow = 0.3
)

// StickConfig tunes how raw stick readings are conditioned.
type StickConfig struct {
	// Deadzone is applied per axis; readings beyond it are rescaled so the
	// output still spans [-1, 1].
	Deadzone float64
	// TapWindow is how long, in seconds, a press may follow the previous
	// one and still count toward the same tap sequence.
	TapWindow float64
}

func DefaultStickConfig() StickConfig {
	return StickConfig{Deadzone: DefaultDeadzone, TapWindow: DefaultTapWindow}
}

// StickConfigFrom takes the input conditioning out of a controller config.
func StickConfigFrom(cfg locomotion.Config) StickConfig {
	return StickConfig{Deadzone: cfg.Deadzone, TapWindow: cfg.TapWindow}
}

// Validate rejects a deadzone outside [0, 1), which would swallow the whole
// stick, and a tap window that could never hold two taps.
func (c StickConfig) Validate() error {
	var errs []error
	if !(c.Deadzone >= 0 && c.Deadzone < 1) {
		errs = append(errs, fmt.Errorf("%w: deadzone must be in [0, 1), got %g", locomotion.ErrInvalidConfig, c.Deadzone))
	}
	if !(c.TapWindow > 0) || math.IsInf(c.TapWindow, 0) {
		errs = append(errs, fmt.Errorf("%w: tap window must be positive, got %g", locomotion.ErrInvalidConfig, c.TapWindow))
	}
	return errors.Join(errs...)
}

// Stick is a locomotion.Device fed by a polling layer (gamepad, touch).
// It holds the conditioned position and the current tap sequence.
type Stick struct {
	cfg StickConfig

	enabled  bool
	position mgl64.Vec2
	taps     int
	window   float64
}

var _ locomotion.Device = (*Stick)(nil)

func NewStick(cfg StickConfig) *Stick {
	return &Stick{cfg: cfg, enabled: true}
}

func (s *Stick) Position() mgl64.Vec2 {
	if !s.enabled {
		return mgl64.Vec2{}
	}
	return s.position
}

func (s *Stick) TapCount() int {
	if !s.enabled {
		return 0
	}
	return s.taps
}

// Config returns the stick's current tuning.
func (s *Stick) Config() StickConfig {
	return s.cfg
}

// Configure swaps the conditioning. The current reading and tap sequence are
// kept; the new values apply from the next Set or Tap. An invalid config is
// rejected and the old one kept.
func (s *Stick) Configure(cfg StickConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func (s *Stick) Enable() {
	s.enabled = true
}

// Disable zeroes the stick and ignores further input until Enable.
func (s *Stick) Disable() {
	s.enabled = false
	s.Reset()
}

func (s *Stick) Enabled() bool {
	return s.enabled
}

func (s *Stick) Reset() {
	s.position = mgl64.Vec2{}
	s.taps = 0
	s.window = 0
}

// Set stores a raw reading after deadzone and unit-disk conditioning.
func (s *Stick) Set(raw mgl64.Vec2) {
	if !s.enabled {
		return
	}
	s.position = locomotion.ClampUnit(mgl64.Vec2{
		applyDeadzone(raw.X(), s.cfg.Deadzone),
		applyDeadzone(raw.Y(), s.cfg.Deadzone),
	})
}

// Tap registers a press. Presses inside the tap window extend the current
// sequence; a press after it expired starts a new one.
func (s *Stick) Tap() {
	if !s.enabled {
		return
	}
	if s.window > 0 {
		s.taps++
		return
	}
	s.taps = 1
	s.window = s.cfg.TapWindow
}

// Advance ages the tap window by dt seconds; the tap count drops to zero once
// the window closes.
func (s *Stick) Advance(dt float64) {
	if s.window > 0 {
		s.window -= dt
		return
	}
	s.taps = 0
}

func applyDeadzone(v, deadzone float64) float64 {
	a := math.Abs(v)
	if a < deadzone || deadzone >= 1 {
		return 0
	}
	return math.Copysign((a-deadzone)/(1-deadzone), v)
}
