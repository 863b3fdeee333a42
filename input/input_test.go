package input

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/locomotion"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func near2(a, b mgl64.Vec2, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestStickDeadzone(t *testing.T) {
	cases := []struct {
		name string
		raw  mgl64.Vec2
		want mgl64.Vec2
	}{
		{"inside_deadzone", mgl64.Vec2{0.1, -0.15}, mgl64.Vec2{}},
		{"full_right", mgl64.Vec2{1, 0}, mgl64.Vec2{1, 0}},
		{"rescaled", mgl64.Vec2{0.6, -0.6}, mgl64.Vec2{0.5, -0.5}},
		{"one_axis_dead", mgl64.Vec2{0.1, 0.6}, mgl64.Vec2{0, 0.5}},
		{"clamped_corner", mgl64.Vec2{1, 1}, mgl64.Vec2{math.Sqrt2 / 2, math.Sqrt2 / 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStick(DefaultStickConfig())
			s.Set(c.raw)
			if got := s.Position(); !near2(got, c.want, 1e-9) {
				t.Fatalf("Set(%v) -> %v, want %v", c.raw, got, c.want)
			}
		})
	}
}

func TestStickTapWindow(t *testing.T) {
	s := NewStick(StickConfig{TapWindow: 0.3})
	dt := 1.0 / 60.0

	s.Tap()
	for i := 0; i < 5; i++ {
		s.Advance(dt)
	}
	s.Tap()
	if s.TapCount() != 2 {
		t.Fatalf("two taps inside the window should count 2, got %d", s.TapCount())
	}

	for i := 0; i < 30; i++ {
		s.Advance(dt)
	}
	if s.TapCount() != 0 {
		t.Fatalf("tap count should reset after the window, got %d", s.TapCount())
	}

	s.Tap()
	if s.TapCount() != 1 {
		t.Fatalf("a tap after expiry starts a new sequence, got %d", s.TapCount())
	}
}

func TestStickDisable(t *testing.T) {
	s := NewStick(DefaultStickConfig())
	s.Set(mgl64.Vec2{1, 0})
	s.Tap()
	s.Disable()

	if s.Position() != (mgl64.Vec2{}) || s.TapCount() != 0 {
		t.Fatalf("disabled stick must read zero")
	}
	s.Set(mgl64.Vec2{0, 1})
	s.Tap()
	s.Enable()
	if s.Position() != (mgl64.Vec2{}) || s.TapCount() != 0 {
		t.Fatalf("input while disabled must be dropped, got %v taps=%d", s.Position(), s.TapCount())
	}
}

func TestTouchStick(t *testing.T) {
	zone := TouchZone{CenterX: 100, CenterY: 500, Radius: 50}
	ts := NewTouchStick(zone, NewStick(StickConfig{TapWindow: 0.3}))

	if ts.Begin(1, 400, 400) {
		t.Fatalf("touch outside the zone must not be captured")
	}
	if !ts.Begin(2, 100, 500) {
		t.Fatalf("touch at the centre should be captured")
	}
	if ts.Begin(3, 110, 500) {
		t.Fatalf("a second finger must not steal the stick")
	}

	ts.Move(2, 150, 500)
	if got := ts.Stick.Position(); !near2(got, mgl64.Vec2{1, 0}, 1e-9) {
		t.Fatalf("drag to the right edge -> %v", got)
	}
	ts.Move(2, 100, 450)
	if got := ts.Stick.Position(); !near2(got, mgl64.Vec2{0, 1}, 1e-9) {
		t.Fatalf("drag up -> %v", got)
	}
	ts.Move(2, 100, 300)
	if got := ts.Stick.Position(); !near2(got, mgl64.Vec2{0, 1}, 1e-9) {
		t.Fatalf("drag past the edge should clamp, got %v", got)
	}

	ts.End(3)
	if _, active := ts.Active(); !active {
		t.Fatalf("ending a foreign touch must not release the stick")
	}
	ts.End(2)
	if ts.Stick.Position() != (mgl64.Vec2{}) {
		t.Fatalf("released stick should recentre")
	}
	if ts.Stick.TapCount() != 1 {
		t.Fatalf("capture counts as a tap, got %d", ts.Stick.TapCount())
	}

	ts.Begin(4, 100, 500)
	if ts.Stick.TapCount() != 2 {
		t.Fatalf("quick second touch should count two taps, got %d", ts.Stick.TapCount())
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeStick, false},
		{"stick", ModeStick, false},
		{" Touch ", ModeTouch, false},
		{"keyboard", ModeKeyboard, false},
		{"script", ModeScript, false},
		{"wiimote", "", true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseMode(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("ParseMode(%q) err = %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("ParseMode(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestKeyboardSamplerIsAtRest(t *testing.T) {
	if f := (KeyboardMouseSampler{}).Sample(); !f.IsZero() {
		t.Fatalf("keyboard sampler should produce a resting frame, got %+v", f)
	}
}

func TestScriptSampler(t *testing.T) {
	src := []byte(`
sample := func(tick, t) {
	out := {move_x: 0.0, move_y: 1, rotate_x: 0.5, rotate_y: 0.0, taps: 0}
	if tick == 2 {
		out.taps = 2
		out.move_x = 3.0
	}
	return out
}
`)
	s, err := NewScriptSampler(src, 1.0/60.0, quietLogger())
	if err != nil {
		t.Fatalf("NewScriptSampler: %v", err)
	}

	f := s.Sample()
	if f.Move != (mgl64.Vec2{0, 1}) || f.Rotate != (mgl64.Vec2{0.5, 0}) || f.RotateTaps != 0 {
		t.Fatalf("first frame = %+v", f)
	}

	f = s.Sample()
	if f.RotateTaps != 2 {
		t.Fatalf("second frame taps = %d, want 2", f.RotateTaps)
	}
	if l := f.Move.Len(); math.Abs(l-1) > 1e-9 {
		t.Fatalf("script output must be clamped to the unit disk, len %v", l)
	}
}

func TestScriptSamplerTime(t *testing.T) {
	src := []byte(`
sample := func(tick, t) {
	return {move_y: t}
}
`)
	s, err := NewScriptSampler(src, 0.25, quietLogger())
	if err != nil {
		t.Fatalf("NewScriptSampler: %v", err)
	}
	s.Sample()
	if f := s.Sample(); math.Abs(f.Move.Y()-0.5) > 1e-9 {
		t.Fatalf("t at second sample = %v, want 0.5", f.Move.Y())
	}
}

func TestScriptSamplerErrors(t *testing.T) {
	if _, err := NewScriptSampler([]byte(`sample := func(`), 1.0/60.0, quietLogger()); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := NewScriptSampler([]byte(`sample := func(a, b) { return {} }`), 0, quietLogger()); err == nil {
		t.Fatalf("expected error for zero step")
	}

	s, err := NewScriptSampler([]byte(`
sample := func(tick, t) {
	if tick > 1 {
		return [1, 2][5]
	}
	return {move_y: 1}
}
`), 1.0/60.0, quietLogger())
	if err != nil {
		t.Fatalf("NewScriptSampler: %v", err)
	}
	if f := s.Sample(); f.Move.Y() != 1 {
		t.Fatalf("first frame = %+v", f)
	}
	s.Sample()
	if f := s.Sample(); !f.IsZero() {
		t.Fatalf("frames after a runtime error must be at rest, got %+v", f)
	}
}

func TestStickConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     StickConfig
		wantErr bool
	}{
		{"defaults", DefaultStickConfig(), false},
		{"no_deadzone", StickConfig{Deadzone: 0, TapWindow: 0.3}, false},
		{"deadzone_swallows_stick", StickConfig{Deadzone: 1.5, TapWindow: 0.3}, true},
		{"negative_deadzone", StickConfig{Deadzone: -0.2, TapWindow: 0.3}, true},
		{"negative_tap_window", StickConfig{Deadzone: 0.2, TapWindow: -1}, true},
		{"zero_tap_window", StickConfig{Deadzone: 0.2}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate() = %v", err)
			}
			if err != nil && !errors.Is(err, locomotion.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestStickConfigure(t *testing.T) {
	s := NewStick(DefaultStickConfig())
	if err := s.Configure(StickConfig{Deadzone: 0.5, TapWindow: 0.3}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	s.Set(mgl64.Vec2{0.4, 0})
	if s.Position() != (mgl64.Vec2{}) {
		t.Fatalf("reading inside the new deadzone should be dropped, got %v", s.Position())
	}
	if err := s.Configure(StickConfig{Deadzone: 1.5, TapWindow: 0.3}); !errors.Is(err, locomotion.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if s.Config().Deadzone != 0.5 {
		t.Fatalf("rejected config replaced the old one: %+v", s.Config())
	}
}

func TestStickConfigFrom(t *testing.T) {
	if got := StickConfigFrom(locomotion.DefaultConfig()); got != DefaultStickConfig() {
		t.Fatalf("controller and stick defaults disagree: %+v vs %+v", got, DefaultStickConfig())
	}
	cfg := locomotion.DefaultConfig()
	cfg.Deadzone, cfg.TapWindow = 0.1, 0.5
	if got := StickConfigFrom(cfg); got != (StickConfig{Deadzone: 0.1, TapWindow: 0.5}) {
		t.Fatalf("StickConfigFrom = %+v", got)
	}
}
