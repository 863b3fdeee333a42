package input

import (
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/locomotion"
)

// sampleDispatchScript is appended to every input script. Scripts define
//
//	sample := func(tick, t) { return {move_x: 0, move_y: 1, rotate_x: 0, rotate_y: 0, taps: 0} }
//
// where tick counts samples from 1 and t is the simulated time in seconds.
const sampleDispatchScript = `
__out = sample(__tick, __time)
`

// ScriptSampler produces input frames from a tengo script, for demos and
// headless runs. A script error yields resting frames from then on.
type ScriptSampler struct {
	compiled *tengo.Compiled
	dt       float64
	tick     int64
	err      error
	log      *slog.Logger
}

var _ locomotion.Sampler = (*ScriptSampler)(nil)

// NewScriptSampler compiles src. dt is the simulated time that passes
// between two samples.
func NewScriptSampler(src []byte, dt float64, log *slog.Logger) (*ScriptSampler, error) {
	if !(dt > 0) {
		return nil, fmt.Errorf("input: script sampler step must be positive, got %g", dt)
	}
	if log == nil {
		log = slog.Default()
	}

	script := tengo.NewScript(append(append([]byte(nil), src...), sampleDispatchScript...))
	_ = script.Add("__tick", 0)
	_ = script.Add("__time", 0.0)
	_ = script.Add("__out", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script: %w", err)
	}
	return &ScriptSampler{compiled: compiled, dt: dt, log: log}, nil
}

// Err returns the error that stopped the script, if any.
func (s *ScriptSampler) Err() error {
	return s.err
}

func (s *ScriptSampler) Sample() locomotion.InputFrame {
	if s.err != nil {
		return locomotion.InputFrame{}
	}
	s.tick++

	if err := s.run(); err != nil {
		s.err = err
		s.log.Error("input: script sampler stopped", "tick", s.tick, "err", err)
		return locomotion.InputFrame{}
	}

	out := s.compiled.Get("__out").Map()
	return locomotion.InputFrame{
		Move:       locomotion.ClampUnit(mgl64.Vec2{number(out["move_x"]), number(out["move_y"])}),
		Rotate:     locomotion.ClampUnit(mgl64.Vec2{number(out["rotate_x"]), number(out["rotate_y"])}),
		RotateTaps: max(int(number(out["taps"])), 0),
	}
}

func (s *ScriptSampler) run() error {
	if err := s.compiled.Set("__tick", s.tick); err != nil {
		return err
	}
	if err := s.compiled.Set("__time", float64(s.tick)*s.dt); err != nil {
		return err
	}
	return s.compiled.Run()
}

func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}
