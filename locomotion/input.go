package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// InputFrame is one tick's worth of stick input. Both sticks lie in the unit
// disk; the zero frame is a valid resting state.
type InputFrame struct {
	Move       mgl64.Vec2
	Rotate     mgl64.Vec2
	RotateTaps int
}

func (f InputFrame) IsZero() bool {
	return f == InputFrame{}
}

// Device is a single analog stick.
type Device interface {
	Position() mgl64.Vec2
	TapCount() int
	Enable()
	Disable()
}

// Sampler produces the input frame for a tick. It is called at most once per
// tick and must not block.
type Sampler interface {
	Sample() InputFrame
}

// DeviceOwner is implemented by samplers that read physical devices; the
// controller disables those devices when the session ends.
type DeviceOwner interface {
	Devices() []Device
}

// StickSampler reads a movement stick and a rotation stick.
type StickSampler struct {
	move   Device
	rotate Device
}

func NewStickSampler(move, rotate Device) *StickSampler {
	return &StickSampler{move: move, rotate: rotate}
}

func (s *StickSampler) Sample() InputFrame {
	var f InputFrame
	if s == nil {
		return f
	}
	if s.move != nil {
		f.Move = ClampUnit(s.move.Position())
	}
	if s.rotate != nil {
		f.Rotate = ClampUnit(s.rotate.Position())
		f.RotateTaps = max(s.rotate.TapCount(), 0)
	}
	return f
}

func (s *StickSampler) Devices() []Device {
	if s == nil {
		return nil
	}
	var out []Device
	if s.move != nil {
		out = append(out, s.move)
	}
	if s.rotate != nil {
		out = append(out, s.rotate)
	}
	return out
}

// ClampUnit pulls v back onto the unit disk. Vectors already inside are
// returned unchanged.
func ClampUnit(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	switch {
	case math.IsNaN(l) || math.IsInf(l, 0):
		return mgl64.Vec2{}
	case l > 1:
		return v.Mul(1 / l)
	}
	return v
}
