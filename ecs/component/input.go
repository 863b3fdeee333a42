package component

import (
	"github.com/milk9111/thumbstick/input"
	"github.com/milk9111/thumbstick/locomotion"
)

// Input owns the devices feeding one controller. Which fields are set
// depends on Mode: stick and touch modes fill Move/Rotate (touch also the
// zones), script and keyboard modes only set Sampler.
type Input struct {
	Mode    input.Mode
	Sampler locomotion.Sampler

	Move   *input.Stick
	Rotate *input.Stick

	MoveTouch   *input.TouchStick
	RotateTouch *input.TouchStick
}

// Sticks returns the non-nil physical sticks.
func (in *Input) Sticks() []*input.Stick {
	var out []*input.Stick
	for _, s := range []*input.Stick{in.Move, in.Rotate} {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

var InputComponent = NewComponent[Input]()
