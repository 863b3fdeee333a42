package input

import "github.com/milk9111/thumbstick/locomotion"

// KeyboardMouseSampler is the desktop adapter. No desktop control scheme has
// been designed yet, so it always reports a resting frame.
type KeyboardMouseSampler struct{}

func (KeyboardMouseSampler) Sample() locomotion.InputFrame {
	return locomotion.InputFrame{}
}
