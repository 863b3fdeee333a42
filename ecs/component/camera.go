package component

import "github.com/milk9111/thumbstick/locomotion"

// CameraRig is the pivot the camera hangs from. Its local position is the
// smoothed follow offset; its orientation carries the pitch.
type CameraRig struct {
	Pivot *locomotion.Transform
}

var CameraRigComponent = NewComponent[CameraRig]()
