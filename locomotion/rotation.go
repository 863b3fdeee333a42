package locomotion

import "github.com/go-gl/mathgl/mgl64"

// RotationController turns the body with the rotation stick's X axis and
// pitches the camera pivot with its Y axis. Nothing turns in mid-air.
type RotationController struct {
	horizontal float64
	vertical   float64
	body       Node
	pivot      Node
}

func NewRotationController(horizontal, vertical float64, body, pivot Node) *RotationController {
	return &RotationController{horizontal: horizontal, vertical: vertical, body: body, pivot: pivot}
}

// Apply rotates the nodes for this tick and reports whether it did.
func (r *RotationController) Apply(in InputFrame, grounded bool, dt float64) bool {
	if !grounded {
		return false
	}

	yaw := in.Rotate.X() * r.horizontal * dt
	pitch := in.Rotate.Y() * r.vertical * dt

	r.body.Rotate(mgl64.QuatRotate(mgl64.DegToRad(yaw), worldUp), SpaceWorld)
	r.pivot.Rotate(mgl64.QuatRotate(mgl64.DegToRad(pitch), localRight), SpaceLocal)
	return true
}
