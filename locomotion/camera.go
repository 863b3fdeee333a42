package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/common"
)

// SmoothAxis is the state of one critically damped axis.
type SmoothAxis struct {
	Position float64
	Velocity float64
}

// CameraFollow eases the camera pivot toward the per-tick target offset. The
// depth axis uses a longer smoothing time than the lateral one so speed bursts
// do not yank the camera.
type CameraFollow struct {
	lateral     SmoothAxis
	depth       SmoothAxis
	lateralTime float64
	depthTime   float64
}

// NewCameraFollow starts at the given lateral/depth offset with zero
// approach velocity.
func NewCameraFollow(lateralTime, depthTime float64, start mgl64.Vec2) *CameraFollow {
	return &CameraFollow{
		lateral:     SmoothAxis{Position: start.X()},
		depth:       SmoothAxis{Position: start.Y()},
		lateralTime: lateralTime,
		depthTime:   depthTime,
	}
}

// Smooth advances both axes by dt and returns the new (lateral, depth) offset.
func (c *CameraFollow) Smooth(target CameraTarget, dt float64) mgl64.Vec2 {
	c.lateral.Position = common.SmoothDamp(c.lateral.Position, target.X, &c.lateral.Velocity, c.lateralTime, dt)
	c.depth.Position = common.SmoothDamp(c.depth.Position, target.Z, &c.depth.Velocity, c.depthTime, dt)
	return c.Offset()
}

func (c *CameraFollow) Offset() mgl64.Vec2 {
	return mgl64.Vec2{c.lateral.Position, c.depth.Position}
}

func (c *CameraFollow) State() (lateral, depth SmoothAxis) {
	return c.lateral, c.depth
}
