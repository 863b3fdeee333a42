package locomotion

import "github.com/go-gl/mathgl/mgl64"

// PhysicsMover moves the character through the world, resolving collisions.
type PhysicsMover interface {
	Move(displacement mgl64.Vec3)
	IsGrounded() bool
	Velocity() mgl64.Vec3
}

// BodyMover applies displacements and reports the grounded state that results.
type BodyMover struct {
	physics PhysicsMover
}

func NewBodyMover(physics PhysicsMover) *BodyMover {
	return &BodyMover{physics: physics}
}

// Move hands d to the physics mover and returns whether the character ended
// up on the ground. A grounded result obliges the caller to land the
// GravityModel.
func (b *BodyMover) Move(d mgl64.Vec3) bool {
	b.physics.Move(d)
	return b.physics.IsGrounded()
}

func (b *BodyMover) Grounded() bool {
	return b.physics.IsGrounded()
}

func (b *BodyMover) Velocity() mgl64.Vec3 {
	return b.physics.Velocity()
}
