package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thumbstick/locomotion"
)

// CharacterMover is a physics mover that can also report where it is.
type CharacterMover interface {
	locomotion.PhysicsMover
	Position() mgl64.Vec3
}

// PhysicsBody links an entity to its Chipmunk-backed character.
type PhysicsBody struct {
	Mover  CharacterMover
	Body   *cp.Body
	Radius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
