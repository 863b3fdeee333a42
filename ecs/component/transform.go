package component

import "github.com/milk9111/thumbstick/locomotion"

// Transform is the character's body node: world position plus the yaw the
// rotation controller applies.
type Transform struct {
	Body *locomotion.Transform
}

var TransformComponent = NewComponent[Transform]()
