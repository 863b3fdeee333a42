package component

import "github.com/milk9111/thumbstick/locomotion"

type Locomotion struct {
	Controller *locomotion.Controller
}

var LocomotionComponent = NewComponent[Locomotion]()
