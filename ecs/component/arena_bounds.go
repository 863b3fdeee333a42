package component

import "github.com/go-gl/mathgl/mgl64"

// ArenaBounds is the horizontal extent of the arena in world X/Z, used to
// frame the top-down debug view.
type ArenaBounds struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func (b ArenaBounds) Size() mgl64.Vec2 {
	return b.Max.Sub(b.Min)
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
