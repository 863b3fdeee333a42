package locomotion

import "github.com/go-gl/mathgl/mgl64"

type Space int

const (
	SpaceLocal Space = iota
	SpaceWorld
)

func (s Space) String() string {
	switch s {
	case SpaceLocal:
		return "local"
	case SpaceWorld:
		return "world"
	default:
		return "unknown"
	}
}

var (
	worldUp    = mgl64.Vec3{0, 1, 0}
	localRight = mgl64.Vec3{1, 0, 0}
)

// Node is a transform the controller rotates or offsets but does not own.
type Node interface {
	Rotate(q mgl64.Quat, space Space)
	Orientation() mgl64.Quat
	LocalPosition() mgl64.Vec3
	SetLocalPosition(p mgl64.Vec3)
}

// Transform is a plain position/orientation pair implementing Node. For a
// root node local and world space coincide.
type Transform struct {
	position    mgl64.Vec3
	orientation mgl64.Quat
}

func NewTransform(position mgl64.Vec3) *Transform {
	return &Transform{position: position, orientation: mgl64.QuatIdent()}
}

func (t *Transform) Rotate(q mgl64.Quat, space Space) {
	if space == SpaceWorld {
		t.orientation = q.Mul(t.orientation).Normalize()
		return
	}
	t.orientation = t.orientation.Mul(q).Normalize()
}

func (t *Transform) Orientation() mgl64.Quat {
	return t.orientation
}

func (t *Transform) SetOrientation(q mgl64.Quat) {
	t.orientation = q.Normalize()
}

func (t *Transform) LocalPosition() mgl64.Vec3 {
	return t.position
}

func (t *Transform) SetLocalPosition(p mgl64.Vec3) {
	t.position = p
}

// Forward is the node's +Z axis in its parent's space.
func (t *Transform) Forward() mgl64.Vec3 {
	return t.orientation.Rotate(mgl64.Vec3{0, 0, 1})
}
