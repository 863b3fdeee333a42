package input

import "github.com/go-gl/mathgl/mgl64"

// TouchZone is a circular on-screen region acting as a virtual stick.
type TouchZone struct {
	CenterX float64
	CenterY float64
	Radius  float64
}

func (z TouchZone) Contains(x, y float64) bool {
	dx, dy := x-z.CenterX, y-z.CenterY
	return dx*dx+dy*dy <= z.Radius*z.Radius
}

// Normalize maps a screen point to stick space: +X right, +Y up (screen Y
// grows downward).
func (z TouchZone) Normalize(x, y float64) mgl64.Vec2 {
	if z.Radius <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{(x - z.CenterX) / z.Radius, (z.CenterY - y) / z.Radius}
}

// TouchStick binds a single touch to a Stick for as long as the finger stays
// down. A touch that begins inside the zone captures it and counts as a tap.
type TouchStick struct {
	Zone  TouchZone
	Stick *Stick

	touchID int
	active  bool
}

func NewTouchStick(zone TouchZone, stick *Stick) *TouchStick {
	return &TouchStick{Zone: zone, Stick: stick}
}

// Begin offers a new touch to the stick and reports whether it was captured.
func (t *TouchStick) Begin(id int, x, y float64) bool {
	if t.active || !t.Stick.Enabled() || !t.Zone.Contains(x, y) {
		return false
	}
	t.touchID = id
	t.active = true
	t.Stick.Tap()
	t.Stick.Set(t.Zone.Normalize(x, y))
	return true
}

func (t *TouchStick) Move(id int, x, y float64) {
	if !t.active || id != t.touchID {
		return
	}
	t.Stick.Set(t.Zone.Normalize(x, y))
}

// End releases the stick if id is the captured touch; the stick recentres.
func (t *TouchStick) End(id int) {
	if !t.active || id != t.touchID {
		return
	}
	t.active = false
	t.Stick.Set(mgl64.Vec2{})
}

func (t *TouchStick) Active() (int, bool) {
	return t.touchID, t.active
}
