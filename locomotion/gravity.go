package locomotion

import "github.com/go-gl/mathgl/mgl64"

// GravityModel owns the character's self-propelled velocity: zero while
// walking, the launch velocity after a jump, decaying under gravity while
// airborne.
type GravityModel struct {
	accel    float64
	velocity mgl64.Vec3
}

func NewGravityModel(accel float64) *GravityModel {
	return &GravityModel{accel: accel}
}

// Integrate accumulates gravity into the vertical velocity while airborne and
// returns the resulting vertical velocity.
func (g *GravityModel) Integrate(grounded bool, dt float64) float64 {
	if !grounded {
		g.velocity[1] += g.accel * dt
	}
	return g.velocity[1]
}

// Launch starts a jump from current, overriding its vertical component with
// jumpSpeed. Callers pass a zero vector unless launch carry is enabled.
func (g *GravityModel) Launch(current mgl64.Vec3, jumpSpeed float64) {
	g.velocity = current
	g.velocity[1] = jumpSpeed
}

// Land discards any residual velocity.
func (g *GravityModel) Land() {
	g.velocity = mgl64.Vec3{}
}

func (g *GravityModel) Velocity() mgl64.Vec3 {
	return g.velocity
}

func (g *GravityModel) VerticalVelocity() float64 {
	return g.velocity[1]
}
