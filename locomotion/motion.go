package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraTarget is the desired camera pivot offset: X lateral, Z depth.
type CameraTarget struct {
	X float64
	Z float64
}

// Step is the outcome of one integration.
type Step struct {
	// Movement is the stick-driven horizontal velocity in world space, after
	// in-air dampening.
	Movement mgl64.Vec3
	// Displacement is what gets handed to the physics mover this tick.
	Displacement mgl64.Vec3
	Camera       CameraTarget
	Jumped       bool
}

// jumpTaps is the rotation stick tap count that launches a jump. The count is
// compared raw every tick, so a device that keeps reporting two taps keeps
// relaunching while grounded.
const jumpTaps = 2

type MotionIntegrator struct {
	cfg     Config
	gravity *GravityModel
}

func NewMotionIntegrator(cfg Config, gravity *GravityModel) *MotionIntegrator {
	return &MotionIntegrator{cfg: cfg, gravity: gravity}
}

// ComputeDisplacement turns the sampled input into this tick's displacement.
// basis is the character's orientation; grounded is the state reported by the
// previous move; current is the character's physical velocity.
func (m *MotionIntegrator) ComputeDisplacement(in InputFrame, basis mgl64.Quat, grounded bool, current mgl64.Vec3, dt float64) Step {
	var step Step

	if basis == (mgl64.Quat{}) {
		basis = mgl64.QuatIdent()
	}
	move := basis.Rotate(mgl64.Vec3{in.Move.X(), 0, in.Move.Y()})
	move[1] = 0
	move = normalizeOrZero(move)

	absX, absY := math.Abs(in.Move.X()), math.Abs(in.Move.Y())
	if absY > absX {
		if in.Move.Y() > 0 {
			move = move.Mul(m.cfg.ForwardSpeed * absY)
		} else {
			move = move.Mul(m.cfg.BackwardSpeed * absY)
			step.Camera.Z = in.Move.Y() * backwardCameraFactor
		}
	} else {
		move = move.Mul(m.cfg.SidestepSpeed * absX)
		// keep the character out from under the thumb
		step.Camera.X = -in.Move.X() * sidestepCameraFactor
	}

	if grounded {
		if in.RotateTaps == jumpTaps {
			var carry mgl64.Vec3
			if m.cfg.LaunchCarry {
				carry = current
			}
			m.gravity.Launch(carry, m.cfg.JumpSpeed)
			step.Jumped = true
		}
	} else {
		m.gravity.Integrate(false, dt)
		step.Camera.Z = -m.cfg.JumpSpeed * airborneCameraFactor
		move[0] *= m.cfg.InAirMultiplier
		move[2] *= m.cfg.InAirMultiplier
	}

	step.Movement = move
	// WorldGravity is applied on top of the integrated vertical velocity.
	step.Displacement = move.Add(m.gravity.Velocity()).Add(m.cfg.WorldGravity).Mul(dt)
	return step
}

func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

func horizontalSpeed(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}
