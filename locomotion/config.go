package locomotion

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/common"
)

// Config holds the controller tunables. It is validated once by New and never
// mutated afterwards; to change tunables build a new controller.
type Config struct {
	ForwardSpeed    float64
	BackwardSpeed   float64
	SidestepSpeed   float64
	JumpSpeed       float64
	InAirMultiplier float64

	// GravityAccel is integrated into the vertical velocity while airborne.
	// It pulls down, so it is zero or negative.
	GravityAccel float64
	// WorldGravity is added to every displacement on top of GravityAccel.
	WorldGravity mgl64.Vec3

	// Rotation speeds are in degrees per second at full stick deflection.
	RotationSpeedHorizontal float64
	RotationSpeedVertical   float64

	LateralSmoothTime float64
	DepthSmoothTime   float64

	// Deadzone and TapWindow condition the input devices feeding the
	// controller.
	Deadzone  float64
	TapWindow float64

	// LaunchCarry makes a jump keep the physics velocity the character had
	// on the launch tick, horizontal part included. When false a jump starts
	// from rest and airborne horizontal speed comes from the stick alone.
	LaunchCarry bool
}

const (
	defaultGravity           = -9.81
	defaultLateralSmoothTime = 0.3
	defaultDepthSmoothTime   = 0.5
	defaultDeadzone          = 0.2
	defaultTapWindow         = 0.3

	backwardCameraFactor = 0.75
	sidestepCameraFactor = 0.5
	airborneCameraFactor = 0.25
)

func DefaultConfig() Config {
	return Config{
		ForwardSpeed:            4,
		BackwardSpeed:           1,
		SidestepSpeed:           1,
		JumpSpeed:               8,
		InAirMultiplier:         0.25,
		GravityAccel:            defaultGravity,
		WorldGravity:            mgl64.Vec3{0, defaultGravity, 0},
		RotationSpeedHorizontal: 50,
		RotationSpeedVertical:   25,
		LateralSmoothTime:       defaultLateralSmoothTime,
		DepthSmoothTime:         defaultDepthSmoothTime,
		Deadzone:                defaultDeadzone,
		TapWindow:               defaultTapWindow,
	}
}

// Validate reports every misconfigured field, each wrapped with
// ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if !common.Finite(
		c.ForwardSpeed, c.BackwardSpeed, c.SidestepSpeed, c.JumpSpeed, c.InAirMultiplier,
		c.GravityAccel, c.WorldGravity.X(), c.WorldGravity.Y(), c.WorldGravity.Z(),
		c.RotationSpeedHorizontal, c.RotationSpeedVertical,
		c.LateralSmoothTime, c.DepthSmoothTime, c.Deadzone, c.TapWindow,
	) {
		fail("values must be finite")
	}

	speeds := []struct {
		name  string
		value float64
	}{
		{"forward speed", c.ForwardSpeed},
		{"backward speed", c.BackwardSpeed},
		{"sidestep speed", c.SidestepSpeed},
		{"jump speed", c.JumpSpeed},
		{"in-air multiplier", c.InAirMultiplier},
		{"horizontal rotation speed", c.RotationSpeedHorizontal},
		{"vertical rotation speed", c.RotationSpeedVertical},
	}
	for _, s := range speeds {
		if s.value < 0 {
			fail("%s must not be negative, got %g", s.name, s.value)
		}
	}

	if !(c.JumpSpeed > 0) {
		fail("jump speed must be positive, got %g", c.JumpSpeed)
	}
	if c.InAirMultiplier > 1 {
		fail("in-air multiplier must not exceed 1, got %g", c.InAirMultiplier)
	}
	if c.GravityAccel > 0 {
		fail("gravity acceleration must pull down, got %g", c.GravityAccel)
	}
	if !(c.LateralSmoothTime > 0) {
		fail("lateral smooth time must be positive, got %g", c.LateralSmoothTime)
	}
	if !(c.DepthSmoothTime > 0) {
		fail("depth smooth time must be positive, got %g", c.DepthSmoothTime)
	}

	if c.Deadzone < 0 || c.Deadzone >= 1 {
		fail("deadzone must be in [0, 1), got %g", c.Deadzone)
	}
	if !(c.TapWindow > 0) {
		fail("tap window must be positive, got %g", c.TapWindow)
	}

	return errors.Join(errs...)
}
