package prefabs

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/input"
	"github.com/milk9111/thumbstick/locomotion"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	ControllerFile = "controller.yaml"
	ArenaFile      = "arena.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := DecodeSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// DecodeSpec unmarshals data strictly: unknown keys are errors, so a typo in
// a tunable does not silently fall back to its default.
func DecodeSpec[T any](data []byte) (T, error) {
	var spec T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// ControllerSpec describes the player: tunables, input devices, body and
// camera rig.
type ControllerSpec struct {
	Name       string         `yaml:"name"`
	Locomotion LocomotionSpec `yaml:"locomotion"`
	Input      InputSpec      `yaml:"input"`
	Body       BodySpec       `yaml:"body"`
	Camera     CameraSpec     `yaml:"camera"`
}

func LoadControllerSpec(name string) (*ControllerSpec, error) {
	if name == "" {
		name = ControllerFile
	}
	spec, err := LoadSpec[ControllerSpec](name)
	if err != nil {
		return nil, err
	}
	if _, err := spec.Config(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// Config merges the locomotion tunables with the input section's deadzone
// and tap window, then validates the whole set.
func (s ControllerSpec) Config() (locomotion.Config, error) {
	cfg, err := s.Locomotion.overlay(locomotion.DefaultConfig())
	if err != nil {
		return cfg, err
	}
	if s.Input.Deadzone != nil {
		cfg.Deadzone = *s.Input.Deadzone
	}
	if s.Input.TapWindow != nil {
		cfg.TapWindow = *s.Input.TapWindow
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LocomotionSpec overlays locomotion.DefaultConfig; omitted fields keep
// their defaults.
type LocomotionSpec struct {
	ForwardSpeed    *float64 `yaml:"forward_speed"`
	BackwardSpeed   *float64 `yaml:"backward_speed"`
	SidestepSpeed   *float64 `yaml:"sidestep_speed"`
	JumpSpeed       *float64 `yaml:"jump_speed"`
	InAirMultiplier *float64 `yaml:"in_air_multiplier"`
	Gravity         *float64 `yaml:"gravity"`
	// WorldGravity is [x, y, z].
	WorldGravity []float64 `yaml:"world_gravity"`
	// RotationSpeed is [horizontal, vertical] in degrees per second.
	RotationSpeed []float64 `yaml:"rotation_speed"`
	// CameraSmoothTime is [lateral, depth] in seconds.
	CameraSmoothTime []float64 `yaml:"camera_smooth_time"`
	// LaunchCarry keeps the launch tick's physics velocity through a jump.
	LaunchCarry *bool `yaml:"launch_carry"`
}

// ToConfig overlays the spec on the defaults and validates the result.
func (s LocomotionSpec) ToConfig() (locomotion.Config, error) {
	cfg, err := s.overlay(locomotion.DefaultConfig())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s LocomotionSpec) overlay(cfg locomotion.Config) (locomotion.Config, error) {
	overlay := []struct {
		dst *float64
		src *float64
	}{
		{&cfg.ForwardSpeed, s.ForwardSpeed},
		{&cfg.BackwardSpeed, s.BackwardSpeed},
		{&cfg.SidestepSpeed, s.SidestepSpeed},
		{&cfg.JumpSpeed, s.JumpSpeed},
		{&cfg.InAirMultiplier, s.InAirMultiplier},
		{&cfg.GravityAccel, s.Gravity},
	}
	for _, o := range overlay {
		if o.src != nil {
			*o.dst = *o.src
		}
	}

	var err error
	if cfg.WorldGravity, err = vec3(s.WorldGravity, cfg.WorldGravity); err != nil {
		return cfg, fmt.Errorf("prefabs: world_gravity: %w", err)
	}
	rot, err := vec2(s.RotationSpeed, mgl64.Vec2{cfg.RotationSpeedHorizontal, cfg.RotationSpeedVertical})
	if err != nil {
		return cfg, fmt.Errorf("prefabs: rotation_speed: %w", err)
	}
	cfg.RotationSpeedHorizontal, cfg.RotationSpeedVertical = rot.X(), rot.Y()
	smooth, err := vec2(s.CameraSmoothTime, mgl64.Vec2{cfg.LateralSmoothTime, cfg.DepthSmoothTime})
	if err != nil {
		return cfg, fmt.Errorf("prefabs: camera_smooth_time: %w", err)
	}
	cfg.LateralSmoothTime, cfg.DepthSmoothTime = smooth.X(), smooth.Y()
	if s.LaunchCarry != nil {
		cfg.LaunchCarry = *s.LaunchCarry
	}
	return cfg, nil
}

// InputSpec carries the stick tuning and the touch zones. Deadzone and
// TapWindow land in locomotion.Config through ControllerSpec.Config.
type InputSpec struct {
	Deadzone   *float64 `yaml:"deadzone"`
	TapWindow  *float64 `yaml:"tap_window"`
	MoveZone   ZoneSpec `yaml:"move_zone"`
	RotateZone ZoneSpec `yaml:"rotate_zone"`
}

// ZoneSpec is a touch zone in screen pixels.
type ZoneSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

func (z ZoneSpec) TouchZone() input.TouchZone {
	return input.TouchZone{CenterX: z.X, CenterY: z.Y, Radius: z.Radius}
}

type BodySpec struct {
	Position []float64 `yaml:"position"`
	Radius   float64   `yaml:"radius"`
}

const defaultBodyRadius = 0.4

func (b BodySpec) Start() (mgl64.Vec3, float64, error) {
	pos, err := vec3(b.Position, mgl64.Vec3{})
	if err != nil {
		return pos, 0, fmt.Errorf("prefabs: body position: %w", err)
	}
	r := b.Radius
	if r <= 0 {
		r = defaultBodyRadius
	}
	return pos, r, nil
}

type CameraSpec struct {
	Pivot        []float64 `yaml:"pivot"`
	RunThreshold float64   `yaml:"run_threshold"`
}

var defaultPivot = mgl64.Vec3{0, 1.6, 0}

func (c CameraSpec) PivotPosition() (mgl64.Vec3, error) {
	p, err := vec3(c.Pivot, defaultPivot)
	if err != nil {
		return p, fmt.Errorf("prefabs: camera pivot: %w", err)
	}
	return p, nil
}

// ArenaSpec is the static level: a flat floor, an outer boundary and
// rectangular blocks, all in world X/Z.
type ArenaSpec struct {
	Name      string        `yaml:"name"`
	Floor     float64       `yaml:"floor"`
	Bounds    RectSpec      `yaml:"bounds"`
	Blocks    []RectSpec    `yaml:"blocks"`
	Walls     []SegmentSpec `yaml:"walls"`
	WallColor *YAMLColor    `yaml:"wall_color"`
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	if name == "" {
		name = ArenaFile
	}
	spec, err := LoadSpec[ArenaSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RectSpec struct {
	Min []float64 `yaml:"min"`
	Max []float64 `yaml:"max"`
}

func (r RectSpec) Corners() (lo, hi mgl64.Vec2, err error) {
	if lo, err = vec2(r.Min, mgl64.Vec2{}); err != nil {
		return
	}
	if hi, err = vec2(r.Max, mgl64.Vec2{}); err != nil {
		return
	}
	if hi.X() <= lo.X() || hi.Y() <= lo.Y() {
		err = fmt.Errorf("prefabs: empty rect %v..%v", lo, hi)
	}
	return
}

type SegmentSpec struct {
	From []float64 `yaml:"from"`
	To   []float64 `yaml:"to"`
}

func (s SegmentSpec) Points() (a, b mgl64.Vec2, err error) {
	if a, err = vec2(s.From, mgl64.Vec2{}); err != nil {
		return
	}
	b, err = vec2(s.To, mgl64.Vec2{})
	return
}

func vec2(v []float64, def mgl64.Vec2) (mgl64.Vec2, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 2:
		return mgl64.Vec2{v[0], v[1]}, nil
	}
	return def, fmt.Errorf("want 2 values, got %d", len(v))
}

func vec3(v []float64, def mgl64.Vec3) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	}
	return def, fmt.Errorf("want 3 values, got %d", len(v))
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = v
	}
	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
