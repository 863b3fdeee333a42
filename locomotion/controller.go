package locomotion

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MotionState is the controller-owned physical state carried between ticks.
type MotionState struct {
	// Velocity is the self-propelled velocity; its Y component is the
	// vertical velocity integrated under gravity.
	Velocity mgl64.Vec3
	Grounded bool
}

func (s MotionState) VerticalVelocity() float64 {
	return s.Velocity.Y()
}

type Transition int

const (
	TransitionNone Transition = iota
	TransitionTakeoff
	TransitionLanding
)

func (t Transition) String() string {
	switch t {
	case TransitionTakeoff:
		return "takeoff"
	case TransitionLanding:
		return "landing"
	default:
		return "none"
	}
}

// Report describes one completed tick.
type Report struct {
	Tick       uint64
	Frame      InputFrame
	Step       Step
	State      MotionState
	Transition Transition
	// CameraOffset is the smoothed (lateral, depth) pivot offset.
	CameraOffset mgl64.Vec2
	Rotated      bool
	// PhysicsVelocity is the velocity the physics mover reports after moving.
	PhysicsVelocity mgl64.Vec3
}

// Collaborators are the external pieces a controller drives. Sampler, Mover,
// Body and Pivot are required.
type Collaborators struct {
	Sampler Sampler
	// Devices are disabled on EndSession and re-enabled on Enable, in
	// addition to any devices the sampler owns.
	Devices []Device
	Mover   PhysicsMover
	Body    Node
	Pivot   Node
	Logger  *slog.Logger
}

// Controller runs the per-tick locomotion pipeline for one character. It is
// not safe for concurrent use; Tick is expected once per frame.
type Controller struct {
	cfg     Config
	sampler Sampler
	devices []Device
	mover   *BodyMover
	body    Node
	pivot   Node
	log     *slog.Logger

	observers []Observer

	enabled bool
	tick    uint64
	state   MotionState

	gravity    *GravityModel
	integrator *MotionIntegrator
	camera     *CameraFollow
	rotation   *RotationController
}

// New validates cfg and the collaborators and returns an enabled controller.
func New(cfg Config, c Collaborators) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case c.Sampler == nil:
		return nil, ErrNoSampler
	case c.Mover == nil:
		return nil, ErrNoMover
	case c.Body == nil:
		return nil, ErrNoBody
	case c.Pivot == nil:
		return nil, ErrNoPivot
	}

	devices := append([]Device(nil), c.Devices...)
	if owner, ok := c.Sampler.(DeviceOwner); ok {
		devices = append(devices, owner.Devices()...)
	}

	log := c.Logger
	if log == nil {
		log = slog.Default()
	}

	ctrl := &Controller{
		cfg:     cfg,
		sampler: c.Sampler,
		devices: devices,
		mover:   NewBodyMover(c.Mover),
		body:    c.Body,
		pivot:   c.Pivot,
		log:     log,
	}
	ctrl.Enable()
	return ctrl, nil
}

// Enable creates fresh per-tick state. The initial grounded state is whatever
// the physics mover currently reports.
func (c *Controller) Enable() {
	if c.enabled {
		return
	}

	pivot := c.pivot.LocalPosition()
	c.gravity = NewGravityModel(c.cfg.GravityAccel)
	c.integrator = NewMotionIntegrator(c.cfg, c.gravity)
	c.camera = NewCameraFollow(c.cfg.LateralSmoothTime, c.cfg.DepthSmoothTime, mgl64.Vec2{pivot.X(), pivot.Z()})
	c.rotation = NewRotationController(c.cfg.RotationSpeedHorizontal, c.cfg.RotationSpeedVertical, c.body, c.pivot)
	c.state = MotionState{Grounded: c.mover.Grounded()}
	c.tick = 0

	for _, d := range c.devices {
		d.Enable()
	}
	c.enabled = true
	c.log.Info("locomotion: enabled", "grounded", c.state.Grounded)
}

// Disable stops ticking and discards all per-tick state.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.enabled = false
	c.state = MotionState{}
	c.gravity = nil
	c.integrator = nil
	c.camera = nil
	c.rotation = nil
	c.log.Info("locomotion: disabled", "ticks", c.tick)
}

// EndSession disables both sticks and the controller.
func (c *Controller) EndSession() {
	for _, d := range c.devices {
		d.Disable()
	}
	c.log.Info("locomotion: session ended")
	c.Disable()
}

func (c *Controller) Enabled() bool {
	return c.enabled
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) State() MotionState {
	return c.state
}

// CameraState returns the smoothing state of both camera axes. It is zero
// while the controller is disabled.
func (c *Controller) CameraState() (lateral, depth SmoothAxis) {
	if c.camera == nil {
		return SmoothAxis{}, SmoothAxis{}
	}
	return c.camera.State()
}

// Reconfigure disables c and returns a controller running cfg against the
// same collaborators and observers, with fresh state. On a validation error
// c is left untouched.
func (c *Controller) Reconfigure(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.Disable()
	next := &Controller{
		cfg:       cfg,
		sampler:   c.sampler,
		devices:   c.devices,
		mover:     c.mover,
		body:      c.body,
		pivot:     c.pivot,
		log:       c.log,
		observers: append([]Observer(nil), c.observers...),
	}
	next.Enable()
	return next, nil
}

// AddObserver registers o to receive a report after every tick.
func (c *Controller) AddObserver(o Observer) {
	if o == nil {
		return
	}
	c.observers = append(c.observers, o)
}

// Tick runs one frame of the pipeline. It returns false without touching any
// state when the controller is disabled or dt is not a positive finite value.
func (c *Controller) Tick(dt float64) (Report, bool) {
	if !c.enabled || !(dt > 0) || math.IsInf(dt, 0) {
		return Report{}, false
	}
	c.tick++

	frame := c.sampler.Sample()

	wasGrounded := c.state.Grounded
	step := c.integrator.ComputeDisplacement(frame, c.body.Orientation(), wasGrounded, c.mover.Velocity(), dt)
	if step.Jumped {
		c.log.Debug("locomotion: jump", "tick", c.tick, "vy", c.gravity.VerticalVelocity())
	}

	grounded := c.mover.Move(step.Displacement)
	// The launch write survives the tick it is made in.
	if grounded && !step.Jumped {
		c.gravity.Land()
	}

	transition := TransitionNone
	switch {
	case grounded && !wasGrounded:
		transition = TransitionLanding
	case !grounded && wasGrounded:
		transition = TransitionTakeoff
	}
	if transition != TransitionNone {
		c.log.Debug("locomotion: "+transition.String(), "tick", c.tick)
	}

	c.state = MotionState{Velocity: c.gravity.Velocity(), Grounded: grounded}

	offset := c.camera.Smooth(step.Camera, dt)
	pivot := c.pivot.LocalPosition()
	c.pivot.SetLocalPosition(mgl64.Vec3{offset.X(), pivot.Y(), offset.Y()})

	rotated := c.rotation.Apply(frame, grounded, dt)

	report := Report{
		Tick:            c.tick,
		Frame:           frame,
		Step:            step,
		State:           c.state,
		Transition:      transition,
		CameraOffset:    offset,
		Rotated:         rotated,
		PhysicsVelocity: c.mover.Velocity(),
	}
	for _, o := range c.observers {
		o.Observe(report)
	}
	return report, true
}
