package entity

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/input"
	"github.com/milk9111/thumbstick/locomotion"
	"github.com/milk9111/thumbstick/prefabs"
)

var (
	ErrNoPhysicsWorld = errors.New("entity: world has no physics world")
	ErrNoScript       = errors.New("entity: script mode needs a script")
)

// PlayerOptions selects how the player is driven.
type PlayerOptions struct {
	Spec *prefabs.ControllerSpec
	Mode input.Mode
	// Script and ScriptStep are used in script mode: the source and the
	// simulated seconds between samples.
	Script     []byte
	ScriptStep float64
	Logger     *slog.Logger
}

type playerBuild struct {
	w    *ecs.World
	e    ecs.Entity
	opts PlayerOptions
	log  *slog.Logger

	cfg    locomotion.Config
	in     *component.Input
	body   *ecs.CharacterBody
	node   *locomotion.Transform
	pivot  *locomotion.Transform
	devs   []locomotion.Device
	sample locomotion.Sampler
}

type playerStep struct {
	name string
	fn   func(b *playerBuild) error
}

var playerBuildOrder = []playerStep{
	{"config", (*playerBuild).config},
	{"player_tag", (*playerBuild).tag},
	{"physics_body", (*playerBuild).physicsBody},
	{"transform", (*playerBuild).transform},
	{"camera_rig", (*playerBuild).cameraRig},
	{"input", (*playerBuild).input},
	{"locomotion", (*playerBuild).locomotion},
}

// NewPlayer builds the player entity from its prefab spec. On failure
// nothing is left behind in the world.
func NewPlayer(w *ecs.World, opts PlayerOptions) (ecs.Entity, error) {
	if w == nil {
		return 0, ecs.ErrNilWorld
	}
	if w.PhysicsWorld() == nil {
		return 0, ErrNoPhysicsWorld
	}
	if opts.Spec == nil {
		spec, err := prefabs.LoadControllerSpec("")
		if err != nil {
			return 0, err
		}
		opts.Spec = spec
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	b := &playerBuild{w: w, e: ecs.CreateEntity(w), opts: opts, log: log}
	for _, step := range playerBuildOrder {
		if err := step.fn(b); err != nil {
			b.rollback()
			return 0, fmt.Errorf("player: %s: %w", step.name, err)
		}
	}
	log.Info("player: built", "entity", b.e, "mode", opts.Mode, "name", opts.Spec.Name)
	return b.e, nil
}

func (b *playerBuild) rollback() {
	if b.body != nil {
		b.w.PhysicsWorld().RemoveCharacter(b.body)
	}
	ecs.DestroyEntity(b.w, b.e)
}

func (b *playerBuild) config() error {
	cfg, err := b.opts.Spec.Config()
	if err != nil {
		return err
	}
	b.cfg = cfg
	return nil
}

func (b *playerBuild) tag() error {
	return ecs.Add(b.w, b.e, component.PlayerTagComponent.Kind(), &component.PlayerTag{Name: b.opts.Spec.Name})
}

func (b *playerBuild) physicsBody() error {
	pos, radius, err := b.opts.Spec.Body.Start()
	if err != nil {
		return err
	}
	b.body = b.w.PhysicsWorld().NewCharacter(pos, radius)
	return ecs.Add(b.w, b.e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Mover:  b.body,
		Body:   b.body.Body(),
		Radius: radius,
	})
}

func (b *playerBuild) transform() error {
	b.node = locomotion.NewTransform(b.body.Position())
	return ecs.Add(b.w, b.e, component.TransformComponent.Kind(), &component.Transform{Body: b.node})
}

func (b *playerBuild) cameraRig() error {
	p, err := b.opts.Spec.Camera.PivotPosition()
	if err != nil {
		return err
	}
	b.pivot = locomotion.NewTransform(p)
	return ecs.Add(b.w, b.e, component.CameraRigComponent.Kind(), &component.CameraRig{Pivot: b.pivot})
}

func (b *playerBuild) input() error {
	spec := b.opts.Spec.Input
	in := &component.Input{Mode: b.opts.Mode}

	switch b.opts.Mode {
	case input.ModeStick, input.ModeTouch, input.ModeKeyboard:
		in.Move = input.NewStick(input.StickConfigFrom(b.cfg))
		in.Rotate = input.NewStick(input.StickConfigFrom(b.cfg))
	}

	switch b.opts.Mode {
	case input.ModeStick:
		in.Sampler = locomotion.NewStickSampler(in.Move, in.Rotate)
	case input.ModeTouch:
		in.MoveTouch = input.NewTouchStick(spec.MoveZone.TouchZone(), in.Move)
		in.RotateTouch = input.NewTouchStick(spec.RotateZone.TouchZone(), in.Rotate)
		in.Sampler = locomotion.NewStickSampler(in.Move, in.Rotate)
	case input.ModeKeyboard:
		in.Sampler = input.KeyboardMouseSampler{}
		b.devs = []locomotion.Device{in.Move, in.Rotate}
	case input.ModeScript:
		if len(b.opts.Script) == 0 {
			return ErrNoScript
		}
		s, err := input.NewScriptSampler(b.opts.Script, b.opts.ScriptStep, b.log)
		if err != nil {
			return err
		}
		in.Sampler = s
	default:
		return fmt.Errorf("unsupported input mode %q", b.opts.Mode)
	}

	b.in = in
	b.sample = in.Sampler
	return ecs.Add(b.w, b.e, component.InputComponent.Kind(), in)
}

func (b *playerBuild) locomotion() error {
	ctrl, err := locomotion.New(b.cfg, locomotion.Collaborators{
		Sampler: b.sample,
		Devices: b.devs,
		Mover:   b.body,
		Body:    b.node,
		Pivot:   b.pivot,
		Logger:  b.log,
	})
	if err != nil {
		return err
	}
	// desktop builds have no sticks to read
	if b.opts.Mode == input.ModeKeyboard {
		for _, s := range b.in.Sticks() {
			s.Disable()
		}
	}
	return ecs.Add(b.w, b.e, component.LocomotionComponent.Kind(), &component.Locomotion{Controller: ctrl})
}
