package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/input"
)

type TouchPhase int

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchEnded
)

type TouchEvent struct {
	ID    int
	X, Y  float64
	Phase TouchPhase
}

// GamepadState is one frame of the first connected gamepad. Stick Y is
// positive away from the player (forward / look up).
type GamepadState struct {
	Connected bool
	Left      mgl64.Vec2
	Right     mgl64.Vec2
	// LeftTap and RightTap are stick clicks pressed this frame.
	LeftTap  bool
	RightTap bool
}

// InputSnapshot is everything the platform layer saw this frame.
type InputSnapshot struct {
	Gamepad    GamepadState
	Touches    []TouchEvent
	EndSession bool
}

// Poller reads the platform input state once per frame.
type Poller interface {
	Poll() InputSnapshot
}

type PollerFunc func() InputSnapshot

func (f PollerFunc) Poll() InputSnapshot {
	return f()
}

// InputSystem ages tap windows and feeds the frame's platform input into the
// devices of every Input component.
type InputSystem struct {
	poller Poller
	log    *slog.Logger
}

func NewInputSystem(poller Poller, log *slog.Logger) *InputSystem {
	if log == nil {
		log = slog.Default()
	}
	return &InputSystem{poller: poller, log: log}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	var snap InputSnapshot
	if i.poller != nil {
		snap = i.poller.Poll()
	}
	dt := w.TimeStep()

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		for _, s := range in.Sticks() {
			s.Advance(dt)
		}

		switch in.Mode {
		case input.ModeStick:
			feedGamepad(in, snap.Gamepad)
		case input.ModeTouch:
			feedTouches(in, snap.Touches)
		}

		if snap.EndSession && !ecs.Has(w, e, component.EndSessionRequestComponent.Kind()) {
			i.log.Info("input: end of session requested", "entity", e)
			if err := ecs.Add(w, e, component.EndSessionRequestComponent.Kind(), &component.EndSessionRequest{Reason: "player"}); err != nil {
				i.log.Error("input: request end of session", "entity", e, "err", err)
			}
		}
	})
}

func feedGamepad(in *component.Input, pad GamepadState) {
	if in.Move == nil || in.Rotate == nil {
		return
	}
	if !pad.Connected {
		in.Move.Set(mgl64.Vec2{})
		in.Rotate.Set(mgl64.Vec2{})
		return
	}
	in.Move.Set(pad.Left)
	in.Rotate.Set(pad.Right)
	if pad.LeftTap {
		in.Move.Tap()
	}
	if pad.RightTap {
		in.Rotate.Tap()
	}
}

func feedTouches(in *component.Input, touches []TouchEvent) {
	zones := []*input.TouchStick{in.MoveTouch, in.RotateTouch}
	for _, t := range touches {
		switch t.Phase {
		case TouchBegan:
			for _, z := range zones {
				if z != nil && z.Begin(t.ID, t.X, t.Y) {
					break
				}
			}
		case TouchMoved:
			for _, z := range zones {
				if z != nil {
					z.Move(t.ID, t.X, t.Y)
				}
			}
		case TouchEnded:
			for _, z := range zones {
				if z != nil {
					z.End(t.ID)
				}
			}
		}
	}
}
