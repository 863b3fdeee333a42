package system

import (
	"log/slog"

	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/locomotion"
)

// LocomotionSystem ticks every controller once per frame, records the report
// in the Motion component and copies the physics position onto the body.
type LocomotionSystem struct {
	log *slog.Logger
}

func NewLocomotionSystem(log *slog.Logger) *LocomotionSystem {
	if log == nil {
		log = slog.Default()
	}
	return &LocomotionSystem{log: log}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.TimeStep()
	w.PhysicsWorld().SetStep(dt)

	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, body *component.PhysicsBody) {
		if loco.Controller == nil {
			return
		}
		motion, ok := ecs.Get(w, e, component.MotionComponent.Kind())
		if !ok {
			motion = &component.Motion{}
			if err := ecs.Add(w, e, component.MotionComponent.Kind(), motion); err != nil {
				s.log.Error("locomotion: add motion", "entity", e, "err", err)
				return
			}
		}

		report, ticked := loco.Controller.Tick(dt)
		motion.Ticked = ticked
		if !ticked {
			return
		}
		motion.Report = report

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && t.Body != nil && body.Mover != nil {
			t.Body.SetLocalPosition(body.Mover.Position())
		}

		switch report.Transition {
		case locomotion.TransitionTakeoff:
			w.Events().Push(ecs.Event{Type: ecs.EventTakeoff, Entity: e, Data: report.State})
		case locomotion.TransitionLanding:
			w.Events().Push(ecs.Event{Type: ecs.EventLanding, Entity: e, Data: report.State})
		}
	})
}
