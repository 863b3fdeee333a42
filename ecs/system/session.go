package system

import (
	"log/slog"

	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
)

// SessionSystem handles EndSessionRequest: both sticks and the controller
// are disabled and a session-ended event is queued.
type SessionSystem struct {
	log *slog.Logger
}

func NewSessionSystem(log *slog.Logger) *SessionSystem {
	if log == nil {
		log = slog.Default()
	}
	return &SessionSystem{log: log}
}

func (s *SessionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.EndSessionRequestComponent.Kind(), func(e ecs.Entity, req *component.EndSessionRequest) {
		if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok && loco.Controller != nil {
			loco.Controller.EndSession()
		}
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			for _, stick := range in.Sticks() {
				stick.Disable()
			}
		}
		ecs.Remove(w, e, component.EndSessionRequestComponent.Kind())
		w.Events().Push(ecs.Event{Type: ecs.EventSessionEnded, Entity: e, Data: req.Reason})
		s.log.Info("session: ended", "entity", e, "reason", req.Reason)
	})
}
