package system

import (
	"log/slog"

	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/input"
	"github.com/milk9111/thumbstick/locomotion"
)

// ReloadSystem applies ReloadRequest components by swapping in a controller
// built from the new configuration. Controllers whose session has ended are
// left alone.
type ReloadSystem struct {
	log *slog.Logger
}

func NewReloadSystem(log *slog.Logger) *ReloadSystem {
	if log == nil {
		log = slog.Default()
	}
	return &ReloadSystem{log: log}
}

func (s *ReloadSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, req *component.ReloadRequest) {
		defer ecs.Remove(w, e, component.ReloadRequestComponent.Kind())

		loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind())
		if !ok || loco.Controller == nil {
			return
		}
		if !loco.Controller.Enabled() {
			s.log.Warn("reload: controller disabled, ignoring", "entity", e, "source", req.Source)
			return
		}
		next, err := loco.Controller.Reconfigure(req.Config)
		if err != nil {
			s.log.Error("reload: rejected", "entity", e, "source", req.Source, "err", err)
			return
		}
		loco.Controller = next
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			stick := input.StickConfigFrom(req.Config)
			for _, st := range in.Sticks() {
				if err := st.Configure(stick); err != nil {
					s.log.Error("reload: stick rejected", "entity", e, "source", req.Source, "err", err)
				}
			}
		}
		w.Events().Push(ecs.Event{Type: ecs.EventConfigReloaded, Entity: e, Data: req.Source})
		s.log.Info("reload: applied", "entity", e, "source", req.Source)
	})
}

// RequestReload queues cfg for every entity with a controller and returns
// how many requests were added. A pending request is replaced.
func RequestReload(w *ecs.World, cfg locomotion.Config, source string) int {
	if w == nil {
		return 0
	}
	n := 0
	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, _ *component.Locomotion) {
		if err := ecs.Add(w, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Config: cfg, Source: source}); err == nil {
			n++
		}
	})
	return n
}
