package system

import (
	"log/slog"

	"github.com/milk9111/thumbstick/ecs"
)

// Install adds the locomotion systems to w in frame order: input is fed
// before session and reload requests are applied, controllers tick after
// that and display state is derived last.
func Install(w *ecs.World, poller Poller, runThreshold float64, log *slog.Logger) {
	if w == nil {
		return
	}
	w.AddSystem(NewInputSystem(poller, log))
	w.AddSystem(NewSessionSystem(log))
	w.AddSystem(NewReloadSystem(log))
	w.AddSystem(NewLocomotionSystem(log))
	w.AddSystem(NewDisplayStateSystem(runThreshold, log))
}
