package system

import (
	"log/slog"

	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/locomotion"
)

// DisplayChange is the payload of EventDisplayChanged.
type DisplayChange struct {
	From, To locomotion.DisplayState
}

// DisplayStateSystem derives idle/walk/run/jump/fall from each fresh motion
// report and queues an event when it changes.
type DisplayStateSystem struct {
	RunThreshold float64

	trackers map[ecs.Entity]*locomotion.DisplayTracker
	log      *slog.Logger
}

func NewDisplayStateSystem(runThreshold float64, log *slog.Logger) *DisplayStateSystem {
	if log == nil {
		log = slog.Default()
	}
	if !(runThreshold > 0) {
		runThreshold = locomotion.DefaultRunThreshold
	}
	return &DisplayStateSystem{
		RunThreshold: runThreshold,
		trackers:     make(map[ecs.Entity]*locomotion.DisplayTracker),
		log:          log,
	}
}

func (s *DisplayStateSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e := range s.trackers {
		if !w.IsAlive(e) {
			delete(s.trackers, e)
		}
	}

	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		if !m.Ticked {
			return
		}
		tr := s.tracker(e)
		before := tr.Current()
		tr.Observe(m.Report)
		m.Display = tr.Current()
		if m.Display != before {
			w.Events().Push(ecs.Event{
				Type:   ecs.EventDisplayChanged,
				Entity: e,
				Data:   DisplayChange{From: before, To: m.Display},
			})
		}
	})
}

func (s *DisplayStateSystem) tracker(e ecs.Entity) *locomotion.DisplayTracker {
	if tr, ok := s.trackers[e]; ok {
		return tr
	}
	tr := locomotion.NewDisplayTracker(func(from, to locomotion.DisplayState, r locomotion.Report) {
		s.log.Debug("display: state", "entity", e, "from", from, "to", to, "tick", r.Tick)
	})
	tr.RunThreshold = s.RunThreshold
	s.trackers[e] = tr
	return tr
}
