package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/ecs/entity"
	"github.com/milk9111/thumbstick/ecs/system"
	"github.com/milk9111/thumbstick/input"
	"github.com/milk9111/thumbstick/locomotion"
	"github.com/milk9111/thumbstick/prefabs"
	"golang.org/x/time/rate"
)

type simOptions struct {
	Ticks      int
	Hz         float64
	Fast       bool
	Script     []byte
	Controller *prefabs.ControllerSpec
	Arena      *prefabs.ArenaSpec
	Logger     *slog.Logger
}

// summary is what a run did, logged once it finishes.
type summary struct {
	Ticks     int
	Takeoffs  int
	Landings  int
	Displays  map[locomotion.DisplayState]int
	Start     mgl64.Vec3
	End       mgl64.Vec3
	Travelled float64
	Cancelled bool
}

type sim struct {
	world  *ecs.World
	player ecs.Entity
	dt     float64
	log    *slog.Logger
}

func newSim(opts simOptions) (*sim, error) {
	if !(opts.Hz > 0) {
		return nil, fmt.Errorf("locosim: tick rate must be positive, got %g", opts.Hz)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	dt := 1 / opts.Hz

	w := ecs.NewWorld()
	if _, err := entity.NewArena(w, opts.Arena); err != nil {
		return nil, err
	}
	player, err := entity.NewPlayer(w, entity.PlayerOptions{
		Spec:       opts.Controller,
		Mode:       input.ModeScript,
		Script:     opts.Script,
		ScriptStep: dt,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	runThreshold := 0.0
	if opts.Controller != nil {
		runThreshold = opts.Controller.Camera.RunThreshold
	}
	system.Install(w, nil, runThreshold, log)

	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok {
		return nil, errors.New("locosim: player has no controller")
	}
	loco.Controller.AddObserver(locomotion.ObserverFunc(func(r locomotion.Report) {
		log.Debug("locosim: tick",
			"tick", r.Tick,
			"move", r.Frame.Move,
			"rotate", r.Frame.Rotate,
			"displacement", r.Step.Displacement,
			"grounded", r.State.Grounded,
			"transition", r.Transition,
		)
	}))

	return &sim{world: w, player: player, dt: dt, log: log}, nil
}

func (s *sim) position() mgl64.Vec3 {
	if tr, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind()); ok && tr.Body != nil {
		return tr.Body.LocalPosition()
	}
	return mgl64.Vec3{}
}

// run advances the world up to ticks times. A nil limiter runs as fast as
// possible. Cancelling ctx ends the session before returning.
func (s *sim) run(ctx context.Context, ticks int, limiter *rate.Limiter) summary {
	sum := summary{Displays: make(map[locomotion.DisplayState]int), Start: s.position()}
	last := sum.Start

	for sum.Ticks < ticks {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				sum.Cancelled = true
				break
			}
		} else if ctx.Err() != nil {
			sum.Cancelled = true
			break
		}

		s.world.Update(s.dt)
		sum.Ticks++
		s.count(&sum)

		pos := s.position()
		sum.Travelled += pos.Sub(last).Len()
		last = pos
	}

	if err := ecs.Add(s.world, s.player, component.EndSessionRequestComponent.Kind(), &component.EndSessionRequest{Reason: "simulation finished"}); err != nil {
		s.log.Error("locosim: end session", "err", err)
	}
	s.world.Update(s.dt)
	s.count(&sum)

	sum.End = s.position()
	return sum
}

func (s *sim) count(sum *summary) {
	for _, evt := range s.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventTakeoff:
			sum.Takeoffs++
		case ecs.EventLanding:
			sum.Landings++
		case ecs.EventDisplayChanged:
			if change, ok := evt.Data.(system.DisplayChange); ok {
				sum.Displays[change.To]++
			}
		}
		s.log.Debug("locosim: event", "type", evt.Type, "entity", evt.Entity)
	}
}
