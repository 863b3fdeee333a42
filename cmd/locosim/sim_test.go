package main

import (
	"context"
	"testing"

	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/logger"
	"github.com/milk9111/thumbstick/prefabs"
	"golang.org/x/time/rate"
)

const forwardScript = `
sample := func(tick, t) {
	out := {move_y: 1.0, taps: 0}
	if tick == 30 {
		out.taps = 2
	}
	return out
}
`

func newTestSim(t *testing.T, src string) *sim {
	t.Helper()
	s, err := newSim(simOptions{Hz: 60, Script: []byte(src), Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("newSim: %v", err)
	}
	return s
}

func TestSimRunsScript(t *testing.T) {
	s := newTestSim(t, forwardScript)
	sum := s.run(context.Background(), 120, nil)

	if sum.Ticks != 120 || sum.Cancelled {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Takeoffs != 1 || sum.Landings != 1 {
		t.Fatalf("expected one jump, got takeoffs=%d landings=%d", sum.Takeoffs, sum.Landings)
	}
	// about 27 airborne ticks at the dampened 1 m/s, the rest at 4 m/s
	if dz := sum.End.Z() - sum.Start.Z(); dz < 6.3 || dz > 7 {
		t.Fatalf("forward distance = %v", dz)
	}
	if sum.Travelled < sum.End.Sub(sum.Start).Len() {
		t.Fatalf("path length %v shorter than displacement", sum.Travelled)
	}
	if sum.Displays["run"] == 0 {
		t.Fatalf("expected the run display state, got %v", sum.Displays)
	}

	loco, ok := ecs.Get(s.world, s.player, component.LocomotionComponent.Kind())
	if !ok || loco.Controller.Enabled() {
		t.Fatal("the session should end after the run")
	}
}

func TestSimCancel(t *testing.T) {
	s := newTestSim(t, forwardScript)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum := s.run(ctx, 10, rate.NewLimiter(rate.Limit(60), 1))
	if !sum.Cancelled || sum.Ticks != 0 {
		t.Fatalf("cancelled run = %+v", sum)
	}
}

func TestSimRejectsBadInput(t *testing.T) {
	if _, err := newSim(simOptions{Hz: 0, Script: []byte(forwardScript)}); err == nil {
		t.Fatal("expected an error for a zero tick rate")
	}
	if _, err := newSim(simOptions{Hz: 60, Logger: logger.Discard()}); err == nil {
		t.Fatal("expected an error without a script")
	}
}

func TestEmbeddedScriptsRun(t *testing.T) {
	for _, name := range []string{"circle", "strafe"} {
		t.Run(name, func(t *testing.T) {
			src, err := prefabs.LoadScript(name)
			if err != nil {
				t.Fatal(err)
			}
			s := newTestSim(t, string(src))
			if sum := s.run(context.Background(), 60, nil); sum.Ticks != 60 {
				t.Fatalf("summary = %+v", sum)
			}
		})
	}
}
