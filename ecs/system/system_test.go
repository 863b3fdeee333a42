package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/ecs/entity"
	"github.com/milk9111/thumbstick/input"
	"github.com/milk9111/thumbstick/locomotion"
	"github.com/milk9111/thumbstick/logger"
	"github.com/milk9111/thumbstick/prefabs"
)

const frameDt = 1.0 / 60.0

type fakePoller struct {
	snap InputSnapshot
	// next, when set, is returned once and then cleared.
	next *InputSnapshot
}

func (p *fakePoller) Poll() InputSnapshot {
	if p.next != nil {
		s := *p.next
		p.next = nil
		return s
	}
	return p.snap
}

type fixture struct {
	w      *ecs.World
	player ecs.Entity
	poller *fakePoller
}

func newFixture(t *testing.T, mode input.Mode) *fixture {
	t.Helper()
	quiet := logger.Discard()

	w := ecs.NewWorld()
	if _, err := entity.NewArena(w, nil); err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	player, err := entity.NewPlayer(w, entity.PlayerOptions{Mode: mode, Logger: quiet})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	poller := &fakePoller{}
	Install(w, poller, 0, quiet)
	return &fixture{w: w, player: player, poller: poller}
}

func (f *fixture) run(frames int) []ecs.Event {
	var events []ecs.Event
	for i := 0; i < frames; i++ {
		f.w.Update(frameDt)
		events = append(events, f.w.Events().Drain()...)
	}
	return events
}

func (f *fixture) motion(t *testing.T) *component.Motion {
	t.Helper()
	m, ok := ecs.Get(f.w, f.player, component.MotionComponent.Kind())
	if !ok {
		t.Fatal("player has no motion component")
	}
	return m
}

func (f *fixture) controller(t *testing.T) *locomotion.Controller {
	t.Helper()
	loco, ok := ecs.Get(f.w, f.player, component.LocomotionComponent.Kind())
	if !ok || loco.Controller == nil {
		t.Fatal("player has no controller")
	}
	return loco.Controller
}

func countEvents(events []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func near2(a, b mgl64.Vec2, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestGamepadDrivesPlayerForward(t *testing.T) {
	f := newFixture(t, input.ModeStick)
	f.poller.snap = InputSnapshot{Gamepad: GamepadState{Connected: true, Left: mgl64.Vec2{0, 1}}}

	f.run(30)

	m := f.motion(t)
	if !m.Ticked || m.Report.Tick != 30 {
		t.Fatalf("motion = ticked %v tick %d", m.Ticked, m.Report.Tick)
	}
	body, _ := ecs.Get(f.w, f.player, component.PhysicsBodyComponent.Kind())
	pos := body.Mover.Position()
	if pos.Z() < 1.9 || pos.Z() > 2.01 {
		t.Fatalf("after 0.5s at 4 m/s z = %v", pos.Z())
	}
	tr, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	if tr.Body.LocalPosition() != pos {
		t.Fatalf("transform %v not synced to body %v", tr.Body.LocalPosition(), pos)
	}
	if m.Display != locomotion.DisplayRun {
		t.Fatalf("display = %v, want run", m.Display)
	}
}

func TestDisconnectedGamepadRests(t *testing.T) {
	f := newFixture(t, input.ModeStick)
	f.poller.snap = InputSnapshot{Gamepad: GamepadState{Connected: true, Left: mgl64.Vec2{1, 0}}}
	f.run(5)
	f.poller.snap = InputSnapshot{}
	f.run(1)

	if frame := f.motion(t).Report.Frame; !frame.IsZero() {
		t.Fatalf("frame after disconnect = %+v", frame)
	}
}

func TestDoubleTapJumpsAndLands(t *testing.T) {
	f := newFixture(t, input.ModeStick)
	pad := GamepadState{Connected: true}
	tap := InputSnapshot{Gamepad: GamepadState{Connected: true, RightTap: true}}

	f.poller.snap = InputSnapshot{Gamepad: pad}
	var events []ecs.Event
	f.poller.next = &tap
	events = append(events, f.run(1)...)
	f.poller.next = &tap
	events = append(events, f.run(1)...)

	if !f.motion(t).Report.Step.Jumped {
		t.Fatal("second tap inside the window should launch a jump")
	}
	events = append(events, f.run(90)...)

	if countEvents(events, ecs.EventTakeoff) != 1 || countEvents(events, ecs.EventLanding) != 1 {
		t.Fatalf("takeoff/landing = %d/%d, want 1/1",
			countEvents(events, ecs.EventTakeoff), countEvents(events, ecs.EventLanding))
	}
	if !f.controller(t).State().Grounded {
		t.Fatal("should be back on the floor")
	}
}

func TestEndSessionStopsEverything(t *testing.T) {
	f := newFixture(t, input.ModeStick)
	f.poller.snap = InputSnapshot{Gamepad: GamepadState{Connected: true, Left: mgl64.Vec2{0, 1}}}
	f.run(3)

	f.poller.next = &InputSnapshot{EndSession: true}
	events := f.run(1)
	if countEvents(events, ecs.EventSessionEnded) != 1 {
		t.Fatalf("events = %v", events)
	}
	if ecs.Has(f.w, f.player, component.EndSessionRequestComponent.Kind()) {
		t.Fatal("request should be consumed")
	}
	if f.controller(t).Enabled() {
		t.Fatal("controller should be disabled")
	}
	in, _ := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	for _, s := range in.Sticks() {
		if s.Enabled() {
			t.Fatal("sticks should be disabled")
		}
	}

	f.run(5)
	if f.motion(t).Ticked {
		t.Fatal("no ticks after the session ended")
	}
}

func TestReloadSwapsController(t *testing.T) {
	f := newFixture(t, input.ModeStick)
	f.poller.snap = InputSnapshot{Gamepad: GamepadState{Connected: true, Left: mgl64.Vec2{0, 1}}}
	f.run(1)
	before := f.controller(t)

	bad := locomotion.DefaultConfig()
	bad.DepthSmoothTime = 0
	_ = ecs.Add(f.w, f.player, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Config: bad, Source: "test"})
	f.run(1)
	if f.controller(t) != before || !before.Enabled() {
		t.Fatal("an invalid reload must keep the running controller")
	}

	cfg := locomotion.DefaultConfig()
	cfg.ForwardSpeed = 6
	cfg.Deadzone = 0.4
	if n := RequestReload(f.w, cfg, "test"); n != 1 {
		t.Fatalf("RequestReload queued %d requests, want 1", n)
	}
	events := f.run(1)

	if countEvents(events, ecs.EventConfigReloaded) != 1 {
		t.Fatalf("events = %v", events)
	}
	after := f.controller(t)
	if after == before || after.Config().ForwardSpeed != 6 {
		t.Fatal("controller not swapped")
	}
	if got := f.motion(t).Report.Step.Movement.Z(); got != 6 {
		t.Fatalf("movement = %v after reload", got)
	}
	in, _ := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	for _, st := range in.Sticks() {
		if st.Config().Deadzone != 0.4 {
			t.Fatalf("stick deadzone = %v, want 0.4 after reload", st.Config().Deadzone)
		}
	}
}

func TestAirborneSidestepKeepsOnlyDampenedStickSpeed(t *testing.T) {
	f := newFixture(t, input.ModeStick)
	cfg := f.controller(t).Config()
	pad := GamepadState{Connected: true, Left: mgl64.Vec2{1, 0}}
	tap := InputSnapshot{Gamepad: GamepadState{Connected: true, Left: mgl64.Vec2{1, 0}, RightTap: true}}

	f.poller.snap = InputSnapshot{Gamepad: pad}
	f.run(10)
	f.poller.next = &tap
	f.run(1)
	f.poller.next = &tap
	f.run(1)
	if !f.motion(t).Report.Step.Jumped {
		t.Fatal("second tap inside the window should launch a jump")
	}

	want := cfg.SidestepSpeed * cfg.InAirMultiplier
	for i := 0; i < 10; i++ {
		f.run(1)
		if f.controller(t).State().Grounded {
			t.Fatalf("landed after %d airborne ticks", i+1)
		}
		step := f.motion(t).Report.Step
		horiz := math.Hypot(step.Displacement.X(), step.Displacement.Z()) / frameDt
		if math.Abs(horiz-want) > 1e-6 {
			t.Fatalf("airborne tick %d: horizontal speed %v, want %v", i+1, horiz, want)
		}
	}
}

func TestTouchZonesDriveSticks(t *testing.T) {
	f := newFixture(t, input.ModeTouch)
	spec, err := prefabs.LoadControllerSpec("")
	if err != nil {
		t.Fatal(err)
	}
	zone := spec.Input.MoveZone

	f.poller.next = &InputSnapshot{Touches: []TouchEvent{{ID: 7, X: zone.X, Y: zone.Y - zone.Radius, Phase: TouchBegan}}}
	f.run(1)
	if frame := f.motion(t).Report.Frame; !near2(frame.Move, mgl64.Vec2{0, 1}, 1e-9) {
		t.Fatalf("move = %v, want straight forward", frame.Move)
	}

	f.poller.next = &InputSnapshot{Touches: []TouchEvent{{ID: 7, Phase: TouchEnded}}}
	f.run(1)
	if frame := f.motion(t).Report.Frame; frame.Move != (mgl64.Vec2{}) {
		t.Fatalf("move after release = %v", frame.Move)
	}
}

func TestKeyboardModeStartsWithSticksDisabled(t *testing.T) {
	f := newFixture(t, input.ModeKeyboard)
	in, _ := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	if len(in.Sticks()) != 2 {
		t.Fatalf("keyboard mode should still own the sticks")
	}
	for _, s := range in.Sticks() {
		if s.Enabled() {
			t.Fatal("sticks should start disabled")
		}
	}
	f.poller.snap = InputSnapshot{Gamepad: GamepadState{Connected: true, Left: mgl64.Vec2{0, 1}}}
	f.run(3)
	if !f.motion(t).Report.Frame.IsZero() {
		t.Fatal("keyboard mode ignores the gamepad")
	}
}

func TestArenaWallsHoldThePlayer(t *testing.T) {
	f := newFixture(t, input.ModeStick)
	f.poller.snap = InputSnapshot{Gamepad: GamepadState{Connected: true, Left: mgl64.Vec2{-1, 0}}}
	f.run(60 * 15)

	body, _ := ecs.Get(f.w, f.player, component.PhysicsBodyComponent.Kind())
	bounds, ok := f.w.First(component.ArenaBoundsComponent.Kind())
	if !ok {
		t.Fatal("no arena")
	}
	b, _ := ecs.Get(f.w, bounds, component.ArenaBoundsComponent.Kind())
	if x := body.Mover.Position().X(); x < b.Min.X() {
		t.Fatalf("left the arena: x = %v", x)
	}
}

func TestInstallOrder(t *testing.T) {
	w := ecs.NewWorld()
	Install(w, nil, 0, logger.Discard())

	systems := w.Systems()
	if len(systems) != 5 {
		t.Fatalf("expected 5 systems, got %d", len(systems))
	}
	if _, ok := systems[0].(*InputSystem); !ok {
		t.Fatalf("input must run first, got %T", systems[0])
	}
	if _, ok := systems[3].(*LocomotionSystem); !ok {
		t.Fatalf("locomotion must run fourth, got %T", systems[3])
	}
	if _, ok := systems[4].(*DisplayStateSystem); !ok {
		t.Fatalf("display state must run last, got %T", systems[4])
	}
}
