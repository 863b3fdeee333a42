package locomotion

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	tickDt = 1.0 / 60.0
	eps    = 1e-9
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// near3 and near2 report whether a and b are within tol of each other. mgl64's
// ApproxEqualThreshold squares the threshold on zero components.
func near3(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func near2(a, b mgl64.Vec2, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDevice struct {
	pos     mgl64.Vec2
	taps    int
	enabled bool
}

func (d *fakeDevice) Position() mgl64.Vec2 {
	if !d.enabled {
		return mgl64.Vec2{}
	}
	return d.pos
}

func (d *fakeDevice) TapCount() int {
	if !d.enabled {
		return 0
	}
	return d.taps
}

func (d *fakeDevice) Enable()  { d.enabled = true }
func (d *fakeDevice) Disable() { d.enabled = false }

// fakeMover records displacements and reports grounded states from a script;
// once the script runs out the last state sticks.
type fakeMover struct {
	grounded bool
	script   []bool
	velocity mgl64.Vec3
	moves    []mgl64.Vec3
}

func (m *fakeMover) Move(d mgl64.Vec3) {
	m.moves = append(m.moves, d)
	if len(m.script) > 0 {
		m.grounded = m.script[0]
		m.script = m.script[1:]
	}
}

func (m *fakeMover) IsGrounded() bool     { return m.grounded }
func (m *fakeMover) Velocity() mgl64.Vec3 { return m.velocity }

type rig struct {
	move   *fakeDevice
	rotate *fakeDevice
	mover  *fakeMover
	body   *Transform
	pivot  *Transform
	ctrl   *Controller
}

func newRig(t *testing.T, cfg Config, grounded bool) *rig {
	t.Helper()
	r := &rig{
		move:   &fakeDevice{},
		rotate: &fakeDevice{},
		mover:  &fakeMover{grounded: grounded},
		body:   NewTransform(mgl64.Vec3{}),
		pivot:  NewTransform(mgl64.Vec3{0, 1.5, 0}),
	}
	ctrl, err := New(cfg, Collaborators{
		Sampler: NewStickSampler(r.move, r.rotate),
		Mover:   r.mover,
		Body:    r.body,
		Pivot:   r.pivot,
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.ctrl = ctrl
	return r
}

func (r *rig) tick(t *testing.T) Report {
	t.Helper()
	rep, ok := r.ctrl.Tick(tickDt)
	if !ok {
		t.Fatalf("tick %d did not run", r.ctrl.tick+1)
	}
	return rep
}
