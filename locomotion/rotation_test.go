package locomotion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRotationControllerYawAndPitch(t *testing.T) {
	body := NewTransform(mgl64.Vec3{})
	pivot := NewTransform(mgl64.Vec3{})
	r := NewRotationController(90, 45, body, pivot)

	in := InputFrame{Rotate: mgl64.Vec2{1, 1}}
	if !r.Apply(in, true, 1) {
		t.Fatalf("expected rotation while grounded")
	}

	fwd := body.Forward()
	if !near3(fwd, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Fatalf("body forward after 90deg yaw = %v", fwd)
	}

	pitched := pivot.Forward()
	want := mgl64.Vec3{0, -math.Sin(math.Pi / 4), math.Cos(math.Pi / 4)}
	if !near3(pitched, want, 1e-9) {
		t.Fatalf("pivot forward after 45deg pitch = %v, want %v", pitched, want)
	}
}

func TestRotationControllerScalesByDt(t *testing.T) {
	body := NewTransform(mgl64.Vec3{})
	pivot := NewTransform(mgl64.Vec3{})
	r := NewRotationController(50, 25, body, pivot)

	for i := 0; i < 60; i++ {
		r.Apply(InputFrame{Rotate: mgl64.Vec2{0.5, 0}}, true, tickDt)
	}
	fwd := body.Forward()
	got := mgl64.RadToDeg(math.Atan2(fwd.X(), fwd.Z()))
	if !approx(got, 25, 1e-6) {
		t.Fatalf("yaw after one second at half deflection = %v, want 25", got)
	}
	if pivot.Orientation() != mgl64.QuatIdent() {
		t.Fatalf("zero pitch input must leave the pivot alone, got %v", pivot.Orientation())
	}
}

func TestRotationControllerAirborneIsNoop(t *testing.T) {
	body := NewTransform(mgl64.Vec3{})
	pivot := NewTransform(mgl64.Vec3{})
	r := NewRotationController(50, 25, body, pivot)

	if r.Apply(InputFrame{Rotate: mgl64.Vec2{1, -1}}, false, tickDt) {
		t.Fatalf("rotation must not apply while airborne")
	}
	if body.Orientation() != mgl64.QuatIdent() || pivot.Orientation() != mgl64.QuatIdent() {
		t.Fatalf("orientations changed while airborne")
	}
}
