package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/input"
	"golang.org/x/image/colornames"
)

const viewMargin = 40

var (
	backgroundColor  = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	defaultWallColor = color.Color(colornames.Slategray)
)

// topDownView maps world X/Z onto the screen with +Z pointing up.
type topDownView struct {
	scale   float64
	originX float64
	originY float64
	min     mgl64.Vec2
	max     mgl64.Vec2
}

func newTopDownView(bounds component.ArenaBounds, width, height float64) topDownView {
	size := bounds.Size()
	v := topDownView{scale: 1, min: bounds.Min, max: bounds.Max}
	if size.X() <= 0 || size.Y() <= 0 {
		return v
	}
	v.scale = min((width-2*viewMargin)/size.X(), (height-2*viewMargin)/size.Y())
	v.originX = (width - size.X()*v.scale) / 2
	v.originY = (height - size.Y()*v.scale) / 2
	return v
}

func (v topDownView) toScreen(x, z float64) (float32, float32) {
	sx := v.originX + (x-v.min.X())*v.scale
	sy := v.originY + (v.max.Y()-z)*v.scale
	return float32(sx), float32(sy)
}

// arenaDrawer renders the Chipmunk space from above.
type arenaDrawer struct {
	screen *ebiten.Image
	view   topDownView
	wall   color.Color
}

func (d *arenaDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.view.toScreen(pos.X, pos.Y)
	vector.StrokeCircle(d.screen, x, y, float32(radius*d.view.scale), 1, d.wall, true)
}

func (d *arenaDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, 1)
}

func (d *arenaDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, max(float32(2*radius*d.view.scale), 2))
}

func (d *arenaDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], 1)
	}
}

func (d *arenaDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.view.toScreen(pos.X, pos.Y)
	vector.DrawFilledCircle(d.screen, x, y, float32(max(size, 2)), colornames.Red, true)
}

func (d *arenaDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *arenaDrawer) OutlineColor() cp.FColor {
	return toFColor(d.wall)
}

func (d *arenaDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return toFColor(d.wall)
}

func (d *arenaDrawer) ConstraintColor() cp.FColor {
	return toFColor(colornames.Orange)
}

func (d *arenaDrawer) CollisionPointColor() cp.FColor {
	return toFColor(colornames.Red)
}

func (d *arenaDrawer) Data() interface{} {
	return nil
}

func (d *arenaDrawer) line(a, b cp.Vector, width float32) {
	x1, y1 := d.view.toScreen(a.X, a.Y)
	x2, y2 := d.view.toScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, width, d.wall, true)
}

func toFColor(c color.Color) cp.FColor {
	r, g, b, a := c.RGBA()
	return cp.FColor{R: float32(r) / 0xffff, G: float32(g) / 0xffff, B: float32(b) / 0xffff, A: float32(a) / 0xffff}
}

func drawArena(screen *ebiten.Image, w *ecs.World, view topDownView, wall color.Color) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	cp.DrawSpace(pw.Space(), &arenaDrawer{screen: screen, view: view, wall: wall})
}

func drawPlayer(screen *ebiten.Image, w *ecs.World, player ecs.Entity, view topDownView) {
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok || tr.Body == nil {
		return
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}

	pos := tr.Body.LocalPosition()
	x, y := view.toScreen(pos.X(), pos.Z())
	r := float32(body.Radius * view.scale)

	fill := colornames.Orange
	if m, ok := ecs.Get(w, player, component.MotionComponent.Kind()); ok && !m.Report.State.Grounded {
		fill = colornames.Gold
	}
	vector.DrawFilledCircle(screen, x, y, r, fill, true)

	fwd := tr.Body.Forward()
	hx, hy := view.toScreen(pos.X()+fwd.X()*body.Radius*2, pos.Z()+fwd.Z()*body.Radius*2)
	vector.StrokeLine(screen, x, y, hx, hy, 2, colornames.White, true)
}

func drawTouchZones(screen *ebiten.Image, in *component.Input) {
	for _, ts := range []*input.TouchStick{in.MoveTouch, in.RotateTouch} {
		if ts == nil {
			continue
		}
		z := ts.Zone
		cx, cy := float32(z.CenterX), float32(z.CenterY)
		vector.StrokeCircle(screen, cx, cy, float32(z.Radius), 2, colornames.Lightgrey, true)

		pos := ts.Stick.Position()
		kx := cx + float32(pos.X()*z.Radius)
		ky := cy - float32(pos.Y()*z.Radius)
		vector.DrawFilledCircle(screen, kx, ky, float32(z.Radius)/4, colornames.Lightsteelblue, true)
	}
}

func drawStatus(screen *ebiten.Image, w *ecs.World, player ecs.Entity, g *Game) {
	var b strings.Builder
	fmt.Fprintf(&b, "Frames: %d    FPS: %.2f    Input: %s\n", g.frames, ebiten.ActualFPS(), g.mode)

	if m, ok := ecs.Get(w, player, component.MotionComponent.Kind()); ok {
		st := m.Report.State
		fmt.Fprintf(&b, "State: %s\nGrounded: %v\nVelocity: (%.2f, %.2f, %.2f)\n",
			m.Display, st.Grounded, st.Velocity.X(), st.Velocity.Y(), st.Velocity.Z())
		fmt.Fprintf(&b, "Camera offset: (%.2f, %.2f)\nTick: %d\n", m.Report.CameraOffset.X(), m.Report.CameraOffset.Y(), m.Report.Tick)
	}
	if g.ended {
		b.WriteString("Session ended\n")
	} else {
		b.WriteString("F12: end session\n")
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 10)
}
