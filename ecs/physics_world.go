package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thumbstick/locomotion"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
)

const (
	// contactSkin keeps a swept character this far from whatever it hit so
	// the next sweep starts outside the obstacle.
	contactSkin = 1e-3
	maxSlides   = 3
)

// Segment is a static wall in the horizontal plane, in world X/Z.
type Segment struct {
	A, B mgl64.Vec2
}

// PhysicsWorld owns the Chipmunk space holding the arena's static walls.
// Chipmunk works in the horizontal plane: cp X is world X and cp Y is world
// Z. Height is resolved against a flat floor.
type PhysicsWorld struct {
	space *cp.Space
	floor float64
	step  float64

	segments   []Segment
	characters []*CharacterBody
}

func NewPhysicsWorld(floor float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsWorld{space: space, floor: floor}
}

func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) Floor() float64 {
	return pw.floor
}

// SetStep sets the time step used to turn moves into velocities. The
// locomotion system sets it to the frame dt before ticking controllers.
func (pw *PhysicsWorld) SetStep(h float64) {
	if pw == nil {
		return
	}
	pw.step = h
}

func (pw *PhysicsWorld) Step() float64 {
	return pw.step
}

// AddWall adds a static segment from a to b (world X/Z).
func (pw *PhysicsWorld) AddWall(a, b mgl64.Vec2) {
	if pw == nil || pw.space == nil {
		return
	}
	shape := cp.NewSegment(pw.space.StaticBody, cp.Vector{X: a.X(), Y: a.Y()}, cp.Vector{X: b.X(), Y: b.Y()}, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeWall)
	pw.space.AddShape(shape)
	pw.segments = append(pw.segments, Segment{A: a, B: b})
}

// AddBlock adds the outline of an axis-aligned box as four walls.
func (pw *PhysicsWorld) AddBlock(min, max mgl64.Vec2) {
	corners := [4]mgl64.Vec2{
		{min.X(), min.Y()},
		{max.X(), min.Y()},
		{max.X(), max.Y()},
		{min.X(), max.Y()},
	}
	for i := range corners {
		pw.AddWall(corners[i], corners[(i+1)%len(corners)])
	}
}

func (pw *PhysicsWorld) Segments() []Segment {
	if pw == nil {
		return nil
	}
	return pw.segments
}

// NewCharacter places a character of the given radius at pos.
func (pw *PhysicsWorld) NewCharacter(pos mgl64.Vec3, radius float64) *CharacterBody {
	body := cp.NewKinematicBody()
	pw.space.AddBody(body)
	c := &CharacterBody{world: pw, body: body, radius: radius}
	c.SetPosition(pos)
	pw.characters = append(pw.characters, c)
	return c
}

// RemoveCharacter takes c out of the space.
func (pw *PhysicsWorld) RemoveCharacter(c *CharacterBody) {
	if pw == nil || c == nil {
		return
	}
	for i, other := range pw.characters {
		if other == c {
			pw.space.RemoveBody(c.body)
			pw.characters = append(pw.characters[:i], pw.characters[i+1:]...)
			return
		}
	}
}

// CharacterBody is a capsule-like mover: it sweeps a circle through the
// walls, sliding along them, then applies the vertical component against
// the floor.
type CharacterBody struct {
	world  *PhysicsWorld
	body   *cp.Body
	radius float64
	height float64

	grounded bool
	blocked  bool
	velocity mgl64.Vec3
}

var _ locomotion.PhysicsMover = (*CharacterBody)(nil)

func (c *CharacterBody) Position() mgl64.Vec3 {
	p := c.body.Position()
	return mgl64.Vec3{p.X, c.height, p.Y}
}

// SetPosition teleports the character and clears its velocity.
func (c *CharacterBody) SetPosition(pos mgl64.Vec3) {
	c.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	c.height = math.Max(pos.Y(), c.world.floor)
	c.grounded = c.height <= c.world.floor
	c.velocity = mgl64.Vec3{}
}

func (c *CharacterBody) Radius() float64 {
	return c.radius
}

func (c *CharacterBody) Body() *cp.Body {
	return c.body
}

// Move applies d, stopping at and sliding along walls.
func (c *CharacterBody) Move(d mgl64.Vec3) {
	start := c.Position()

	end := c.sweep(cp.Vector{X: d.X(), Y: d.Z()})
	c.body.SetPosition(c.depenetrate(end))

	c.height += d.Y()
	c.grounded = false
	if c.height <= c.world.floor {
		c.height = c.world.floor
		c.grounded = true
	}

	if h := c.world.step; h > 0 {
		c.velocity = c.Position().Sub(start).Mul(1 / h)
	} else {
		c.velocity = mgl64.Vec3{}
	}
}

func (c *CharacterBody) sweep(remaining cp.Vector) cp.Vector {
	pos := c.body.Position()
	c.blocked = false
	for i := 0; i < maxSlides && remaining.LengthSq() > 0; i++ {
		target := pos.Add(remaining)
		hit := c.world.space.SegmentQueryFirst(pos, target, c.radius, cp.SHAPE_FILTER_ALL)
		if hit.Shape == nil || remaining.Dot(hit.Normal) >= 0 {
			return target
		}
		c.blocked = true

		travel := remaining.Mult(hit.Alpha)
		if l := travel.Length(); l > contactSkin {
			pos = pos.Add(travel.Mult((l - contactSkin) / l))
		}
		leftover := remaining.Mult(1 - hit.Alpha)
		remaining = leftover.Sub(hit.Normal.Mult(leftover.Dot(hit.Normal)))
	}
	return pos
}

// depenetrate pushes pos out until it is at least radius+contactSkin from
// every wall, so the next sweep never starts in contact.
func (c *CharacterBody) depenetrate(pos cp.Vector) cp.Vector {
	clearance := c.radius + contactSkin
	for i := 0; i < maxSlides; i++ {
		info := c.world.space.PointQueryNearest(pos, clearance, cp.SHAPE_FILTER_ALL)
		if info == nil || info.Shape == nil || info.Distance >= clearance {
			break
		}
		c.blocked = true
		pos = pos.Add(info.Gradient.Mult(clearance - info.Distance))
	}
	return pos
}

func (c *CharacterBody) IsGrounded() bool {
	return c.grounded
}

// Velocity is the distance actually travelled by the last Move divided by
// the world step.
func (c *CharacterBody) Velocity() mgl64.Vec3 {
	return c.velocity
}

// Blocked reports whether the last Move touched a wall.
func (c *CharacterBody) Blocked() bool {
	return c.blocked
}
