package ecs

import (
	"errors"

	"github.com/milk9111/thumbstick/ecs/component"
)

var ErrNilWorld = errors.New("ecs: world is nil")

// Kind is satisfied by every component.ComponentKind.
type Kind interface {
	ID() component.ComponentID
}

// World owns entities, component stores, the system order and the event
// queue for one simulation.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue

	physicsWorld *PhysicsWorld

	timeStep float64
	frame    uint64
}

func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
	}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and retires its handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Update runs every system once with dt as the frame time step. Events are
// left queued for the host to drain.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.timeStep = dt
	w.frame++
	w.scheduler.Update(w)
}

// TimeStep is the dt passed to the Update in progress (or the last one).
func (w *World) TimeStep() float64 {
	if w == nil {
		return 0
	}
	return w.timeStep
}

// Frame counts completed and in-progress Updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func (w *World) store(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) lookup(id component.ComponentID) *SparseSet {
	if w == nil {
		return nil
	}
	return w.stores[id]
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}
