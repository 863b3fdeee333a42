package entity

import (
	"fmt"

	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/prefabs"
)

// NewArena creates the physics world for spec, attaches it to w and returns
// an entity carrying the arena bounds.
func NewArena(w *ecs.World, spec *prefabs.ArenaSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, ecs.ErrNilWorld
	}
	if spec == nil {
		loaded, err := prefabs.LoadArenaSpec("")
		if err != nil {
			return 0, err
		}
		spec = loaded
	}

	lo, hi, err := spec.Bounds.Corners()
	if err != nil {
		return 0, fmt.Errorf("arena: bounds: %w", err)
	}
	pw := ecs.NewPhysicsWorld(spec.Floor)
	pw.AddBlock(lo, hi)
	for i, r := range spec.Blocks {
		bl, bh, err := r.Corners()
		if err != nil {
			return 0, fmt.Errorf("arena: block %d: %w", i, err)
		}
		pw.AddBlock(bl, bh)
	}
	for i, s := range spec.Walls {
		a, b, err := s.Points()
		if err != nil {
			return 0, fmt.Errorf("arena: wall %d: %w", i, err)
		}
		pw.AddWall(a, b)
	}
	w.SetPhysicsWorld(pw)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{Min: lo, Max: hi}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
