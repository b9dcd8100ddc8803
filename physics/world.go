package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"quadbounce/spatial"
)

// World is the fixed-size entity store. Entities are addressed by their index,
// which is the id stored in the quadtree.
type World struct {
	// Playable area shared by every entity
	Bounds spatial.Rect

	// All entities, allocated once
	Entities []Entity
}

// NewWorld allocates count entities of the given radius, placed by factory
func NewWorld(count int, bounds spatial.Rect, radius float64, factory Factory) *World {
	w := &World{
		Bounds:   bounds,
		Entities: make([]Entity, count),
	}
	for i := range w.Entities {
		pos, vel := factory.Spawn(bounds)
		w.Entities[i] = NewEntity(pos, vel, radius)
		w.Entities[i].SetPlayableArea(bounds)
	}
	return w
}

// NewWorldFromEntities wraps existing entities and assigns them bounds
func NewWorldFromEntities(bounds spatial.Rect, entities []Entity) *World {
	for i := range entities {
		entities[i].SetPlayableArea(bounds)
	}
	return &World{
		Bounds:   bounds,
		Entities: entities,
	}
}

// Len returns the number of entities
func (w *World) Len() int {
	return len(w.Entities)
}

// Entity returns a pointer to the entity with the given id
func (w *World) Entity(id int) *Entity {
	return &w.Entities[id]
}

// PositionOf implements spatial.PositionLookup
func (w *World) PositionOf(id int) mgl64.Vec2 {
	return w.Entities[id].Position
}
