// Package physics holds the entity store, the motion model, the collision
// resolver and the per-tick step driver built on the spatial quadtree.
package physics

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"quadbounce/spatial"
)

// Sink receives a read-only snapshot of the simulation once per frame
type Sink interface {
	// DrawEntity is called for every entity
	DrawEntity(position mgl64.Vec2, radius float64, colliding bool)

	// DrawNode is called for every tree node in pre-order
	DrawNode(area spatial.Rect, leaf bool, occupied bool)
}

// Stats describes the outcome of one Step
type Stats struct {
	Tick        uint64
	Inserted    int
	OutOfBounds int
	Collisions  int
	Leaves      int
	Depth       int
	Nodes       int
}

// Simulation drives one tick at a time:
// clear the index, integrate every entity, reinsert every entity, resolve
// collisions.
type Simulation struct {
	world     *World
	tree      *spatial.Quadtree
	collision *CollisionSystem

	// LogInterval is the minimum number of ticks between two out-of-bounds
	// reports; zero disables them
	LogInterval uint64

	tick        uint64
	lastLogTick uint64
	stats       Stats
}

// NewSimulation creates a step driver over world, indexing into tree
func NewSimulation(world *World, tree *spatial.Quadtree) *Simulation {
	return &Simulation{
		world:       world,
		tree:        tree,
		collision:   NewCollisionSystem(world),
		LogInterval: 300,
	}
}

// World returns the entity store
func (s *Simulation) World() *World {
	return s.world
}

// Tree returns the spatial index as built by the last Step
func (s *Simulation) Tree() *spatial.Quadtree {
	return s.tree
}

// Collision returns the collision system
func (s *Simulation) Collision() *CollisionSystem {
	return s.collision
}

// Stats returns the stats of the last Step
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Step runs one tick. deltaTime is forwarded to Entity.Update.
func (s *Simulation) Step(deltaTime float64) Stats {
	s.tick++
	s.tree.Clear()

	for i := range s.world.Entities {
		s.world.Entities[i].Update(deltaTime)
	}

	stats := Stats{Tick: s.tick}
	for id := range s.world.Entities {
		if s.tree.Insert(id, s.world) {
			stats.Inserted++
		} else {
			stats.OutOfBounds++
		}
	}

	stats.Collisions = s.collision.Resolve(s.tree)
	stats.Leaves = len(s.collision.leaves)
	stats.Depth = s.tree.Depth()
	stats.Nodes = s.tree.NodeCount()

	if stats.OutOfBounds > 0 && s.LogInterval > 0 &&
		(s.lastLogTick == 0 || s.tick-s.lastLogTick >= s.LogInterval) {
		log.Printf("tick %d: %d entities outside %v skipped collision testing", s.tick, stats.OutOfBounds, s.tree.Area())
		s.lastLogTick = s.tick
	}

	s.stats = stats
	return stats
}

// Render hands the current entities and tree nodes to sink.
// It must not run concurrently with Step.
func (s *Simulation) Render(sink Sink) {
	for i := range s.world.Entities {
		e := &s.world.Entities[i]
		sink.DrawEntity(e.Position, e.Radius, e.Colliding)
	}
	s.tree.Walk(func(n *spatial.Node) bool {
		sink.DrawNode(n.Area(), n.IsLeaf(), n.Len() > 0)
		return true
	})
}
