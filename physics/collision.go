package physics

import "quadbounce/spatial"

// DefaultBounceSpeed is the speed given to both entities of a colliding pair
const DefaultBounceSpeed = 4.0

// CollisionSystem runs the narrow phase over the leaves of a quadtree.
// Only entities sharing a leaf are tested, so a pair straddling a leaf
// boundary is missed for that tick.
type CollisionSystem struct {
	world *World

	// BounceSpeed replaces the speed of both entities of a colliding pair
	BounceSpeed float64

	leaves []*spatial.Node
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(world *World) *CollisionSystem {
	return &CollisionSystem{
		world:       world,
		BounceSpeed: DefaultBounceSpeed,
	}
}

// Resolve tests every pair within each leaf of tree and bounces the
// overlapping ones. It returns the number of colliding pairs.
func (c *CollisionSystem) Resolve(tree *spatial.Quadtree) int {
	for i := range c.world.Entities {
		c.world.Entities[i].Colliding = false
	}

	c.leaves = tree.CollectLeaves(c.leaves[:0])

	collisions := 0
	for _, leaf := range c.leaves {
		collisions += c.ResolveLeaf(leaf.Elements())
	}
	return collisions
}

// ResolveLeaf tests every unordered pair of ids and bounces the overlapping
// ones. It returns the number of colliding pairs.
func (c *CollisionSystem) ResolveLeaf(ids []int) int {
	collisions := 0
	for i := 0; i < len(ids); i++ {
		e := c.world.Entity(ids[i])

		for j := i + 1; j < len(ids); j++ {
			f := c.world.Entity(ids[j])

			if e.IsColliding(f) {
				c.Bounce(ids[i], ids[j])
				collisions++
			}
		}
	}
	return collisions
}

// Bounce sends a and b away from each other at BounceSpeed.
// Each new velocity depends only on the two positions, so the result does not
// depend on the order of the pair. Positions are left untouched.
func (c *CollisionSystem) Bounce(a, b int) {
	e, f := c.world.Entity(a), c.world.Entity(b)
	pe, pf := e.Position, f.Position

	e.Velocity = bounceDirection(pe, pf, a, b).Mul(c.BounceSpeed)
	f.Velocity = bounceDirection(pf, pe, b, a).Mul(c.BounceSpeed)
	e.Colliding = true
	f.Colliding = true
}
