package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"quadbounce/spatial"
)

// Entity is a moving circular body confined to a playable area
type Entity struct {
	// Position in world coordinates
	Position mgl64.Vec2

	// Velocity in pixels per tick
	Velocity mgl64.Vec2

	// Acceleration applied on the next Update only
	Acceleration mgl64.Vec2

	// Collision and drawing radius in pixels
	Radius float64

	// Whether the entity bounced during the last collision pass
	Colliding bool

	bounds spatial.Rect
}

// NewEntity creates an entity at position moving with velocity
func NewEntity(position, velocity mgl64.Vec2, radius float64) Entity {
	return Entity{
		Position: position,
		Velocity: velocity,
		Radius:   radius,
	}
}

// SetPlayableArea defines the rectangle the entity bounces inside
func (e *Entity) SetPlayableArea(area spatial.Rect) {
	e.bounds = area
}

// PlayableArea returns the rectangle the entity bounces inside
func (e *Entity) PlayableArea() spatial.Rect {
	return e.bounds
}

// Accelerate adds an impulse that is consumed by the next Update
func (e *Entity) Accelerate(a mgl64.Vec2) {
	e.Acceleration = e.Acceleration.Add(a)
}

// Update advances the entity by one tick.
// The motion model is unit-step: deltaTime is accepted for the frame clock
// but not applied.
func (e *Entity) Update(deltaTime float64) {
	e.Velocity = e.Velocity.Add(e.Acceleration)
	e.Position = e.Position.Add(e.Velocity)

	// Reflect without clamping: the position may overshoot by one step.
	// Only a component heading further out is inverted, so an entity already
	// turning back is not flipped again while it is still outside.
	// The area is [X+1, X+W) x [Y+1, Y+H).
	left, top := float64(e.bounds.X), float64(e.bounds.Y)
	right, bottom := left+e.bounds.Width(), top+e.bounds.Height()
	if (e.Position[0] >= right && e.Velocity[0] > 0) || (e.Position[0] < left+1 && e.Velocity[0] < 0) {
		e.Velocity[0] = -e.Velocity[0]
	}
	if (e.Position[1] >= bottom && e.Velocity[1] > 0) || (e.Position[1] < top+1 && e.Velocity[1] < 0) {
		e.Velocity[1] = -e.Velocity[1]
	}

	e.Acceleration = mgl64.Vec2{}
}

// DistanceSqTo returns the squared distance between centers
func (e *Entity) DistanceSqTo(other *Entity) float64 {
	d := e.Position.Sub(other.Position)
	return d.Dot(d)
}

// IsColliding checks if the two circles overlap
func (e *Entity) IsColliding(other *Entity) bool {
	r := e.Radius + other.Radius
	return e.DistanceSqTo(other) < r*r
}

// bounceDirection returns the unit vector pointing from other to self.
// Coincident centers fall back to a diagonal whose sign depends only on
// which of the two ids is smaller.
func bounceDirection(self, other mgl64.Vec2, selfID, otherID int) mgl64.Vec2 {
	d := self.Sub(other)
	if l := d.Len(); l > 0 {
		return d.Mul(1 / l)
	}
	diag := mgl64.Vec2{math.Sqrt2 / 2, math.Sqrt2 / 2}
	if selfID < otherID {
		return diag.Mul(-1)
	}
	return diag
}
