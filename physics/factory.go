package physics

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"quadbounce/spatial"
)

// Factory supplies the initial state of new entities
type Factory interface {
	// Spawn returns a position inside bounds and a starting velocity
	Spawn(bounds spatial.Rect) (position, velocity mgl64.Vec2)
}

// Velocity range of RandomFactory, per axis
const (
	minSpawnSpeed   = 3
	spawnSpeedRange = 3
)

// RandomFactory places entities uniformly on integer coordinates and gives
// each axis a speed of 3 to 5 pixels per tick in a random direction
type RandomFactory struct {
	rng *rand.Rand

	// Offset keeps spawn positions this many pixels away from the edges
	Offset int
}

// NewRandomFactory creates a factory drawing from rng
func NewRandomFactory(rng *rand.Rand, offset int) *RandomFactory {
	return &RandomFactory{rng: rng, Offset: offset}
}

// Spawn implements Factory
func (f *RandomFactory) Spawn(bounds spatial.Rect) (mgl64.Vec2, mgl64.Vec2) {
	pos := mgl64.Vec2{
		f.coord(bounds.X, bounds.W),
		f.coord(bounds.Y, bounds.H),
	}
	vel := mgl64.Vec2{f.speed(), f.speed()}
	return pos, vel
}

// coord picks an integer in [origin+offset, origin+size-offset), falling back
// to the whole span when the offset leaves no room
func (f *RandomFactory) coord(origin, size int) float64 {
	lo, span := f.Offset, size-2*f.Offset
	if lo < 0 || span <= 0 {
		lo, span = 0, size
	}
	if span <= 0 {
		return float64(origin)
	}
	return float64(origin + lo + f.rng.Intn(span))
}

func (f *RandomFactory) speed() float64 {
	s := float64(minSpawnSpeed + f.rng.Intn(spawnSpeedRange))
	if f.rng.Intn(2) == 0 {
		return -s
	}
	return s
}
