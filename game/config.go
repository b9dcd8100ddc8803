package game

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"quadbounce/physics"
	"quadbounce/spatial"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds simulation and window configuration
type Config struct {
	// WorldWidth is the width of the playable area and of the quadtree root
	WorldWidth int

	// WorldHeight is the height of the playable area and of the quadtree root
	WorldHeight int

	// EntityCount is the fixed number of entities
	EntityCount int

	// EntityRadius is the radius of every entity in pixels
	EntityRadius float64

	// SpawnOffset keeps initial positions away from the edges
	SpawnOffset int

	// Seed for the entity factory; zero picks one from the clock
	Seed int64

	// MaxElements is the leaf size at which a quadtree node splits
	MaxElements int

	// MaxDepth caps quadtree depth for coincident entities
	MaxDepth int

	// BounceSpeed is the speed given to both entities of a collision
	BounceSpeed float64

	// TPS is the number of simulation ticks per second
	TPS int

	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// ShowTree starts with the quadtree overlay visible
	ShowTree bool

	// ProfileDir enables CPU profile capture on slow ticks when set
	ProfileDir string
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		WorldWidth:   1000,
		WorldHeight:  1000,
		EntityCount:  1000,
		EntityRadius: 2,
		SpawnOffset:  0,
		MaxElements:  spatial.DefaultMaxElements,
		MaxDepth:     spatial.DefaultMaxDepth,
		BounceSpeed:  physics.DefaultBounceSpeed,
		TPS:          30,
		ScreenWidth:  1000,
		ScreenHeight: 1000,
		ShowTree:     true,
	}
}

// RegisterFlags binds every field to a command line flag on fs
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.WorldWidth, "width", c.WorldWidth, "world width in pixels")
	fs.IntVar(&c.WorldHeight, "height", c.WorldHeight, "world height in pixels")
	fs.IntVar(&c.EntityCount, "entities", c.EntityCount, "number of entities")
	fs.Float64Var(&c.EntityRadius, "radius", c.EntityRadius, "entity radius in pixels")
	fs.IntVar(&c.SpawnOffset, "spawn-offset", c.SpawnOffset, "minimum spawn distance from the edges")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 uses the clock)")
	fs.IntVar(&c.MaxElements, "max-elements", c.MaxElements, "quadtree leaf split threshold")
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "maximum quadtree depth")
	fs.Float64Var(&c.BounceSpeed, "bounce-speed", c.BounceSpeed, "speed after a collision")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.ScreenWidth, "screen-width", c.ScreenWidth, "window width")
	fs.IntVar(&c.ScreenHeight, "screen-height", c.ScreenHeight, "window height")
	fs.BoolVar(&c.ShowTree, "show-tree", c.ShowTree, "draw the quadtree overlay")
	fs.StringVar(&c.ProfileDir, "profile-dir", c.ProfileDir, "capture CPU profiles of slow ticks into this directory")
}

// Validate checks that the configuration can build a simulation
func (c Config) Validate() error {
	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("%w: world size %dx%d must be positive", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	case c.EntityCount < 0:
		return fmt.Errorf("%w: entity count %d is negative", ErrInvalidConfig, c.EntityCount)
	case c.EntityRadius <= 0:
		return fmt.Errorf("%w: entity radius %v must be positive", ErrInvalidConfig, c.EntityRadius)
	case c.SpawnOffset < 0:
		return fmt.Errorf("%w: spawn offset %d is negative", ErrInvalidConfig, c.SpawnOffset)
	case c.MaxElements < 2:
		return fmt.Errorf("%w: max elements %d must be at least 2", ErrInvalidConfig, c.MaxElements)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidConfig, c.TPS)
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d must be positive", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	}
	return nil
}

// Bounds returns the playable area
func (c Config) Bounds() spatial.Rect {
	return spatial.NewRect(0, 0, c.WorldWidth, c.WorldHeight)
}

// TreeOptions returns the quadtree options derived from the config
func (c Config) TreeOptions() []spatial.Option {
	return []spatial.Option{
		spatial.WithMaxElements(c.MaxElements),
		spatial.WithMaxDepth(c.MaxDepth),
	}
}

// TickBudget returns the wall time available for one tick
func (c Config) TickBudget() time.Duration {
	return time.Second / time.Duration(c.TPS)
}
