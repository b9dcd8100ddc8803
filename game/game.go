package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"quadbounce/physics"
	"quadbounce/spatial"
)

// Game runs the simulation inside the ebiten loop.
// Update performs one tick, Draw hands the snapshot to the renderer.
type Game struct {
	sim      *physics.Simulation
	renderer *Renderer
	input    InputProvider
	debug    *DebugState
	config   Config

	// nil unless Config.ProfileDir is set
	profiler *Profiler

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// NewGame creates a game instance from config, polling input once per tick
func NewGame(config Config, input InputProvider) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Spawning %d entities in %dx%d with seed %d", config.EntityCount, config.WorldWidth, config.WorldHeight, seed)

	bounds := config.Bounds()
	factory := physics.NewRandomFactory(rand.New(rand.NewSource(seed)), config.SpawnOffset)
	world := physics.NewWorld(config.EntityCount, bounds, config.EntityRadius, factory)
	tree := spatial.NewQuadtree(bounds, config.TreeOptions()...)

	sim := physics.NewSimulation(world, tree)
	sim.Collision().BounceSpeed = config.BounceSpeed

	debug := &DebugState{
		ShowTree:  config.ShowTree,
		ShowStats: true,
	}

	g := &Game{
		sim:            sim,
		renderer:       NewRenderer(debug),
		input:          input,
		debug:          debug,
		config:         config,
		lastUpdateTime: time.Now(),
	}

	if config.ProfileDir != "" {
		profiler, err := NewProfiler(config.ProfileDir)
		if err != nil {
			return nil, fmt.Errorf("profiler: %w", err)
		}
		g.profiler = profiler
	}

	return g, nil
}

// Simulation returns the step driver
func (g *Game) Simulation() *physics.Simulation {
	return g.sim
}

// Debug returns the overlay flags of this game
func (g *Game) Debug() *DebugState {
	return g.debug
}

// Update runs one tick
func (g *Game) Update() error {
	if g.input.StopRequested() {
		return ebiten.Termination
	}
	if g.input.ToggleTree() {
		g.debug.ShowTree = !g.debug.ShowTree
	}
	if g.input.ToggleStats() {
		g.debug.ShowStats = !g.debug.ShowStats
	}

	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Clamp delta time to prevent large jumps
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	stats := g.sim.Step(deltaTime)

	if g.profiler != nil {
		g.profiler.ObserveTick(time.Since(now), g.config.TickBudget(), stats)
	}
	return nil
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.sim, ebiten.ActualTPS())
}

// Layout maps the window onto the world so one unit is one logical pixel
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.WorldWidth, g.config.WorldHeight
}
