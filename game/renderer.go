package game

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"quadbounce/physics"
	"quadbounce/spatial"
)

// Colors
var (
	colorBackground    = color.RGBA{0, 0, 0, 255}
	colorEntityFill    = color.RGBA{0x33, 0xCC, 0x00, 255}
	colorEntityOutline = color.RGBA{0, 255, 0, 255}
	colorColliding     = color.RGBA{255, 140, 0, 255}
	colorNode          = color.RGBA{60, 60, 90, 255}
	colorOccupiedLeaf  = color.RGBA{0, 60, 0, 80}
	colorStats         = color.RGBA{200, 200, 200, 255}
)

// Outline width of entities, matching the fill radius of small entities
const entityOutline = 1.0

// Renderer draws the simulation snapshot onto an ebiten image.
// It implements physics.Sink for the duration of one Render call.
type Renderer struct {
	screen *ebiten.Image
	debug  *DebugState
	face   *text.GoXFace
}

// NewRenderer creates a new renderer
func NewRenderer(debug *DebugState) *Renderer {
	return &Renderer{
		debug: debug,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// Render draws entities, the tree overlay and the stats line
func (r *Renderer) Render(screen *ebiten.Image, sim *physics.Simulation, tps float64) {
	r.screen = screen
	defer func() { r.screen = nil }()

	screen.Fill(colorBackground)
	sim.Render(r)

	if r.debug.ShowStats {
		r.drawStats(sim.Stats(), tps)
	}
}

// DrawEntity implements physics.Sink
func (r *Renderer) DrawEntity(position mgl64.Vec2, radius float64, colliding bool) {
	x, y, rad := float32(position[0]), float32(position[1]), float32(radius)

	fill := color.Color(colorEntityFill)
	if colliding {
		fill = colorColliding
	}
	vector.DrawFilledCircle(r.screen, x, y, rad, fill, true)
	vector.StrokeCircle(r.screen, x, y, rad+entityOutline, entityOutline, colorEntityOutline, true)
}

// DrawNode implements physics.Sink
func (r *Renderer) DrawNode(area spatial.Rect, leaf bool, occupied bool) {
	if !r.debug.ShowTree {
		return
	}
	x, y := float32(area.X), float32(area.Y)
	w, h := float32(area.W), float32(area.H)

	if leaf && occupied {
		vector.DrawFilledRect(r.screen, x, y, w, h, colorOccupiedLeaf, false)
	}
	vector.StrokeRect(r.screen, x, y, w, h, 1, colorNode, false)
}

func (r *Renderer) drawStats(stats physics.Stats, tps float64) {
	line := fmt.Sprintf("TPS %.0f  tick %d  entities %d  outside %d  collisions %d  leaves %d  nodes %d  depth %d",
		tps, stats.Tick, stats.Inserted, stats.OutOfBounds, stats.Collisions, stats.Leaves, stats.Nodes, stats.Depth)

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(colorStats)
	text.Draw(r.screen, line, r.face, op)
}
