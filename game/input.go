package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputProvider is polled once per tick
type InputProvider interface {
	// StopRequested returns true once the loop should end
	StopRequested() bool

	// ToggleTree returns true on the tick the tree overlay should flip
	ToggleTree() bool

	// ToggleStats returns true on the tick the stats line should flip
	ToggleStats() bool
}

// KeyboardInput reads the keyboard through ebiten.
// Escape stops, F1 toggles the tree overlay, F2 toggles the stats line.
type KeyboardInput struct{}

// NewKeyboardInput creates a new keyboard input provider
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

// StopRequested implements InputProvider
func (k *KeyboardInput) StopRequested() bool {
	return ebiten.IsKeyPressed(ebiten.KeyEscape)
}

// ToggleTree implements InputProvider
func (k *KeyboardInput) ToggleTree() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF1)
}

// ToggleStats implements InputProvider
func (k *KeyboardInput) ToggleStats() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF2)
}
