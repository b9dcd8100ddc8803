package game

// DebugState holds overlay flags toggled at runtime
type DebugState struct {
	ShowTree  bool // Draw quadtree node rectangles
	ShowStats bool // Draw the tick stats line
}
