package spatial

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// points is a PositionLookup backed by a slice indexed by id
type points []mgl64.Vec2

func (p points) PositionOf(id int) mgl64.Vec2 {
	return p[id]
}

func insertAll(t *testing.T, tree *Quadtree, pts points) {
	t.Helper()
	for id := range pts {
		if !tree.Insert(id, pts) {
			t.Fatalf("Insert(%d) at %v rejected", id, pts[id])
		}
	}
}

func leafIDs(tree *Quadtree) []int {
	var ids []int
	for leaf := range tree.Leaves() {
		ids = append(ids, leaf.Elements()...)
	}
	return ids
}

func TestNewQuadtree(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 100, 100))

	root := tree.Root()
	if !root.IsLeaf() {
		t.Errorf("Expected root to be a leaf")
	}
	if root.Len() != 0 {
		t.Errorf("Expected empty root, got %d elements", root.Len())
	}
	if tree.MaxElements() != DefaultMaxElements {
		t.Errorf("Expected default threshold %d, got %d", DefaultMaxElements, tree.MaxElements())
	}
	if got := tree.CollectLeaves(nil); len(got) != 1 || got[0] != root {
		t.Errorf("Expected the root as the only leaf, got %d leaves", len(got))
	}
}

func TestInsertSplitsOnThreshold(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 100, 100), WithMaxElements(2))
	pts := points{{10, 10}, {12, 12}, {90, 90}}
	insertAll(t, tree, pts)

	root := tree.Root()
	if root.IsLeaf() {
		t.Fatalf("Expected root to have split")
	}
	if len(root.Elements()) != 0 || root.Len() != 0 {
		t.Errorf("Expected internal root to hold no elements, got %d", root.Len())
	}

	nw := collectSubtree(root.Child(NorthWest))
	slices.Sort(nw)
	if !slices.Equal(nw, []int{0, 1}) {
		t.Errorf("Expected ids [0 1] under NW, got %v", nw)
	}
	se := root.Child(SouthEast)
	if !se.IsLeaf() || !slices.Equal(se.Elements(), []int{2}) {
		t.Errorf("Expected SE leaf holding [2], got leaf=%v %v", se.IsLeaf(), se.Elements())
	}

	total := 0
	for _, leaf := range tree.CollectLeaves(nil) {
		total += len(leaf.Elements())
	}
	if total != 3 {
		t.Errorf("Expected 3 elements across leaves, got %d", total)
	}
	if tree.Len() != 3 {
		t.Errorf("Expected Len 3, got %d", tree.Len())
	}
}

func collectSubtree(n *Node) []int {
	var ids []int
	var visit func(*Node)
	visit = func(n *Node) {
		if n.IsLeaf() {
			ids = append(ids, n.Elements()...)
			return
		}
		for q := NorthWest; q <= SouthEast; q++ {
			visit(n.Child(q))
		}
	}
	visit(n)
	return ids
}

func TestSplitProducesFourChildren(t *testing.T) {
	const maxElements = 4
	tree := NewQuadtree(NewRect(0, 0, 100, 100), WithMaxElements(maxElements))
	// one point per quadrant plus one extra, so no child reaches the threshold
	pts := points{{10, 10}, {60, 10}, {10, 60}, {60, 60}, {20, 20}}
	insertAll(t, tree, pts)

	root := tree.Root()
	if root.IsLeaf() {
		t.Fatalf("Expected root to split after %d inserts", maxElements+1)
	}
	if root.Len() != 0 {
		t.Errorf("Expected 0 elements at parent, got %d", root.Len())
	}
	for q := NorthWest; q <= SouthEast; q++ {
		child := root.Child(q)
		if child == nil {
			t.Fatalf("Missing child %v", q)
		}
		if !child.IsLeaf() {
			t.Errorf("Expected child %v to be a leaf", q)
		}
		if child.Depth() != 1 {
			t.Errorf("Expected child %v at depth 1, got %d", q, child.Depth())
		}
	}
	if n := tree.NodeCount(); n != 5 {
		t.Errorf("Expected 5 nodes, got %d", n)
	}
}

func TestQuadrantAreas(t *testing.T) {
	tests := []struct {
		name string
		area Rect
		want [4]Rect
	}{
		{
			name: "even",
			area: NewRect(0, 0, 100, 100),
			want: [4]Rect{
				NorthWest: NewRect(0, 0, 50, 50),
				NorthEast: NewRect(50, 0, 50, 50),
				SouthWest: NewRect(0, 50, 50, 50),
				SouthEast: NewRect(50, 50, 50, 50),
			},
		},
		{
			name: "odd",
			area: NewRect(10, 20, 7, 5),
			want: [4]Rect{
				NorthWest: NewRect(10, 20, 3, 2),
				NorthEast: NewRect(13, 20, 4, 2),
				SouthWest: NewRect(10, 22, 3, 3),
				SouthEast: NewRect(13, 22, 4, 3),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.area.Quarter(); got != tt.want {
				t.Errorf("Quarter(%v) = %v, want %v", tt.area, got, tt.want)
			}
		})
	}
}

func TestContainsIsHalfOpen(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	tests := []struct {
		p    mgl64.Vec2
		want bool
	}{
		{mgl64.Vec2{0, 0}, true},
		{mgl64.Vec2{9.99, 9.99}, true},
		{mgl64.Vec2{10, 5}, false},
		{mgl64.Vec2{5, 10}, false},
		{mgl64.Vec2{-0.01, 5}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestBoundaryPointsLandInExactlyOneLeaf(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 101, 99), WithMaxElements(2))
	// points on every internal split line and the inclusive outer edges
	pts := points{
		{0, 0}, {50, 0}, {50.5, 49}, {50, 49}, {0, 49}, {100, 98},
		{25, 24}, {75, 74}, {100.99, 0}, {0, 98.99}, {12, 12}, {37, 61},
	}
	insertAll(t, tree, pts)

	seen := make(map[int]int)
	for leaf := range tree.Leaves() {
		for _, id := range leaf.Elements() {
			seen[id]++
			if !leaf.Area().Contains(pts[id]) {
				t.Errorf("id %d at %v stored in leaf %v that does not contain it", id, pts[id], leaf.Area())
			}
		}
	}
	for id := range pts {
		if seen[id] != 1 {
			t.Errorf("Expected id %d in exactly one leaf, found %d", id, seen[id])
		}
	}
}

func TestInsertRejectsOutOfBounds(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 100, 100))
	pts := points{{-1, 50}, {100, 50}, {50, 150}, {50, 50}}

	for id, want := range []bool{false, false, false, true} {
		if got := tree.Insert(id, pts); got != want {
			t.Errorf("Insert(%d) at %v = %v, want %v", id, pts[id], got, want)
		}
	}
	if tree.Len() != 1 {
		t.Errorf("Expected 1 stored id, got %d", tree.Len())
	}
}

func TestDepthGuardOnCoincidentPoints(t *testing.T) {
	const maxDepth = 4
	tree := NewQuadtree(NewRect(0, 0, 1000, 1000), WithMaxElements(2), WithMaxDepth(maxDepth))
	pts := make(points, 20)
	for i := range pts {
		pts[i] = mgl64.Vec2{333, 333}
	}
	insertAll(t, tree, pts)

	if d := tree.Depth(); d != maxDepth {
		t.Errorf("Expected depth %d, got %d", maxDepth, d)
	}
	var full *Node
	for leaf := range tree.Leaves() {
		if leaf.Len() > 0 {
			if full != nil {
				t.Fatalf("Expected coincident points in one leaf, found two")
			}
			full = leaf
		}
	}
	if full == nil || full.Len() != len(pts) {
		t.Fatalf("Expected one leaf with %d elements", len(pts))
	}
}

func TestMinSizeStopsSplitting(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 4, 4), WithMaxElements(2), WithMaxDepth(100), WithMinSize(2))
	pts := points{{0.1, 0.1}, {0.2, 0.2}, {0.3, 0.3}}
	insertAll(t, tree, pts)

	for leaf := range tree.Leaves() {
		if leaf.Area().W < 1 || leaf.Area().H < 1 {
			t.Errorf("Leaf %v smaller than a pixel", leaf.Area())
		}
	}
	if d := tree.Depth(); d != 2 {
		t.Errorf("Expected depth 2 on a 4x4 root, got %d", d)
	}
	if got := len(leafIDs(tree)); got != 3 {
		t.Errorf("Expected 3 ids, got %d", got)
	}
}

func TestClearResetsRoot(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 100, 100))
	insertAll(t, tree, points{{10, 10}, {60, 60}, {70, 20}})

	tree.Clear()

	root := tree.Root()
	if !root.IsLeaf() || root.Len() != 0 {
		t.Errorf("Expected empty leaf root after Clear, leaf=%v len=%d", root.IsLeaf(), root.Len())
	}
	for q := NorthWest; q <= SouthEast; q++ {
		if root.Child(q) != nil {
			t.Errorf("Expected no child %v after Clear", q)
		}
	}
	if tree.Len() != 0 || tree.NodeCount() != 1 {
		t.Errorf("Expected Len 0 and 1 node, got %d and %d", tree.Len(), tree.NodeCount())
	}
}

type nodeShape struct {
	area  Rect
	leaf  bool
	depth int
	ids   string
}

func shapeOf(tree *Quadtree) []nodeShape {
	var shape []nodeShape
	tree.Walk(func(n *Node) bool {
		shape = append(shape, nodeShape{
			area:  n.Area(),
			leaf:  n.IsLeaf(),
			depth: n.Depth(),
			ids:   fmtIDs(n.Elements()),
		})
		return true
	})
	return shape
}

func fmtIDs(ids []int) string {
	b := make([]byte, 0, len(ids)*3)
	for _, id := range ids {
		b = append(b, byte('0'+id/10), byte('0'+id%10), ',')
	}
	return string(b)
}

func TestClearAndReinsertIsIsomorphic(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 640, 480), WithMaxElements(3))
	pts := points{
		{5, 5}, {600, 20}, {320, 240}, {321, 241}, {322, 239}, {10, 470},
		{630, 470}, {100, 100}, {101, 102}, {99, 98}, {400, 50}, {200, 300},
	}
	insertAll(t, tree, pts)
	before := shapeOf(tree)

	for range 3 {
		tree.Clear()
		insertAll(t, tree, pts)
	}

	after := shapeOf(tree)
	if !slices.Equal(before, after) {
		t.Errorf("Tree shape changed after Clear and reinsert:\nbefore %v\nafter  %v", before, after)
	}
}

func TestLeavesUnionEqualsInsertedSet(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 1000, 1000), WithMaxElements(3))
	pts := make(points, 0, 400)
	for i := range 20 {
		for j := range 20 {
			pts = append(pts, mgl64.Vec2{float64(i*50 + j), float64(j*50 + i)})
		}
	}
	insertAll(t, tree, pts)

	ids := leafIDs(tree)
	slices.Sort(ids)
	if len(ids) != len(pts) {
		t.Fatalf("Expected %d ids across leaves, got %d", len(pts), len(ids))
	}
	for i, id := range ids {
		if id != i {
			t.Fatalf("Expected id %d at position %d of the sorted union, got %d", i, i, id)
		}
	}
	for leaf := range tree.Leaves() {
		if leaf.Len() >= tree.MaxElements() && leaf.Depth() < DefaultMaxDepth {
			t.Errorf("Leaf %v holds %d elements below the depth limit", leaf.Area(), leaf.Len())
		}
	}
}

func TestLeavesStopsEarly(t *testing.T) {
	tree := NewQuadtree(NewRect(0, 0, 100, 100), WithMaxElements(2))
	insertAll(t, tree, points{{10, 10}, {90, 90}})

	visited := 0
	for range tree.Leaves() {
		visited++
		break
	}
	if visited != 1 {
		t.Errorf("Expected iteration to stop after 1 leaf, visited %d", visited)
	}
}
