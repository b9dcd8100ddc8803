// Package spatial implements the region quadtree used as the broad phase of the
// collision pass. The tree stores integer entity ids only; positions are
// resolved through a PositionLookup supplied on every insertion.
//
// A Quadtree is not safe for concurrent use.
package spatial

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// Default tree parameters
const (
	DefaultMaxElements = 2
	DefaultMaxDepth    = 10
	DefaultMinSize     = 2
)

// PositionLookup resolves an entity id to its current position
type PositionLookup interface {
	PositionOf(id int) mgl64.Vec2
}

// Option configures a Quadtree
type Option func(*Quadtree)

// WithMaxElements sets the element count at which a leaf splits
func WithMaxElements(n int) Option {
	return func(t *Quadtree) {
		if n > 0 {
			t.maxElements = n
		}
	}
}

// WithMaxDepth caps the depth of the tree. Leaves at this depth accept any
// number of elements instead of splitting.
func WithMaxDepth(d int) Option {
	return func(t *Quadtree) {
		if d >= 0 {
			t.maxDepth = d
		}
	}
}

// WithMinSize sets the smallest node side length that may still be split
func WithMinSize(s int) Option {
	return func(t *Quadtree) {
		if s > 0 {
			t.minSize = s
		}
	}
}

// Quadtree is a region quadtree over a fixed rectangle.
// Leaves split once they hold MaxElements ids; the tree is meant to be
// cleared and refilled every tick.
type Quadtree struct {
	root *Node

	maxElements int
	maxDepth    int
	minSize     int

	// count of ids currently stored
	count int

	// released nodes, reused by split
	free []*Node
}

// NewQuadtree creates a tree whose root is a single empty leaf covering area
func NewQuadtree(area Rect, opts ...Option) *Quadtree {
	t := &Quadtree{
		maxElements: DefaultMaxElements,
		maxDepth:    DefaultMaxDepth,
		minSize:     DefaultMinSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.root = t.newNode(area, 0)
	return t
}

// Root returns the root node
func (t *Quadtree) Root() *Node {
	return t.root
}

// Area returns the rectangle covered by the tree
func (t *Quadtree) Area() Rect {
	return t.root.area
}

// MaxElements returns the split threshold
func (t *Quadtree) MaxElements() int {
	return t.maxElements
}

// Len returns the number of ids stored in the tree
func (t *Quadtree) Len() int {
	return t.count
}

// Insert adds id to the tree at the position reported by lookup.
// It returns false when the position lies outside the root area; the id is
// then not stored.
func (t *Quadtree) Insert(id int, lookup PositionLookup) bool {
	p := lookup.PositionOf(id)
	if !t.root.area.Contains(p) {
		return false
	}
	t.add(t.root, id, p, lookup)
	t.count++
	return true
}

func (t *Quadtree) add(n *Node, id int, p mgl64.Vec2, lookup PositionLookup) {
	for !n.leaf {
		n = n.children[n.quadrantOf(p)]
	}

	n.elements.Add(id)
	if n.elements.Len() < t.maxElements || !t.canSplit(n) {
		return
	}

	t.split(n)
	for _, held := range n.elements.IDs() {
		hp := lookup.PositionOf(held)
		t.add(n.children[n.quadrantOf(hp)], held, hp, lookup)
	}
	n.elements.Clear()
}

func (t *Quadtree) canSplit(n *Node) bool {
	return n.depth < t.maxDepth && n.area.W >= t.minSize && n.area.H >= t.minSize
}

// split turns leaf n into an internal node with four empty children
func (t *Quadtree) split(n *Node) {
	for q, area := range n.area.Quarter() {
		n.children[q] = t.newNode(area, n.depth+1)
	}
	n.leaf = false
}

// Clear releases every node below the root and resets the root to an empty leaf
func (t *Quadtree) Clear() {
	t.release(t.root)
	t.count = 0
}

// release recycles the descendants of n depth-first and makes n an empty leaf
func (t *Quadtree) release(n *Node) {
	for q, child := range n.children {
		if child == nil {
			continue
		}
		t.release(child)
		t.free = append(t.free, child)
		n.children[q] = nil
	}
	n.elements.Clear()
	n.leaf = true
}

func (t *Quadtree) newNode(area Rect, depth int) *Node {
	if last := len(t.free) - 1; last >= 0 {
		n := t.free[last]
		t.free[last] = nil
		t.free = t.free[:last]
		n.area = area
		n.depth = depth
		return n
	}
	return &Node{
		area:     area,
		elements: NewBucket(t.maxElements),
		leaf:     true,
		depth:    depth,
	}
}

// Leaves returns a depth-first sequence of every leaf, children visited in
// Quadrant order
func (t *Quadtree) Leaves() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		t.root.leaves(yield)
	}
}

// CollectLeaves appends every leaf to dst and returns the extended slice
func (t *Quadtree) CollectLeaves(dst []*Node) []*Node {
	for leaf := range t.Leaves() {
		dst = append(dst, leaf)
	}
	return dst
}

// Walk visits nodes in pre-order. Children of a node are skipped when fn
// returns false for it.
func (t *Quadtree) Walk(fn func(*Node) bool) {
	t.root.walk(fn)
}

// Depth returns the depth of the deepest leaf; a lone root has depth 0
func (t *Quadtree) Depth() int {
	depth := 0
	for leaf := range t.Leaves() {
		depth = max(depth, leaf.depth)
	}
	return depth
}

// NodeCount returns the number of live nodes, the root included
func (t *Quadtree) NodeCount() int {
	count := 0
	t.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}
