package spatial

import "github.com/go-gl/mathgl/mgl64"

// Quadrant indexes the children of an internal node
type Quadrant int

const (
	NorthWest Quadrant = iota
	NorthEast
	SouthWest
	SouthEast
)

func (q Quadrant) String() string {
	switch q {
	case NorthWest:
		return "NW"
	case NorthEast:
		return "NE"
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	}
	return "?"
}

// Node is a quadtree cell. A leaf holds ids and no children; an internal node
// holds exactly four children and no ids.
type Node struct {
	area     Rect
	elements Bucket
	children [4]*Node
	leaf     bool
	depth    int
}

// Area returns the rectangle covered by the node
func (n *Node) Area() Rect {
	return n.area
}

// IsLeaf reports whether the node holds elements directly
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Depth returns the distance from the root
func (n *Node) Depth() int {
	return n.depth
}

// Child returns the child in quadrant q, or nil for a leaf
func (n *Node) Child(q Quadrant) *Node {
	return n.children[q]
}

// Elements returns the ids held by a leaf in insertion order; nil for an
// internal node. The slice is owned by the tree and is invalidated by the
// next Insert or Clear.
func (n *Node) Elements() []int {
	if !n.leaf {
		return nil
	}
	return n.elements.IDs()
}

// Len returns the number of ids held by the node
func (n *Node) Len() int {
	return n.elements.Len()
}

// quadrantOf picks the child that covers p. The children tile the node
// exactly, so every point of the node's area maps to one child.
func (n *Node) quadrantOf(p mgl64.Vec2) Quadrant {
	mx, my := n.area.Mid()
	q := NorthWest
	if p[0] >= float64(mx) {
		q |= NorthEast
	}
	if p[1] >= float64(my) {
		q |= SouthWest
	}
	return q
}

func (n *Node) leaves(yield func(*Node) bool) bool {
	if n.leaf {
		return yield(n)
	}
	for _, child := range n.children {
		if !child.leaves(yield) {
			return false
		}
	}
	return true
}

func (n *Node) walk(fn func(*Node) bool) {
	if !fn(n) || n.leaf {
		return
	}
	for _, child := range n.children {
		child.walk(fn)
	}
}
