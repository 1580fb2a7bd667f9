package newick

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is a single node in a parsed tree. A node with no children is a
// tip; all others are internal. Each node is owned by exactly one parent
// and the structure is acyclic by construction.
type Node struct {
	// ID is a stable integer identity assigned in parse (pre-order)
	// encounter order, starting at 0 for the root.
	ID int

	// Label is the node's name. Empty means no label. Labels typically
	// appear on tips but are preserved on internal nodes too.
	Label string

	// Length is the branch length between this node and its parent.
	// Nil means the source recorded no length, which is distinct from
	// an explicit zero.
	Length *float64

	// Children holds the node's subtrees in source order. Sibling
	// order is semantically meaningful and must survive layout.
	Children []*Node
}

// IsTip reports whether the node has no children.
func (n *Node) IsTip() bool { return len(n.Children) == 0 }

// Tree is a parsed tree: a single root plus a cached tip list in
// left-to-right document order. A Tree is immutable after construction.
type Tree struct {
	Root *Node

	tips  []*Node
	nodes []*Node
}

// NewTree builds a Tree around root and computes the derived node and
// tip lists. The tip list is stable across repeated calls for the same
// structure because it only depends on child order.
func NewTree(root *Node) *Tree {
	t := &Tree{Root: root}
	var walk func(n *Node)
	walk = func(n *Node) {
		t.nodes = append(t.nodes, n)
		if n.IsTip() {
			t.tips = append(t.tips, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return t
}

// Tips returns the tree's tips in left-to-right document order.
// The returned slice is shared; callers must not mutate it.
func (t *Tree) Tips() []*Node { return t.tips }

// Nodes returns every node in pre-order. The returned slice is shared;
// callers must not mutate it.
func (t *Tree) Nodes() []*Node { return t.nodes }

// NodeCount returns the total number of nodes, tips included.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// TipCount returns the number of tips.
func (t *Tree) TipCount() int { return len(t.tips) }

// MaxDepth returns the maximum topological depth over all nodes, where
// the root has depth 0.
func (t *Tree) MaxDepth() int {
	var deepest func(n *Node, d int) int
	deepest = func(n *Node, d int) int {
		m := d
		for _, c := range n.Children {
			if cd := deepest(c, d+1); cd > m {
				m = cd
			}
		}
		return m
	}
	if t.Root == nil {
		return 0
	}
	return deepest(t.Root, 0)
}

// String renders the tree with whitespace indenting to indicate depth,
// for debugging and the `phylodraw parse` command.
func (t *Tree) String() string {
	var buf bytes.Buffer
	var out func(n *Node, depth int)
	out = func(n *Node, depth int) {
		name := n.Label
		if name == "" {
			name = "<unlabeled>"
		}
		length := ""
		if n.Length != nil {
			length = fmt.Sprintf(" (%g)", *n.Length)
		}
		fmt.Fprintf(&buf, "%s%s%s\n", strings.Repeat("  ", depth), name, length)
		for _, c := range n.Children {
			out(c, depth+1)
		}
	}
	if t.Root != nil {
		out(t.Root, 0)
	}
	return buf.String()
}
