package newick

import (
	"bytes"
	"fmt"
	"strings"
)

// Node corresponds to a single node in a Newick tree, along with the branch
// that connects it to its parent.
type Node struct {
	// All children of this node, in input order, which may be empty.
	Children []*Node

	// The label of this node. If it's empty, then this node does
	// not have a name.
	Label string

	// The branch length of this node corresponding to the distance between
	// it and its parent node. If it's `nil`, then no distance was given.
	Length *float64
}

// BranchLength returns the length of the branch above this node, or 0 if
// none was given.
func (n *Node) BranchLength() float64 {
	if n.Length == nil {
		return 0
	}
	return *n.Length
}

// IsLeaf returns true when the node has no children. Nil entries in
// Children are not children.
func (n *Node) IsLeaf() bool {
	for _, child := range n.Children {
		if child != nil {
			return false
		}
	}
	return true
}

// Tree is a rooted tree read from a single Newick string.
type Tree struct {
	Root *Node
}

// NodeCount returns the number of nodes in the tree, including the root.
func (tree *Tree) NodeCount() int {
	count := 0
	tree.walk(func(n *Node, depth int) { count++ })
	return count
}

// LeafCount returns the number of childless nodes below the root. A tree
// consisting of only a root has no leaves, since the root has no branch
// leading into it.
func (tree *Tree) LeafCount() int {
	count := 0
	tree.walk(func(n *Node, depth int) {
		if depth > 0 && n.IsLeaf() {
			count++
		}
	})
	return count
}

// walk visits every node in pre-order.
func (tree *Tree) walk(visit func(n *Node, depth int)) {
	if tree == nil || tree.Root == nil {
		return
	}
	var rec func(n *Node, depth int)
	rec = func(n *Node, depth int) {
		visit(n, depth)
		for _, child := range n.Children {
			if child != nil {
				rec(child, depth+1)
			}
		}
	}
	rec(tree.Root, 0)
}

// Newick returns the tree in Newick format, terminated by a ';'.
func (tree *Tree) Newick() string {
	buf := new(bytes.Buffer)
	writeNode(buf, tree.Root)
	buf.WriteByte(terminal)
	return buf.String()
}

// String recursively converts a tree to a string, with whitespace indenting
// to indicate depth.
func (tree *Tree) String() string {
	buf := new(bytes.Buffer)
	tree.walk(func(n *Node, depth int) {
		name, length := n.Label, ""
		if len(name) == 0 {
			name = "N/A"
		}
		if n.Length != nil {
			length = fmt.Sprintf(" (%f)", *n.Length)
		}
		fmt.Fprintf(buf, "%s%s%s\n", strings.Repeat("  ", depth), name, length)
	})
	return buf.String()
}
