package placetree

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/TatyanaV/taxtastic/newick"
)

// EdgeID identifies an edge of a placement tree. Identifiers of a tree with
// n edges are exactly 0 through n-1.
type EdgeID int

// NoEdge is the edge of the root node, which has no incoming edge.
const NoEdge EdgeID = -1

// ErrEmptyTree matches (with errors.Is) the error returned when indexing a
// tree that has no root.
var ErrEmptyTree = errors.New("Cannot index a tree without a root.")

// EmptyTreeError is returned by Build for a nil tree or a tree without a
// root node.
type EmptyTreeError struct{}

func (err *EmptyTreeError) Error() string {
	return ErrEmptyTree.Error()
}

func (err *EmptyTreeError) Is(target error) bool {
	return target == ErrEmptyTree
}

// Edge is the branch between a node and its parent. Parent and Child are
// node indices in the placement tree the edge belongs to.
type Edge struct {
	ID     EdgeID
	Length float64
	Parent int
	Child  int
}

func (e Edge) String() string {
	return fmt.Sprintf("%d: %d -> %d (%g)", e.ID, e.Parent, e.Child, e.Length)
}

// Node is a node of a placement tree. Its Index is its position in
// pre-order, so the root always has index 0.
type Node struct {
	Index    int
	Label    string
	Parent   int    // -1 for the root
	Edge     EdgeID // NoEdge for the root
	Children []int
}

// IsLeaf returns true when the node has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is an edge indexed tree. It is never modified after Build returns,
// so it may be shared freely between goroutines.
type Tree struct {
	nodes []Node
	edges []Edge

	// Branch lengths as they were read, indexed by node. A nil entry means
	// no length was given.
	lengths []*float64
}

// Build indexes every edge of `nt` in pre-order. Nil entries in a node's
// Children are ignored.
func Build(nt *newick.Tree) (*Tree, error) {
	if nt == nil || nt.Root == nil {
		return nil, &EmptyTreeError{}
	}

	type frame struct {
		node   *newick.Node
		parent int
	}

	t := &Tree{}
	stack := []frame{{nt.Root, -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		index := len(t.nodes)
		node := Node{
			Index:  index,
			Label:  f.node.Label,
			Parent: f.parent,
			Edge:   NoEdge,
		}
		if f.parent >= 0 {
			node.Edge = EdgeID(len(t.edges))
			t.edges = append(t.edges, Edge{
				ID:     node.Edge,
				Length: f.node.BranchLength(),
				Parent: f.parent,
				Child:  index,
			})
			t.nodes[f.parent].Children = append(t.nodes[f.parent].Children, index)
		}
		t.nodes = append(t.nodes, node)
		t.lengths = append(t.lengths, copyLength(f.node.Length))

		// Pushed in reverse so that the leftmost child is popped first.
		// Nil children are skipped, as newick skips them when counting
		// and writing.
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			if child := f.node.Children[i]; child != nil {
				stack = append(stack, frame{child, index})
			}
		}
	}
	return t, nil
}

// EdgeCount returns the number of edges, which is one less than the number
// of nodes.
func (t *Tree) EdgeCount() int {
	return len(t.edges)
}

// NodeCount returns the number of nodes, including the root.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// LeafCount returns the number of childless nodes other than the root.
func (t *Tree) LeafCount() int {
	count := 0
	for _, n := range t.nodes[1:] {
		if n.IsLeaf() {
			count++
		}
	}
	return count
}

// RootLength returns the branch length given to the root, which belongs to
// no edge. It is 0 when none was given.
func (t *Tree) RootLength() float64 {
	if t.lengths[0] == nil {
		return 0
	}
	return *t.lengths[0]
}

// Edge returns the edge with identifier `id`.
func (t *Tree) Edge(id EdgeID) (Edge, bool) {
	if id < 0 || int(id) >= len(t.edges) {
		return Edge{}, false
	}
	return t.edges[id], true
}

// Endpoints returns the parent and child nodes joined by the edge `id`.
func (t *Tree) Endpoints(id EdgeID) (parent, child Node, ok bool) {
	e, ok := t.Edge(id)
	if !ok {
		return Node{}, Node{}, false
	}
	return t.node(e.Parent), t.node(e.Child), true
}

// Node returns the node at pre-order index `i`.
func (t *Tree) Node(i int) (Node, bool) {
	if i < 0 || i >= len(t.nodes) {
		return Node{}, false
	}
	return t.node(i), true
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.node(0)
}

// node returns a copy of node `i` that does not share its child list.
func (t *Tree) node(i int) Node {
	n := t.nodes[i]
	n.Children = slices.Clone(n.Children)
	return n
}

// Edges enumerates the mapping from identifier to edge in ascending
// identifier order.
func (t *Tree) Edges() iter.Seq2[EdgeID, Edge] {
	return func(yield func(EdgeID, Edge) bool) {
		for _, e := range t.edges {
			if !yield(e.ID, e) {
				return
			}
		}
	}
}

// EdgeList returns a copy of all edges, ordered by identifier.
func (t *Tree) EdgeList() []Edge {
	return slices.Clone(t.edges)
}

// Newick rebuilds a Newick tree with the same shape, labels and branch
// lengths as the tree that was indexed.
func (t *Tree) Newick() *newick.Tree {
	nodes := make([]*newick.Node, len(t.nodes))
	for i, n := range t.nodes {
		nodes[i] = &newick.Node{Label: n.Label, Length: copyLength(t.lengths[i])}
		if n.Parent >= 0 {
			parent := nodes[n.Parent]
			parent.Children = append(parent.Children, nodes[i])
		}
	}
	return &newick.Tree{Root: nodes[0]}
}

func copyLength(length *float64) *float64 {
	if length == nil {
		return nil
	}
	l := *length
	return &l
}
