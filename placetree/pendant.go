package placetree

import (
	"iter"
	"slices"
)

// PendantSet is the set of pendant edges of a placement tree: the edges
// whose child endpoint is a leaf. Elements are kept in ascending order.
type PendantSet struct {
	ids []EdgeID
}

// PendantSetOf visits every edge of `t` once and keeps those leading to a
// leaf. It has no side effects, so repeated calls return equal sets.
func PendantSetOf(t *Tree) *PendantSet {
	ps := &PendantSet{ids: make([]EdgeID, 0)}
	for id, e := range t.Edges() {
		if t.nodes[e.Child].IsLeaf() {
			ps.ids = append(ps.ids, id)
		}
	}
	return ps
}

// Len returns the number of pendant edges, which is also the number of
// leaves in the tree.
func (ps *PendantSet) Len() int {
	return len(ps.ids)
}

// Contains reports whether `id` is a pendant edge.
func (ps *PendantSet) Contains(id EdgeID) bool {
	_, found := slices.BinarySearch(ps.ids, id)
	return found
}

// Elements returns the pendant edge identifiers in ascending order. The
// slice is a copy and may be modified by the caller.
func (ps *PendantSet) Elements() []EdgeID {
	return slices.Clone(ps.ids)
}

// All enumerates the pendant edge identifiers in ascending order.
func (ps *PendantSet) All() iter.Seq[EdgeID] {
	return slices.Values(ps.ids)
}
