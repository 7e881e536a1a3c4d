package placetree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TatyanaV/taxtastic/newick"
)

func TestPendantSet(t *testing.T) {
	pt := build(t, example)
	ps := PendantSetOf(pt)

	assert.Equal(t, []EdgeID{0, 2, 3}, ps.Elements())
	assert.Equal(t, 3, ps.Len())
	assert.True(t, ps.Contains(2))
	assert.False(t, ps.Contains(1))
	assert.False(t, ps.Contains(17))

	labels := make([]string, 0)
	for id := range ps.All() {
		_, child, ok := pt.Endpoints(id)
		require.True(t, ok)
		labels = append(labels, child.Label)
	}
	assert.Equal(t, []string{"x", "a", "b"}, labels)
}

func TestPendantSetRootOnly(t *testing.T) {
	ps := PendantSetOf(build(t, "A;"))
	assert.Equal(t, 0, ps.Len())
	assert.Empty(t, ps.Elements())
}

func TestPendantSetIdempotent(t *testing.T) {
	pt := build(t, "((A,B)C,(D,(E,F,G)H)I)J;")
	first, second := PendantSetOf(pt), PendantSetOf(pt)
	assert.Equal(t, first.Elements(), second.Elements())

	// Callers get their own copy of the elements.
	elems := first.Elements()
	elems[0] = 99
	assert.Equal(t, second.Elements(), first.Elements())
}

func TestPendantSetInvariants(t *testing.T) {
	for _, s := range append(randomTrees(200), example, "(,,(,));") {
		nt, err := newick.Parse(s)
		require.NoError(t, err)
		pt, err := Build(nt)
		require.NoError(t, err)

		ps := PendantSetOf(pt)
		require.Equal(t, nt.LeafCount(), ps.Len(), "tree %s", s)

		elems := ps.Elements()
		assert.True(t, slices.IsSorted(elems))
		assert.Len(t, slices.Compact(slices.Clone(elems)), len(elems))
		for _, id := range elems {
			e, ok := pt.Edge(id)
			require.True(t, ok, "tree %s: %d is not an edge", s, id)
			child, _ := pt.Node(e.Child)
			assert.True(t, child.IsLeaf())
		}
		for id, e := range pt.Edges() {
			child, _ := pt.Node(e.Child)
			assert.Equal(t, child.IsLeaf(), ps.Contains(id))
		}
	}
}
