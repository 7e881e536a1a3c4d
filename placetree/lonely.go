package placetree

// Lonely returns the pre-order indices of every node that is the only child
// of its parent. Such nodes usually point at a redundant level in the tree,
// e.g. a taxon with a single sub-taxon.
func Lonely(t *Tree) []int {
	lonely := make([]int, 0)
	for _, n := range t.nodes[1:] {
		if len(t.nodes[n.Parent].Children) == 1 {
			lonely = append(lonely, n.Index)
		}
	}
	return lonely
}
