/*
Package placetree flattens a Newick tree into a placement tree: an
immutable index in which every branch of the tree is an Edge with a dense
integer identifier, so that any edge, and the pair of nodes it joins, can be
looked up in constant time regardless of the shape of the tree.

Identifiers are handed out in pre-order: a node is visited before its
children, and children are visited left to right. The root has no incoming
edge, so the first child of the root always has identifier 0 and a tree with
n nodes has exactly n-1 edges.

Edges whose child endpoint is a leaf are pendant edges. They are the
attachment points reported by PendantSetOf.
*/
package placetree
