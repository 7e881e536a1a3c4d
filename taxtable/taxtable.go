/*
Package taxtable reads taxonomy tables: CSV files with one row per taxon,
keyed by tax_id and linked to their parent through parent_id. The table is
turned into a tree so that the same structural queries used on Newick trees
(lonely nodes in particular) can run on a taxonomy.

The header row must name at least the columns tax_id, parent_id, rank and
tax_name; any other columns (the per-rank lineage columns, for example) are
ignored. The root is the one row whose parent_id is empty or equal to its
own tax_id. Children keep the order in which their rows appear.
*/
package taxtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/TatyanaV/taxtastic/newick"
	"github.com/TatyanaV/taxtastic/placetree"
)

var requiredColumns = []string{"tax_id", "parent_id", "rank", "tax_name"}

// Taxon is a single row of a taxtable, linked into the tree.
type Taxon struct {
	TaxID    string
	ParentID string
	Rank     string
	TaxName  string

	// Parent is nil for the root.
	Parent   *Taxon
	Children []*Taxon
}

// Tree is a taxonomy keyed by tax_id.
type Tree struct {
	Root *Taxon
	taxa map[string]*Taxon
}

// Read builds a tree from taxtable CSV input. Every taxon must descend from
// the single root; duplicate ids, unknown parents and cycles are errors.
func Read(r io.Reader) (*Tree, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("Expected a taxtable header but found no input.")
	} else if err != nil {
		return nil, err
	}

	columns := make(map[string]int)
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("Missing column '%s' in taxtable header.", name)
		}
	}

	t := &Tree{taxa: make(map[string]*Taxon)}
	rows := make([]*Taxon, 0)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		taxon := &Taxon{
			TaxID:    strings.TrimSpace(record[columns["tax_id"]]),
			ParentID: strings.TrimSpace(record[columns["parent_id"]]),
			Rank:     record[columns["rank"]],
			TaxName:  record[columns["tax_name"]],
		}
		if len(taxon.TaxID) == 0 {
			return nil, errf(line, "Empty tax_id.")
		}
		if _, ok := t.taxa[taxon.TaxID]; ok {
			return nil, errf(line, "Duplicate tax_id '%s'.", taxon.TaxID)
		}
		t.taxa[taxon.TaxID] = taxon
		rows = append(rows, taxon)
	}

	for _, taxon := range rows {
		if len(taxon.ParentID) == 0 || taxon.ParentID == taxon.TaxID {
			if t.Root != nil {
				return nil, fmt.Errorf("Found two roots, '%s' and '%s'.",
					t.Root.TaxID, taxon.TaxID)
			}
			t.Root = taxon
			continue
		}
		parent, ok := t.taxa[taxon.ParentID]
		if !ok {
			return nil, fmt.Errorf("Taxon '%s' has unknown parent '%s'.",
				taxon.TaxID, taxon.ParentID)
		}
		taxon.Parent = parent
		parent.Children = append(parent.Children, taxon)
	}
	if t.Root == nil {
		return nil, fmt.Errorf("Found no root taxon.")
	}

	// Taxa caught in a parent cycle are never reached from the root.
	if reached := len(t.preorder()); reached != len(rows) {
		return nil, fmt.Errorf("%d taxa do not descend from root '%s'.",
			len(rows)-reached, t.Root.TaxID)
	}
	return t, nil
}

// Taxon returns the taxon with the given tax_id.
func (t *Tree) Taxon(taxID string) (*Taxon, bool) {
	taxon, ok := t.taxa[taxID]
	return taxon, ok
}

// Len returns the number of taxa.
func (t *Tree) Len() int {
	return len(t.taxa)
}

// Newick converts the taxonomy to a Newick tree labeled by tax_id, with no
// branch lengths.
func (t *Tree) Newick() *newick.Tree {
	nodes := make(map[*Taxon]*newick.Node, len(t.taxa))
	for _, taxon := range t.preorder() {
		node := &newick.Node{Label: taxon.TaxID}
		nodes[taxon] = node
		if taxon.Parent != nil {
			parent := nodes[taxon.Parent]
			parent.Children = append(parent.Children, node)
		}
	}
	return &newick.Tree{Root: nodes[t.Root]}
}

// Lonely returns, in pre-order, the taxa that are the only child of their
// parent.
func (t *Tree) Lonely() []*Taxon {
	pt, err := placetree.Build(t.Newick())
	if err != nil {
		// Read never returns a tree without a root.
		panic(err)
	}
	lonely := make([]*Taxon, 0)
	for _, index := range placetree.Lonely(pt) {
		n, _ := pt.Node(index)
		lonely = append(lonely, t.taxa[n.Label])
	}
	return lonely
}

func (t *Tree) preorder() []*Taxon {
	order := make([]*Taxon, 0, len(t.taxa))
	stack := []*Taxon{t.Root}
	for len(stack) > 0 {
		taxon := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, taxon)
		for i := len(taxon.Children) - 1; i >= 0; i-- {
			stack = append(stack, taxon.Children[i])
		}
	}
	return order
}

func errf(line int, format string, v ...interface{}) error {
	return fmt.Errorf("Error on line %d: %s", line, fmt.Sprintf(format, v...))
}
