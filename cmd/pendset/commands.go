package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/TatyanaV/taxtastic/newick"
	"github.com/TatyanaV/taxtastic/placetree"
	"github.com/TatyanaV/taxtastic/taxtable"
)

type edgeRecord struct {
	ID     placetree.EdgeID `json:"id" yaml:"id"`
	Length float64          `json:"length" yaml:"length"`
	Parent int              `json:"parent" yaml:"parent"`
	Child  int              `json:"child" yaml:"child"`
	Label  string           `json:"label,omitempty" yaml:"label,omitempty"`
}

type edgeReport struct {
	Tree  int          `json:"tree" yaml:"tree"`
	Edges []edgeRecord `json:"edges" yaml:"edges"`
}

type pendantReport struct {
	Tree    int                `json:"tree" yaml:"tree"`
	Pendant []placetree.EdgeID `json:"pendant" yaml:"pendant"`
	Labels  []string           `json:"labels" yaml:"labels"`
}

type nodeRecord struct {
	Index int    `json:"index" yaml:"index"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
}

type lonelyReport struct {
	Tree  int          `json:"tree" yaml:"tree"`
	Nodes []nodeRecord `json:"nodes" yaml:"nodes"`
}

func newEdgesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edges [file|-]",
		Short: "`edges` prints the edge index of every tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trees, err := a.index(cmd, args)
			if err != nil {
				return err
			}
			reports := make([]edgeReport, len(trees))
			for i, pt := range trees {
				reports[i] = edgeReport{Tree: i, Edges: make([]edgeRecord, 0)}
				for id, e := range pt.Edges() {
					_, child, _ := pt.Endpoints(id)
					reports[i].Edges = append(reports[i].Edges, edgeRecord{
						ID:     id,
						Length: e.Length,
						Parent: e.Parent,
						Child:  e.Child,
						Label:  child.Label,
					})
				}
			}
			return render(cmd.OutOrStdout(), a.config.Output.Format, reports,
				func(w io.Writer) error {
					for _, r := range reports {
						fmt.Fprintf(w, "tree %d\n", r.Tree)
						for _, e := range r.Edges {
							fmt.Fprintf(w, "  %d\t%d -> %d\t%g\t%s\n",
								e.ID, e.Parent, e.Child, e.Length, e.Label)
						}
					}
					return nil
				})
		},
	}
}

func newPendantCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pendant [file|-]",
		Short: "`pendant` prints the pendant edges of every tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trees, err := a.index(cmd, args)
			if err != nil {
				return err
			}
			reports := make([]pendantReport, len(trees))
			for i, pt := range trees {
				ps := placetree.PendantSetOf(pt)
				reports[i] = pendantReport{
					Tree:    i,
					Pendant: ps.Elements(),
					Labels:  make([]string, 0, ps.Len()),
				}
				for id := range ps.All() {
					_, child, _ := pt.Endpoints(id)
					reports[i].Labels = append(reports[i].Labels, child.Label)
				}
				a.log.WithField("tree", i).Debugf("%d pendant edges", ps.Len())
			}
			return render(cmd.OutOrStdout(), a.config.Output.Format, reports,
				func(w io.Writer) error {
					for _, r := range reports {
						fmt.Fprintf(w, "tree %d:", r.Tree)
						for _, id := range r.Pendant {
							fmt.Fprintf(w, " %d", id)
						}
						fmt.Fprintln(w)
					}
					return nil
				})
		},
	}
}

func newLonelyCmd(a *app) *cobra.Command {
	var fromTaxtable bool
	cmd := &cobra.Command{
		Use:   "lonely [file|-]",
		Short: "`lonely` prints nodes that are the only child of their parent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reports []lonelyReport
			var err error
			if fromTaxtable {
				reports, err = a.lonelyTaxa(cmd, args)
			} else {
				reports, err = a.lonelyNodes(cmd, args)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.config.Output.Format, reports,
				func(w io.Writer) error {
					for _, r := range reports {
						for _, n := range r.Nodes {
							if fromTaxtable {
								fmt.Fprintf(w, "%s\t%s\n", n.Label, n.Name)
							} else {
								fmt.Fprintf(w, "%d\t%d\t%s\n", r.Tree, n.Index, n.Label)
							}
						}
					}
					return nil
				})
		},
	}
	cmd.Flags().BoolVarP(&fromTaxtable, "taxtable", "t", false,
		"read a taxtable (CSV) instead of Newick trees")
	return cmd
}

func (a *app) lonelyNodes(cmd *cobra.Command, args []string) ([]lonelyReport, error) {
	trees, err := a.index(cmd, args)
	if err != nil {
		return nil, err
	}
	reports := make([]lonelyReport, len(trees))
	for i, pt := range trees {
		reports[i] = lonelyReport{Tree: i, Nodes: make([]nodeRecord, 0)}
		for _, index := range placetree.Lonely(pt) {
			n, _ := pt.Node(index)
			reports[i].Nodes = append(reports[i].Nodes,
				nodeRecord{Index: n.Index, Label: n.Label})
		}
	}
	return reports, nil
}

// lonelyTaxa reports a taxtable as a single tree whose node labels are
// tax ids.
func (a *app) lonelyTaxa(cmd *cobra.Command, args []string) ([]lonelyReport, error) {
	var tt *taxtable.Tree
	name, err := a.open(cmd, args, func(r io.Reader) (err error) {
		tt, err = taxtable.Read(r)
		return
	})
	if err != nil {
		return nil, err
	}
	a.log.WithField("input", name).Debugf("read %d taxa", tt.Len())

	pt, err := placetree.Build(tt.Newick())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	report := lonelyReport{Tree: 0, Nodes: make([]nodeRecord, 0)}
	for _, index := range placetree.Lonely(pt) {
		n, _ := pt.Node(index)
		taxon, _ := tt.Taxon(n.Label)
		report.Nodes = append(report.Nodes,
			nodeRecord{Index: n.Index, Label: n.Label, Name: taxon.TaxName})
	}
	return []lonelyReport{report}, nil
}

func newFmtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file|-]",
		Short: "`fmt` rewrites every tree in canonical Newick format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trees, err := a.read(cmd, args)
			if err != nil {
				return err
			}
			return newick.NewWriter(cmd.OutOrStdout()).WriteAll(trees)
		},
	}
}

// open hands the named file, or standard input when no file or "-" is
// given, to `readFrom`. Errors from `readFrom` are prefixed with the name.
func (a *app) open(cmd *cobra.Command, args []string, readFrom func(io.Reader) error) (string, error) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}

	var in io.Reader = cmd.InOrStdin()
	if name != "-" {
		fp, err := os.Open(name)
		if err != nil {
			return name, err
		}
		defer fp.Close()
		in = fp
	}
	if err := readFrom(in); err != nil {
		return name, fmt.Errorf("%s: %w", name, err)
	}
	return name, nil
}

// read parses every tree in the input.
func (a *app) read(cmd *cobra.Command, args []string) ([]*newick.Tree, error) {
	var trees []*newick.Tree
	name, err := a.open(cmd, args, func(r io.Reader) (err error) {
		trees, err = newick.NewReader(r).ReadAll()
		return
	})
	if err != nil {
		return nil, err
	}
	a.log.WithField("input", name).Debugf("read %d trees", len(trees))
	return trees, nil
}

// index reads the input and builds a placement tree for every tree in it.
func (a *app) index(cmd *cobra.Command, args []string) ([]*placetree.Tree, error) {
	trees, err := a.read(cmd, args)
	if err != nil {
		return nil, err
	}
	indexed := make([]*placetree.Tree, len(trees))
	for i, tree := range trees {
		if indexed[i], err = placetree.Build(tree); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		a.log.WithField("tree", i).Debugf("indexed %d edges", indexed[i].EdgeCount())
	}
	return indexed, nil
}
