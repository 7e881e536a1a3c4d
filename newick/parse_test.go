package newick

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func length(f float64) *float64 {
	return &f
}

func TestParse(t *testing.T) {
	tree, err := Parse("(x:15,(a:3,b:4):3):1")
	require.NoError(t, err)

	root := tree.Root
	require.Len(t, root.Children, 2)
	assert.Equal(t, 1.0, root.BranchLength())

	x, inner := root.Children[0], root.Children[1]
	assert.Equal(t, "x", x.Label)
	assert.Equal(t, 15.0, x.BranchLength())
	assert.True(t, x.IsLeaf())

	assert.Empty(t, inner.Label)
	assert.Equal(t, 3.0, inner.BranchLength())
	require.Len(t, inner.Children, 2)
	assert.Equal(t, "a", inner.Children[0].Label)
	assert.Equal(t, 3.0, inner.Children[0].BranchLength())
	assert.Equal(t, "b", inner.Children[1].Label)
	assert.Equal(t, 4.0, inner.Children[1].BranchLength())

	assert.Equal(t, 5, tree.NodeCount())
	assert.Equal(t, 3, tree.LeafCount())
}

func TestParseMultifurcating(t *testing.T) {
	tree, err := Parse("(A,B,(C,D,E,F)G)ROOT;")
	require.NoError(t, err)
	require.Len(t, tree.Root.Children, 3)
	assert.Equal(t, "ROOT", tree.Root.Label)
	assert.Len(t, tree.Root.Children[2].Children, 4)
	assert.Equal(t, 6, tree.LeafCount())
}

func TestParseMissingLengths(t *testing.T) {
	tree, err := Parse("(A,B:)C;")
	require.NoError(t, err)
	assert.Nil(t, tree.Root.Length)
	assert.Nil(t, tree.Root.Children[0].Length)
	assert.Nil(t, tree.Root.Children[1].Length)
	assert.Equal(t, 0.0, tree.Root.Children[1].BranchLength())
}

func TestParseWhitespace(t *testing.T) {
	tree, err := Parse("  ( A : 0.5 ,\n\t( B:1e-2 , C ) ) ;\n")
	require.NoError(t, err)
	assert.Equal(t, "A", tree.Root.Children[0].Label)
	assert.Equal(t, 0.5, tree.Root.Children[0].BranchLength())
	assert.Equal(t, 0.01, tree.Root.Children[1].Children[0].BranchLength())
}

func TestParseEmptyNodes(t *testing.T) {
	tree, err := Parse("(,,(,));")
	require.NoError(t, err)
	assert.Equal(t, 6, tree.NodeCount())
	assert.Equal(t, 4, tree.LeafCount())

	tree, err = Parse(";")
	require.NoError(t, err)
	assert.Equal(t, 1, tree.NodeCount())
	assert.Equal(t, 0, tree.LeafCount())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed", "(x:15,(a:3,b:4):3"},
		{"empty", ""},
		{"blank", "  \n\t"},
		{"only a comment", "[nothing here]"},
		{"unbalanced close", "(A,B));"},
		{"stray close", "A);"},
		{"bad length", "(A:1.2.3,B);"},
		{"letters in length", "(A:abc,B);"},
		{"dangling exponent", "(A:1e,B);"},
		{"infinite length", "(A:Inf,B);"},
		{"not a number length", "(A:NaN,B);"},
		{"hex length", "(A:0x1p3,B);"},
		{"digit separator", "(A:1_0,B);"},
		{"invalid UTF-8", "(A\xff,B);"},
		{"negative length", "(A:-1,B);"},
		{"two labels", "(A B,C);"},
		{"trailing input", "(A,B);C"},
		{"second tree", "(A,B);(C,D);"},
		{"unterminated quote", "('A,B);"},
		{"unterminated comment", "(A,B)[;"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tree, err := Parse(test.input)
			assert.Nil(t, tree)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.NotEmpty(t, perr.Msg)
		})
	}
}

func TestParseErrorLine(t *testing.T) {
	_, err := Parse("(A,\nB,\nC:x);")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Line)
	assert.Contains(t, err.Error(), "Error on line 3")
}

func TestParseTrailingBlanksAndComments(t *testing.T) {
	_, err := Parse("(A,B); [done]\n")
	assert.NoError(t, err)
}

func TestParser(t *testing.T) {
	r := NewReader(sample("(A,B,(X,Y)C)ROOT;(A,B,C)ROOT;\n(D,E)"))
	trees, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, trees, 3)
	assert.Equal(t, "ROOT", trees[0].Root.Label)
	assert.Len(t, trees[1].Root.Children, 3)
	assert.Equal(t, "E", trees[2].Root.Children[1].Label)

	_, err = r.ReadTree()
	assert.Equal(t, io.EOF, err)
}

func TestReadAllError(t *testing.T) {
	r := NewReader(sample("(A,B);(C,D"))
	trees, err := r.ReadAll()
	assert.Nil(t, trees)
	assert.Error(t, err)
}

func TestReadTreeEmpty(t *testing.T) {
	_, err := NewReader(sample("")).ReadTree()
	assert.Equal(t, io.EOF, err)
}

func TestTreeString(t *testing.T) {
	tree := &Tree{Root: &Node{
		Label: "R",
		Children: []*Node{
			{Label: "A", Length: length(1)},
			{},
		},
	}}
	assert.Equal(t, "R\n  A (1.000000)\n  N/A\n", tree.String())
}

func TestParseSignedLength(t *testing.T) {
	tree, err := Parse("(A:+2,B:1.5E-1);")
	require.NoError(t, err)
	assert.Equal(t, length(2), tree.Root.Children[0].Length)
	assert.Equal(t, length(0.15), tree.Root.Children[1].Length)
}

func TestParseUTF8Labels(t *testing.T) {
	tree, err := Parse("(Ångström,'β γ');")
	require.NoError(t, err)
	assert.Equal(t, "Ångström", tree.Root.Children[0].Label)
	assert.Equal(t, "β γ", tree.Root.Children[1].Label)
}
