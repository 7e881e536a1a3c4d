package newick

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(s string) io.Reader {
	return bytes.NewReader([]byte(s))
}

func lexAll(s string) []item {
	lx := lex(sample(s))
	items := make([]item, 0)
	for {
		item := lx.nextItem()
		items = append(items, item)
		if item.typ == itemEOF || item.typ == itemError {
			return items
		}
	}
}

func itemTypes(items []item) []itemType {
	types := make([]itemType, len(items))
	for i := range items {
		types[i] = items[i].typ
	}
	return types
}

func TestLexer(t *testing.T) {
	items := lexAll("((X,Y)C)ROOT;")
	assert.Equal(t, []itemType{
		itemDescendentsStart, itemDescendentsStart,
		itemLabel, itemDelimiter, itemLabel,
		itemDescendentsEnd, itemLabel,
		itemDescendentsEnd, itemLabel,
		itemTerminal, itemEOF,
	}, itemTypes(items))
	assert.Equal(t, "ROOT", items[8].val)
}

func TestLexerLengths(t *testing.T) {
	items := lexAll("(A:0.1,B: 2e-3)")
	require.Equal(t, []itemType{
		itemDescendentsStart,
		itemLabel, itemLength, itemDelimiter,
		itemLabel, itemLength,
		itemDescendentsEnd, itemEOF,
	}, itemTypes(items))
	assert.Equal(t, "0.1", items[2].val)
	assert.Equal(t, "2e-3", items[5].val)
}

func TestLexerQuotedLabel(t *testing.T) {
	items := lexAll("'it''s (here)':1;")
	require.Equal(t, []itemType{
		itemLabel, itemLength, itemTerminal, itemEOF,
	}, itemTypes(items))
	assert.Equal(t, "it's (here)", items[0].val)
}

func TestLexerComments(t *testing.T) {
	items := lexAll("(A[first],[second]B:1[&&NHX:S=x])C;")
	assert.Equal(t, []itemType{
		itemDescendentsStart,
		itemLabel, itemDelimiter,
		itemLabel, itemLength,
		itemDescendentsEnd, itemLabel,
		itemTerminal, itemEOF,
	}, itemTypes(items))
}

func TestLexerLines(t *testing.T) {
	items := lexAll("(A,\n\nB)\n;")
	assert.Equal(t, 1, items[1].line)
	assert.Equal(t, 3, items[3].line)
	assert.Equal(t, 4, items[5].line)
}

func TestLexerErrors(t *testing.T) {
	for _, s := range []string{
		"(A,'open",
		"(A[never closed",
		"A]",
	} {
		items := lexAll(s)
		last := items[len(items)-1]
		assert.Equal(t, itemError, last.typ, "input %q", s)
	}
}

func TestLexerStrayCommentEnd(t *testing.T) {
	items := lexAll("A]")
	last := items[len(items)-1]
	require.Equal(t, itemError, last.typ)
	assert.Equal(t, "Found ']' outside of a comment.", last.val)
}

func TestLexerInvalidUTF8(t *testing.T) {
	for _, s := range []string{
		"(A\xff,B);",
		"('A\xfe',B);",
		"(A,B)[\xc3];",
	} {
		items := lexAll(s)
		last := items[len(items)-1]
		require.Equal(t, itemError, last.typ, "input %q", s)
		assert.Contains(t, last.val, "UTF-8", "input %q", s)
	}
}
