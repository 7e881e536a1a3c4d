package newick

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseError is returned for any input that is not a well formed Newick
// tree. No partial tree is ever returned along with it.
type ParseError struct {
	Line int
	Msg  string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("Error on line %d: %s", err.Line, err.Msg)
}

// Parse reads exactly one tree from `text`. Anything other than blanks and
// comments after the tree's terminating ';' is an error, as is input that
// holds no tree at all.
func Parse(text string) (*Tree, error) {
	r := NewReader(strings.NewReader(text))
	tree, err := r.ReadTree()
	if err == io.EOF {
		return nil, &ParseError{r.lx.line, "Expected a tree but found no input."}
	} else if err != nil {
		return nil, err
	}
	if item := r.nextItem(); item.typ != itemEOF {
		return nil, expectErr(item, "the end of input after the tree")
	}
	return tree, nil
}

// Reader corresponds to the state necessary to read trees from Newick
// formatted input.
type Reader struct {
	lx     *lexer
	peeked *item
}

// NewReader returns a reader ready for reading trees from `r`.
func NewReader(r io.Reader) *Reader {
	return &Reader{lx: lex(r)}
}

// ReadAll returns all of the Newick trees in the source input. The first
// error that occurs is returned with no trees. The error is never `io.EOF`.
func (r *Reader) ReadAll() ([]*Tree, error) {
	trees := make([]*Tree, 0)
	for {
		tree, err := r.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// ReadTree reads a single tree from the source input. If the end of the
// input is reached, then a nil `Tree` is returned with `io.EOF` as the error.
// Every other error is a *ParseError.
func (r *Reader) ReadTree() (*Tree, error) {
	if r.peekItem().typ == itemEOF {
		return nil, io.EOF
	}

	root, err := r.parseSubtree()
	if err != nil {
		return nil, err
	}

	switch item := r.nextItem(); item.typ {
	case itemTerminal:
	case itemEOF:
		// The last tree may leave off its terminal.
		r.peeked = &item
	default:
		return nil, expectErr(item, fmt.Sprintf("a terminal '%c'", terminal))
	}
	return &Tree{Root: root}, nil
}

func (r *Reader) nextItem() item {
	if r.peeked != nil {
		item := *r.peeked
		r.peeked = nil
		return item
	}
	return r.lx.nextItem()
}

func (r *Reader) peekItem() item {
	if r.peeked == nil {
		item := r.lx.nextItem()
		r.peeked = &item
	}
	return *r.peeked
}

// parseSubtree reads an optional descendent list followed by an optional
// label and an optional branch length.
func (r *Reader) parseSubtree() (*Node, error) {
	node := &Node{}
	if r.peekItem().typ == itemDescendentsStart {
		r.nextItem()
	CHILDREN:
		for {
			child, err := r.parseSubtree()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)

			switch item := r.nextItem(); item.typ {
			case itemDelimiter:
			case itemDescendentsEnd:
				break CHILDREN
			default:
				return nil, expectErr(item,
					fmt.Sprintf("'%c' or '%c'", descDelimiter, descEnd))
			}
		}
	}

	if item := r.peekItem(); item.typ == itemLabel {
		r.nextItem()
		node.Label = item.val
	}
	if item := r.peekItem(); item.typ == itemLength {
		r.nextItem()
		length, err := parseLength(item.val)
		if err != nil {
			return nil, &ParseError{item.line, err.Error()}
		}
		node.Length = length
	}
	return node, nil
}

// decimalRunes are the only characters allowed in a branch length. This
// keeps out hexadecimal floats, digit separators, "Inf" and "NaN", all of
// which strconv.ParseFloat would otherwise accept.
const decimalRunes = "0123456789.eE+-"

// parseLength returns nil for an empty length, which is allowed after a ':'.
func parseLength(s string) (*float64, error) {
	if len(s) == 0 {
		return nil, nil
	}
	if strings.ContainsFunc(s, notDecimal) {
		return nil, fmt.Errorf("Invalid branch length '%s'.", s)
	}
	length, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("Invalid branch length '%s'.", s)
	}
	if length < 0 {
		return nil, fmt.Errorf("Negative branch length '%s'.", s)
	}
	return &length, nil
}

func notDecimal(r rune) bool {
	return !strings.ContainsRune(decimalRunes, r)
}

func expectErr(item item, expected string) error {
	switch item.typ {
	case itemError:
		return &ParseError{item.line, item.val}
	case itemLabel, itemLength:
		return &ParseError{item.line, fmt.Sprintf("Unexpected %s '%s', expected %s.",
			item.typ, item.val, expected)}
	}
	return &ParseError{item.line, fmt.Sprintf("Unexpected %s, expected %s.",
		item.typ, expected)}
}
