package newick

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
)

// A Writer writes trees in Newick format, one tree per line.
type Writer struct {
	buf *bufio.Writer
}

// NewWriter creates a new Newick writer that can write trees to an
// io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w)}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single tree, followed by a new line. Trees without a root
// cannot be written.
func (w *Writer) Write(tree *Tree) error {
	if tree == nil || tree.Root == nil {
		return errors.New("Cannot write a tree without a root.")
	}
	if _, err := w.buf.WriteString(tree.Newick()); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

// WriteAll writes a slice of trees to the underlying io.Writer, and calls
// Flush.
func (w *Writer) WriteAll(trees []*Tree) error {
	for _, tree := range trees {
		if err := w.Write(tree); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeNode(buf *bytes.Buffer, n *Node) {
	if n == nil {
		return
	}
	if !n.IsLeaf() {
		buf.WriteByte(descStart)
		first := true
		for _, child := range n.Children {
			if child == nil {
				continue
			}
			if !first {
				buf.WriteByte(descDelimiter)
			}
			writeNode(buf, child)
			first = false
		}
		buf.WriteByte(descEnd)
	}
	buf.WriteString(quoteLabel(n.Label))
	if n.Length != nil {
		buf.WriteByte(lengthStart)
		buf.WriteString(strconv.FormatFloat(*n.Length, 'g', -1, 64))
	}
}

// quoteLabel quotes labels that would not survive being read back
// unquoted.
func quoteLabel(label string) string {
	if !strings.ContainsAny(label, unquoteBanned) {
		return label
	}
	return string(quote) + strings.ReplaceAll(label, "'", "''") + string(quote)
}
