package newick

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemTerminal
	itemDescendentsStart
	itemDescendentsEnd
	itemDelimiter
	itemLabel
	itemLength
)

const (
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	quote         = '\''
	lengthStart   = ':'
	commentStart  = '['
	commentEnd    = ']'
)

const eof rune = -1

const unquoteBanned = " \t\r\n()[]':;,"

type stateFn func(lx *lexer) stateFn

// lexer splits Newick input into items. Each state emits at most one item,
// so the item buffer never fills up between calls to nextItem.
type lexer struct {
	input   *bufio.Reader
	readErr error
	buf     []rune
	width   int
	last    rune
	line    int
	state   stateFn
	items   chan item
}

type item struct {
	typ  itemType
	val  string
	line int
}

func (lx *lexer) nextItem() item {
	for {
		select {
		case item := <-lx.items:
			return item
		default:
			if lx.state == nil {
				return item{itemEOF, "", lx.line}
			}
			lx.state = lx.state(lx)
		}
	}
}

func lex(input io.Reader) *lexer {
	return &lexer{
		input: bufio.NewReader(input),
		state: lexAny,
		line:  1,
		items: make(chan item, 2),
	}
}

func (lx *lexer) current() string {
	return string(lx.buf)
}

func (lx *lexer) emit(typ itemType) {
	lx.items <- item{typ, lx.current(), lx.line}
	lx.ignore()
}

// next returns eof for good once the input is exhausted, unreadable or
// not valid UTF-8.
func (lx *lexer) next() rune {
	if lx.readErr != nil {
		lx.width = 0
		return eof
	}
	r, width, err := lx.input.ReadRune()
	if err != nil {
		if err != io.EOF {
			lx.readErr = err
		}
		lx.width = 0
		return eof
	}
	if r == utf8.RuneError && width == 1 {
		lx.readErr = errors.New("invalid UTF-8 encoding")
		lx.width = 0
		return eof
	}
	if r == '\n' {
		lx.line++
	}
	lx.width, lx.last = width, r
	lx.buf = append(lx.buf, r)
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.buf = lx.buf[:0]
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	if lx.width == 0 {
		return
	}
	lx.input.UnreadRune()
	lx.buf = lx.buf[:len(lx.buf)-1]
	lx.width = 0
	if lx.last == '\n' {
		lx.line--
	}
}

// peek returns but does not consume the next rune in the input.
func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

// errorf stops all lexing by emitting an error and returning `nil`.
// Note that any value that is a character is escaped if it's a special
// character (new lines, tabs, etc.).
func (lx *lexer) errorf(format string, values ...interface{}) stateFn {
	for i, value := range values {
		if v, ok := value.(rune); ok {
			values[i] = escapeSpecial(v)
		}
	}
	lx.items <- item{
		itemError,
		fmt.Sprintf(format, values...),
		lx.line,
	}
	return nil
}

func (lx *lexer) readFailed() stateFn {
	return lx.errorf("Could not read input: %s", lx.readErr.Error())
}

// lexAny is the state between tokens. Blanks and comments are skipped here.
func lexAny(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		lx.ignore()
		return lexAny
	}

	switch r {
	case eof:
		if lx.readErr != nil {
			return lx.readFailed()
		}
		lx.emit(itemEOF)
		return nil
	case descStart:
		lx.emit(itemDescendentsStart)
		return lexAny
	case descEnd:
		lx.emit(itemDescendentsEnd)
		return lexAny
	case descDelimiter:
		lx.emit(itemDelimiter)
		return lexAny
	case terminal:
		lx.emit(itemTerminal)
		return lexAny
	case lengthStart:
		lx.ignore()
		return lexLength
	case quote:
		lx.ignore()
		return lexQuoted
	case commentStart:
		return lexComment(lexAny)
	case commentEnd:
		return lx.errorf("Found '%s' outside of a comment.", escapeSpecial(r))
	}
	lx.backup()
	return lexLabel
}

func lexLabel(lx *lexer) stateFn {
	r := lx.next()
	if r == eof || strings.ContainsRune(unquoteBanned, r) {
		lx.backup()
		lx.emit(itemLabel)
		return lexAny
	}
	return lexLabel
}

// lexQuoted reads a label up to the closing quote. A doubled quote stands
// for a single literal quote.
func lexQuoted(lx *lexer) stateFn {
	for {
		switch lx.next() {
		case eof:
			if lx.readErr != nil {
				return lx.readFailed()
			}
			return lx.errorf("Unterminated quoted label.")
		case quote:
			if lx.peek() == quote {
				lx.next()
				continue
			}
			label := string(lx.buf[:len(lx.buf)-1])
			lx.items <- item{
				itemLabel,
				strings.ReplaceAll(label, "''", "'"),
				lx.line,
			}
			lx.ignore()
			return lexAny
		}
	}
}

// lexLength skips blanks between the ':' and the number.
func lexLength(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		lx.ignore()
		return lexLength
	}
	lx.backup()
	return lexLengthNum
}

// lexLengthNum takes everything up to the next delimiter. The parser
// decides whether it is a valid number.
func lexLengthNum(lx *lexer) stateFn {
	r := lx.next()
	if r == eof || strings.ContainsRune(unquoteBanned, r) {
		lx.backup()
		lx.emit(itemLength)
		return lexAny
	}
	return lexLengthNum
}

// lexComment drops everything up to the closing ']' and then moves on to
// the next state.
func lexComment(nextState stateFn) stateFn {
	return func(lx *lexer) stateFn {
		for {
			switch lx.next() {
			case eof:
				if lx.readErr != nil {
					return lx.readFailed()
				}
				return lx.errorf("Unterminated comment.")
			case commentEnd:
				lx.ignore()
				return nextState
			}
		}
	}
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' '
}

func isNL(r rune) bool {
	return r == '\n' || r == '\r'
}

func (itype itemType) String() string {
	switch itype {
	case itemError:
		return "Error"
	case itemEOF:
		return "EOF"
	case itemTerminal:
		return "Terminal"
	case itemDescendentsStart:
		return "Descendents (start)"
	case itemDescendentsEnd:
		return "Descendents (end)"
	case itemDelimiter:
		return "Delimiter"
	case itemLabel:
		return "Label"
	case itemLength:
		return "Length"
	}
	panic(fmt.Sprintf("BUG: Unknown type '%d'.", int(itype)))
}

func (item item) String() string {
	return fmt.Sprintf("(%s, %s)", item.typ.String(), item.val)
}

func escapeSpecial(c rune) string {
	switch c {
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	case eof:
		return "EOF"
	}
	return string(c)
}
