package newick

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/phylodraw/pkg/errors"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenOpen
	tokenClose
	tokenComma
	tokenColon
	tokenSemi
	tokenWord
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenOpen:
		return "'('"
	case tokenClose:
		return "')'"
	case tokenComma:
		return "','"
	case tokenColon:
		return "':'"
	case tokenSemi:
		return "';'"
	case tokenWord:
		return "label"
	}
	return "unknown token"
}

// token is a single lexical element with its position in the source.
type token struct {
	typ    tokenType
	val    string
	line   int
	offset int // character offset within the line, 1-based
}

// Characters that may not appear in an unquoted label.
const wordBanned = " \t\r\n()[]':;,"

// lexer scans a Newick description one token at a time. Position
// tracking (line, per-line character offset) feeds SYNTAX_ERROR
// messages.
type lexer struct {
	input  string
	pos    int
	line   int
	offset int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, offset: 1}
}

func (lx *lexer) next() (rune, int) {
	if lx.pos >= len(lx.input) {
		return 0, 0
	}
	r, w := utf8.DecodeRuneInString(lx.input[lx.pos:])
	return r, w
}

func (lx *lexer) advance(r rune, w int) {
	lx.pos += w
	if r == '\n' {
		lx.line++
		lx.offset = 1
	} else {
		lx.offset++
	}
}

func (lx *lexer) skipSpace() {
	for {
		r, w := lx.next()
		if w == 0 || !isSpace(r) {
			return
		}
		lx.advance(r, w)
	}
}

// nextToken returns the next token in the input, or a SYNTAX_ERROR for
// characters that cannot start any token.
func (lx *lexer) nextToken() (token, error) {
	lx.skipSpace()

	line, offset := lx.line, lx.offset
	r, w := lx.next()
	if w == 0 {
		return token{typ: tokenEOF, line: line, offset: offset}, nil
	}

	switch r {
	case '(':
		lx.advance(r, w)
		return token{typ: tokenOpen, val: "(", line: line, offset: offset}, nil
	case ')':
		lx.advance(r, w)
		return token{typ: tokenClose, val: ")", line: line, offset: offset}, nil
	case ',':
		lx.advance(r, w)
		return token{typ: tokenComma, val: ",", line: line, offset: offset}, nil
	case ':':
		lx.advance(r, w)
		return token{typ: tokenColon, val: ":", line: line, offset: offset}, nil
	case ';':
		lx.advance(r, w)
		return token{typ: tokenSemi, val: ";", line: line, offset: offset}, nil
	case '\'':
		return lx.quotedWord(line, offset)
	}

	if strings.ContainsRune(wordBanned, r) {
		return token{}, lx.errorf(line, offset, "unexpected character %q", r)
	}
	return lx.word(line, offset), nil
}

// word consumes an unquoted label or numeric literal. The split between
// the two is contextual, so the parser decides which one it got.
func (lx *lexer) word(line, offset int) token {
	start := lx.pos
	for {
		r, w := lx.next()
		if w == 0 || strings.ContainsRune(wordBanned, r) {
			break
		}
		lx.advance(r, w)
	}
	return token{typ: tokenWord, val: lx.input[start:lx.pos], line: line, offset: offset}
}

// quotedWord consumes a single-quoted label. A doubled quote inside the
// label is an escaped quote, per the Newick convention.
func (lx *lexer) quotedWord(line, offset int) (token, error) {
	r, w := lx.next() // opening quote
	lx.advance(r, w)

	var sb strings.Builder
	for {
		r, w := lx.next()
		if w == 0 {
			return token{}, lx.errorf(line, offset, "unterminated quoted label")
		}
		lx.advance(r, w)
		if r != '\'' {
			sb.WriteRune(r)
			continue
		}
		// Either an escaped quote ('') or the closing quote.
		if nr, nw := lx.next(); nw > 0 && nr == '\'' {
			lx.advance(nr, nw)
			sb.WriteRune('\'')
			continue
		}
		return token{typ: tokenWord, val: sb.String(), line: line, offset: offset}, nil
	}
}

func (lx *lexer) errorf(line, offset int, format string, args ...any) error {
	prefixed := append([]any{line, offset}, args...)
	return errors.New(errors.ErrCodeSyntax, "line %d, offset %d: "+format, prefixed...)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
