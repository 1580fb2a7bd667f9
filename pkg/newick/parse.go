package newick

import (
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/phylodraw/pkg/errors"
)

// ParseFile reads and parses a single Newick tree description from the
// file at path. It fails with NOT_FOUND when the path does not resolve
// to a readable file, and with SYNTAX_ERROR on malformed content.
func ParseFile(path string) (*Tree, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "input file %s", path)
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrCodeNotFound, "input file %s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "input file %s", path)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
	}
	return Parse(string(data))
}

// Parse parses a single tree description. The description must contain
// exactly one tree followed by the ';' terminator; trailing content is
// a SYNTAX_ERROR. Parsing the same text twice yields structurally
// identical trees: same node count, tip order, and branch lengths.
func Parse(input string) (*Tree, error) {
	p := &parser{lx: newLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.typ == tokenEOF || p.tok.typ == tokenSemi {
		return nil, errors.New(errors.ErrCodeSyntax, "empty tree description")
	}

	root, err := p.subtree()
	if err != nil {
		return nil, err
	}

	if p.tok.typ != tokenSemi {
		return nil, p.unexpected("the terminator ';'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.typ != tokenEOF {
		return nil, p.errorf("trailing content after terminator")
	}

	return NewTree(root), nil
}

// parser is a recursive-descent parser with one token of lookahead.
// Node IDs are assigned in creation order, which is pre-order because
// an internal node is created when its '(' is consumed.
type parser struct {
	lx     *lexer
	tok    token
	nextID int
}

func (p *parser) advance() error {
	tok, err := p.lx.nextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) newNode() *Node {
	n := &Node{ID: p.nextID}
	p.nextID++
	return n
}

// subtree parses either a leaf or a parenthesized clade, both followed
// by an optional label and an optional ':' branch length.
func (p *parser) subtree() (*Node, error) {
	if p.tok.typ == tokenOpen {
		return p.clade()
	}
	return p.leaf()
}

// clade parses '(' branchset ')' [label] [':' length].
func (p *parser) clade() (*Node, error) {
	n := p.newNode()
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}

	for {
		child, err := p.subtree()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)

		switch p.tok.typ {
		case tokenComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokenClose:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return p.decorate(n)
		default:
			return nil, p.unexpected("',' or ')'")
		}
	}
}

// leaf parses [label] [':' length]. Newick permits anonymous tips, so a
// leaf may be entirely empty when delimited by ',' or ')'.
func (p *parser) leaf() (*Node, error) {
	return p.decorate(p.newNode())
}

// decorate attaches the optional label and branch length that follow a
// tip or a closing ')'.
func (p *parser) decorate(n *Node) (*Node, error) {
	if p.tok.typ == tokenWord {
		n.Label = p.tok.val
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.tok.typ == tokenColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.typ != tokenWord {
			return nil, p.unexpected("a branch length")
		}
		length, err := strconv.ParseFloat(p.tok.val, 64)
		if err != nil {
			return nil, p.errorf("invalid branch length %q", p.tok.val)
		}
		if length < 0 {
			return nil, p.errorf("negative branch length %v", length)
		}
		n.Length = &length
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	switch p.tok.typ {
	case tokenComma, tokenClose, tokenSemi:
		return n, nil
	default:
		return nil, p.unexpected("',' or ')' or ';'")
	}
}

func (p *parser) unexpected(expected string) error {
	return p.errorf("unexpected %s, expected %s", p.tok.typ, expected)
}

func (p *parser) errorf(format string, args ...any) error {
	prefixed := append([]any{p.tok.line, p.tok.offset}, args...)
	return errors.New(errors.ErrCodeSyntax, "line %d, offset %d: "+format, prefixed...)
}
