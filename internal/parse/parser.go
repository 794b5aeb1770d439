package parse

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/ir"
	"github.com/viant/parsly"
)

const tabWidth = 8

type token struct {
	code   int
	text   string
	offset int
}

type parser struct {
	name       string
	cursor     *parsly.Cursor
	lineStarts []int
	interner   *ir.Interner
	peeked     *token
}

// File reads and parses the document at path. Diagnostics name it name.
func File(name, path string) (*ir.Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(name, data)
}

// Parse parses a YANG document holding exactly one top-level statement.
func Parse(name string, data []byte) (*ir.Statement, error) {
	p := &parser{
		name:       name,
		cursor:     parsly.NewCursor(name, data, 0),
		lineStarts: lineStarts(data),
		interner:   ir.NewInterner(),
	}
	root, err := p.statement()
	if err != nil {
		return nil, err
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.code != eofToken {
		return nil, p.errorf(tok.offset, "unexpected content after the top-level statement")
	}
	return root, nil
}

func (p *parser) statement() (*ir.Statement, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.code != unquotedToken {
		return nil, p.errorf(tok.offset, "expected a statement keyword, found %s", describe(tok))
	}
	kw, err := p.keyword(tok)
	if err != nil {
		return nil, err
	}
	pos := p.position(tok.offset)

	var arg *ir.Argument
	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	switch tok.code {
	case unquotedToken:
		arg = p.interner.Argument(ir.Unquoted, tok.text, 0)
		if tok, err = p.next(); err != nil {
			return nil, err
		}
	case singleQuotedToken, doubleQuotedToken:
		if arg, err = p.quotedArgument(tok); err != nil {
			return nil, err
		}
		if tok, err = p.next(); err != nil {
			return nil, err
		}
	}

	switch tok.code {
	case semicolonToken:
		return ir.NewStatement(kw, arg, pos), nil
	case openBraceToken:
	default:
		return nil, p.errorf(tok.offset, "expected ';' or '{' after '%s', found %s", kw, describe(tok))
	}

	var children []*ir.Statement
	for {
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.code == closeBraceToken {
			p.peeked = nil
			break
		}
		if next.code == eofToken {
			return nil, p.errorf(next.offset, "missing '}' for '%s' opened at line %d", kw, pos.Line())
		}
		child, err := p.statement()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return ir.NewStatement(kw, arg, pos, children...), nil
}

// quotedArgument reads a quoted fragment and any '+' continuations.
func (p *parser) quotedArgument(first token) (*ir.Argument, error) {
	parts := []*ir.Argument{p.fragment(first)}
	for {
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.code != plusToken {
			break
		}
		p.peeked = nil
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.code != singleQuotedToken && tok.code != doubleQuotedToken {
			return nil, p.errorf(tok.offset, "expected a quoted string after '+', found %s", describe(tok))
		}
		parts = append(parts, p.fragment(tok))
	}
	return ir.NewConcatenation(parts...), nil
}

func (p *parser) fragment(tok token) *ir.Argument {
	body := tok.text[1 : len(tok.text)-1]
	if tok.code == singleQuotedToken {
		return p.interner.Argument(ir.SingleQuoted, body, 0)
	}
	return p.interner.Argument(ir.DoubleQuoted, body, p.visualColumn(tok.offset))
}

func (p *parser) keyword(tok token) (*ir.Keyword, error) {
	prefix, identifier := "", tok.text
	if i := strings.IndexByte(tok.text, ':'); i >= 0 {
		prefix, identifier = tok.text[:i], tok.text[i+1:]
	}
	kw, err := p.interner.Keyword(prefix, identifier)
	if err != nil {
		return nil, p.errorf(tok.offset, "%v", err)
	}
	return kw, nil
}

func (p *parser) peek() (token, error) {
	if p.peeked != nil {
		return *p.peeked, nil
	}
	tok, err := p.scan()
	if err != nil {
		return token{}, err
	}
	p.peeked = &tok
	return tok, nil
}

func (p *parser) next() (token, error) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, nil
	}
	return p.scan()
}

// scan skips whitespace and comments and returns the next token.
func (p *parser) scan() (token, error) {
	c := p.cursor
	for {
		if c.Pos >= c.InputSize {
			return token{code: eofToken, offset: c.Pos}, nil
		}
		start := c.Pos
		switch {
		case isSpace(c.Input[start]):
			c.MatchOne(whitespaceMatcher)
		case hasPrefix(c, "//"):
			c.MatchOne(lineCommentMatcher)
		case hasPrefix(c, "/*"):
			if m := c.MatchOne(blockCommentMatcher); m.Code != blockCommentToken {
				return token{}, p.errorf(start, "unterminated block comment")
			}
		default:
			return p.scanToken()
		}
		if c.Pos == start {
			return token{}, p.errorf(start, "unexpected character %q", c.Input[start])
		}
	}
}

func (p *parser) scanToken() (token, error) {
	c := p.cursor
	start := c.Pos
	var tok *parsly.Token
	switch c.Input[start] {
	case '{':
		tok = openBraceMatcher
	case '}':
		tok = closeBraceMatcher
	case ';':
		tok = semicolonMatcher
	case '\'':
		tok = singleQuotedMatcher
	case '"':
		tok = doubleQuotedMatcher
	case '+':
		if start+1 >= c.InputSize || isSpace(c.Input[start+1]) || c.Input[start+1] == '"' || c.Input[start+1] == '\'' {
			tok = plusMatcher
		} else {
			tok = unquotedMatcher
		}
	default:
		tok = unquotedMatcher
	}
	m := c.MatchOne(tok)
	if m.Code != tok.Code || c.Pos == start {
		switch tok.Code {
		case singleQuotedToken, doubleQuotedToken:
			return token{}, p.errorf(start, "unterminated quoted string")
		}
		return token{}, p.errorf(start, "unexpected character %q", c.Input[start])
	}
	return token{code: tok.Code, text: string(c.Input[start:c.Pos]), offset: start}, nil
}

func hasPrefix(c *parsly.Cursor, prefix string) bool {
	if c.Pos+len(prefix) > c.InputSize {
		return false
	}
	return string(c.Input[c.Pos:c.Pos+len(prefix)]) == prefix
}

func lineStarts(data []byte) []int {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (p *parser) lineOf(offset int) int {
	return sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > offset }) - 1
}

func (p *parser) position(offset int) ir.Position {
	line := p.lineOf(offset)
	return ir.NewPosition(line+1, offset-p.lineStarts[line]+1)
}

// visualColumn is the zero-based column of offset with tabs expanded.
func (p *parser) visualColumn(offset int) int {
	col := 0
	for _, b := range p.cursor.Input[p.lineStarts[p.lineOf(offset)]:offset] {
		if b == '\t' {
			col += tabWidth
		} else {
			col++
		}
	}
	return col
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	pos := p.position(offset)
	ref := diag.SourceRef{Source: p.name, Line: pos.Line(), Column: pos.Column()}
	return diag.Errorf(ref, "syntax error: "+format, args...)
}

func describe(tok token) string {
	switch tok.code {
	case eofToken:
		return "end of input"
	case openBraceToken, closeBraceToken, semicolonToken, plusToken:
		return "'" + tok.text + "'"
	}
	return fmt.Sprintf("%q", tok.text)
}
