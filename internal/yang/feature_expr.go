package yang

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	exprWhitespaceToken = iota
	exprOpenToken
	exprCloseToken
	exprWordToken
)

var exprWhitespace = parsly.NewToken(exprWhitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var exprOpen = parsly.NewToken(exprOpenToken, "(", matcher.NewByte('('))
var exprClose = parsly.NewToken(exprCloseToken, ")", matcher.NewByte(')'))
var exprWord = parsly.NewToken(exprWordToken, "IdentifierRef", &wordMatch{})

// wordMatch consumes an identifier-ref or an operator keyword.
type wordMatch struct{}

func (m *wordMatch) Match(cursor *parsly.Cursor) int {
	pos := cursor.Pos
	end := pos
	for end < cursor.InputSize {
		c := cursor.Input[end]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-' || c == '.' || c == ':') {
			break
		}
		end++
	}
	return end - pos
}

// FeatureRef names a feature, optionally through a module prefix.
type FeatureRef struct {
	Prefix string
	Name   string
}

func (r FeatureRef) String() string {
	if r.Prefix == "" {
		return r.Name
	}
	return r.Prefix + ":" + r.Name
}

type featureNode interface {
	eval(enabled func(FeatureRef) bool) bool
}

type refNode struct{ ref FeatureRef }
type notNode struct{ operand featureNode }
type andNode struct{ left, right featureNode }
type orNode struct{ left, right featureNode }

func (n refNode) eval(enabled func(FeatureRef) bool) bool { return enabled(n.ref) }
func (n notNode) eval(enabled func(FeatureRef) bool) bool { return !n.operand.eval(enabled) }
func (n andNode) eval(enabled func(FeatureRef) bool) bool {
	return n.left.eval(enabled) && n.right.eval(enabled)
}
func (n orNode) eval(enabled func(FeatureRef) bool) bool {
	return n.left.eval(enabled) || n.right.eval(enabled)
}

// FeatureExpr is a parsed if-feature argument.
type FeatureExpr struct {
	raw  string
	root featureNode
	refs []FeatureRef
}

// Refs returns every feature the expression mentions, in order of appearance.
func (e *FeatureExpr) Refs() []FeatureRef { return e.refs }

// Eval evaluates the expression with enabled deciding each feature.
func (e *FeatureExpr) Eval(enabled func(FeatureRef) bool) bool { return e.root.eval(enabled) }

func (e *FeatureExpr) String() string { return e.raw }

// ParseFeatureExpr parses an if-feature argument. YANG 1 only allows a
// single feature name; YANG 1.1 allows "not", "and", "or" and parentheses.
func ParseFeatureExpr(raw string, v nodeid.Version) (*FeatureExpr, error) {
	p := &exprParser{cursor: parsly.NewCursor("if-feature", []byte(raw), 0), version: v}
	root, err := p.or()
	if err != nil {
		return nil, fmt.Errorf("invalid if-feature expression '%s': %w", raw, err)
	}
	if tok, _ := p.next(); tok.code != parsly.EOF {
		return nil, fmt.Errorf("invalid if-feature expression '%s': unexpected '%s'", raw, tok.text)
	}
	if _, single := root.(refNode); v == nodeid.Version1 && !single {
		return nil, fmt.Errorf("if-feature expression '%s' requires yang-version 1.1", raw)
	}
	return &FeatureExpr{raw: raw, root: root, refs: p.refs}, nil
}

type exprToken struct {
	code int
	text string
}

type exprParser struct {
	cursor  *parsly.Cursor
	version nodeid.Version
	peeked  *exprToken
	refs    []FeatureRef
}

func (p *exprParser) next() (exprToken, error) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, nil
	}
	matched := p.cursor.MatchAfterOptional(exprWhitespace, exprOpen, exprClose, exprWord)
	switch matched.Code {
	case parsly.EOF, exprOpenToken, exprCloseToken, exprWordToken:
		return exprToken{code: matched.Code, text: matched.Text(p.cursor)}, nil
	}
	return exprToken{}, fmt.Errorf("unexpected character at offset %d", p.cursor.Pos)
}

func (p *exprParser) peek() (exprToken, error) {
	tok, err := p.next()
	if err == nil {
		p.peeked = &tok
	}
	return tok, err
}

func (p *exprParser) keyword(word string) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if tok.code == exprWordToken && tok.text == word {
		p.peeked = nil
		return true, nil
	}
	return false, nil
}

func (p *exprParser) or() (featureNode, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := p.keyword("or")
		if err != nil || !ok {
			return left, err
		}
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
}

func (p *exprParser) and() (featureNode, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := p.keyword("and")
		if err != nil || !ok {
			return left, err
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
}

func (p *exprParser) factor() (featureNode, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.code == exprOpenToken:
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if closing, err := p.next(); err != nil || closing.code != exprCloseToken {
			return nil, fmt.Errorf("missing ')'")
		}
		return inner, nil
	case tok.code == exprWordToken && tok.text == "not":
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return notNode{operand: operand}, nil
	case tok.code == exprWordToken && tok.text != "and" && tok.text != "or":
		ref, err := p.featureRef(tok.text)
		if err != nil {
			return nil, err
		}
		p.refs = append(p.refs, ref)
		return refNode{ref: ref}, nil
	case tok.code == parsly.EOF:
		return nil, fmt.Errorf("unexpected end of expression")
	}
	return nil, fmt.Errorf("unexpected '%s'", tok.text)
}

func (p *exprParser) featureRef(text string) (FeatureRef, error) {
	prefix, name, qualified := strings.Cut(text, ":")
	if !qualified {
		prefix, name = "", text
	}
	if _, err := nodeid.ParseIdentifier(name, p.version); err != nil {
		return FeatureRef{}, err
	}
	if qualified {
		if _, err := nodeid.ParseIdentifier(prefix, p.version); err != nil {
			return FeatureRef{}, err
		}
	}
	return FeatureRef{Prefix: prefix, Name: name}, nil
}
