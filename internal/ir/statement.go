package ir

// Statement is one node of the IR tree. It is immutable once built.
type Statement struct {
	keyword  *Keyword
	argument *Argument
	children []*Statement
	pos      Position
}

// NewStatement builds a statement. arg may be nil.
func NewStatement(kw *Keyword, arg *Argument, pos Position, children ...*Statement) *Statement {
	return &Statement{keyword: kw, argument: arg, children: children, pos: pos}
}

func (s *Statement) Keyword() *Keyword           { return s.keyword }
func (s *Statement) Argument() *Argument         { return s.argument }
func (s *Statement) Substatements() []*Statement { return s.children }
func (s *Statement) Position() Position          { return s.pos }

// RawArgument returns the resolved argument text, or "" when absent.
func (s *Statement) RawArgument() string {
	if s.argument == nil {
		return ""
	}
	return s.argument.Value()
}

// Find returns the first direct substatement with the given unqualified keyword.
func (s *Statement) Find(keyword string) *Statement {
	for _, c := range s.children {
		if !c.keyword.IsQualified() && c.keyword.identifier == keyword {
			return c
		}
	}
	return nil
}

// Walk visits s and its subtree depth first. Returning false from fn skips
// the statement's substatements.
func (s *Statement) Walk(fn func(*Statement) bool) {
	if !fn(s) {
		return
	}
	for _, c := range s.children {
		c.Walk(fn)
	}
}
