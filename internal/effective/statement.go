package effective

import (
	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// Statement is one effective statement.
type Statement struct {
	kind       stmt.Kind
	keyword    string
	rawArg     string
	argument   any
	ref        diag.SourceRef
	history    stmt.CopyHistory
	implicit   bool
	schemaNode bool

	substatements []*Statement
	schema        map[nodeid.QName]*Statement
	schemaOrder   []*Statement
}

func (s *Statement) Kind() stmt.Kind              { return s.kind }
func (s *Statement) Keyword() string              { return s.keyword }
func (s *Statement) RawArgument() string          { return s.rawArg }
func (s *Statement) Argument() any                { return s.argument }
func (s *Statement) Ref() diag.SourceRef          { return s.ref }
func (s *Statement) History() stmt.CopyHistory    { return s.history }
func (s *Statement) IsImplicit() bool             { return s.implicit }
func (s *Statement) IsSchemaNode() bool           { return s.schemaNode }
func (s *Statement) Substatements() []*Statement  { return s.substatements }
func (s *Statement) SchemaChildren() []*Statement { return s.schemaOrder }

// QName returns the argument as a qualified name, if it is one.
func (s *Statement) QName() (nodeid.QName, bool) {
	q, ok := s.argument.(nodeid.QName)
	return q, ok
}

// SchemaChild returns the schema node child named q.
func (s *Statement) SchemaChild(q nodeid.QName) (*Statement, bool) {
	child, ok := s.schema[q]
	return child, ok
}

// Find returns the first substatement of kind.
func (s *Statement) Find(kind stmt.Kind) (*Statement, bool) {
	for _, sub := range s.substatements {
		if sub.kind == kind {
			return sub, true
		}
	}
	return nil, false
}

func (s *Statement) String() string {
	if s.rawArg == "" {
		return s.keyword
	}
	return s.keyword + " " + s.rawArg
}

func (s *Statement) addSchemaChild(child *Statement) error {
	q, ok := child.QName()
	if !ok {
		return nil
	}
	if existing, dup := s.schema[q]; dup {
		return diag.Errorf(child.ref, "node named '%s' is already defined at %s", q.Name, existing.ref)
	}
	if s.schema == nil {
		s.schema = make(map[nodeid.QName]*Statement)
	}
	s.schema[q] = child
	s.schemaOrder = append(s.schemaOrder, child)
	return nil
}
