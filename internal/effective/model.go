package effective

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// Model is the effective schema of one resolution run.
type Model struct {
	modules    []*Statement
	submodules []*Statement
	byName     map[string]*Statement
	// top-level schema nodes of every module, submodules included
	schema map[nodeid.QName]*Statement
}

// Build freezes the context graph below roots into a Model. Every root must
// have completed the effective model phase.
func Build(roots []*stmt.Context) (*Model, error) {
	m := &Model{
		byName: make(map[string]*Statement),
		schema: make(map[nodeid.QName]*Statement),
	}
	built := make(map[*stmt.Context]*Statement, len(roots))
	for _, root := range roots {
		s, err := build(root)
		if err != nil {
			return nil, err
		}
		built[root] = s
		if root.Kind() == stmt.KindSubmodule {
			m.submodules = append(m.submodules, s)
			continue
		}
		m.modules = append(m.modules, s)
		m.byName[s.rawArg] = s
	}

	for _, root := range roots {
		if root.Kind() != stmt.KindSubmodule || root.SourceParent() == nil {
			continue
		}
		module, sub := built[root.SourceParent()], built[root]
		for _, child := range sub.schemaOrder {
			if err := module.addSchemaChild(child); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(m.modules, func(i, j int) bool { return m.modules[i].rawArg < m.modules[j].rawArg })
	sort.Slice(m.submodules, func(i, j int) bool { return m.submodules[i].rawArg < m.submodules[j].rawArg })
	for _, module := range m.modules {
		for q, s := range module.schema {
			m.schema[q] = s
		}
	}
	return m, nil
}

func build(c *stmt.Context) (*Statement, error) {
	s := &Statement{
		kind:       c.Kind(),
		keyword:    c.Keyword(),
		rawArg:     c.RawArgument(),
		argument:   c.Argument(),
		ref:        c.Ref(),
		history:    c.History(),
		implicit:   c.IsImplicit(),
		schemaNode: c.IsSchemaNode(),
	}
	for _, sub := range c.Substatements() {
		if !sub.IsSupported() {
			continue
		}
		child, err := build(sub)
		if err != nil {
			return nil, err
		}
		s.substatements = append(s.substatements, child)
		if child.schemaNode {
			if err := s.addSchemaChild(child); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// Modules returns the module statements sorted by name.
func (m *Model) Modules() []*Statement { return m.modules }

// Submodules returns the submodule statements sorted by name.
func (m *Model) Submodules() []*Statement { return m.submodules }

// Module returns the module statement named name.
func (m *Model) Module(name string) (*Statement, bool) {
	s, ok := m.byName[name]
	return s, ok
}

// Lookup follows path from the top-level schema nodes of the model.
func (m *Model) Lookup(path ...nodeid.QName) (*Statement, bool) {
	if len(path) == 0 {
		return nil, false
	}
	s, ok := m.schema[path[0]]
	for _, q := range path[1:] {
		if !ok {
			return nil, false
		}
		s, ok = s.SchemaChild(q)
	}
	return s, ok
}

// Find follows a path written with module names, such as
// "/example:top/example:leaf". The module prefix of a segment may be left
// out to reuse the previous one.
func (m *Model) Find(path string) (*Statement, bool) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	var (
		current *Statement
		module  string
	)
	for i, seg := range segments {
		name := seg
		if mod, local, ok := strings.Cut(seg, ":"); ok {
			module, name = mod, local
		}
		var candidates []*Statement
		if i == 0 {
			root, ok := m.byName[module]
			if !ok {
				return nil, false
			}
			candidates = root.schemaOrder
		} else {
			candidates = current.schemaOrder
		}
		current = nil
		for _, c := range candidates {
			if q, _ := c.QName(); q.Module.Name == module && q.Name == name {
				current = c
				break
			}
		}
		if current == nil {
			return nil, false
		}
	}
	return current, current != nil
}

// MustLookup is Lookup for callers that know the node exists.
func (m *Model) MustLookup(path ...nodeid.QName) *Statement {
	s, ok := m.Lookup(path...)
	if !ok {
		panic(fmt.Sprintf("effective: no schema node at %v", path))
	}
	return s
}
