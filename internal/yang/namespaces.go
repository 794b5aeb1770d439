package yang

import (
	"sort"

	"github.com/specialistvlad/yangkit/internal/namespace"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// NameSet is an immutable set of names.
type NameSet struct {
	names map[string]struct{}
}

// NewNameSet builds a set from names.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

func (s *NameSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s *NameSet) Len() int { return len(s.names) }

// Names returns the members in sorted order.
func (s *NameSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

var (
	// Modules maps a module name to its root.
	Modules = namespace.New[string, *stmt.Context]("module", namespace.Global)
	// Submodules maps a submodule name to its root.
	Submodules = namespace.New[string, *stmt.Context]("submodule", namespace.Global)
	// Prefixes maps a prefix to the root of the module it is bound to.
	Prefixes = namespace.New[string, *stmt.Context]("prefix-to-module", namespace.SourceLocal)
	// IncludedSubmodules maps the name of an included submodule to its root.
	IncludedSubmodules = namespace.New[string, *stmt.Context]("included-submodule", namespace.RootStatementLocal)
	// Extensions maps an extension name to its definition statement.
	Extensions = namespace.New[string, *stmt.Context]("extension", namespace.RootStatementLocal)
	// Features maps a feature name to its definition statement.
	Features = namespace.New[string, *stmt.Context]("feature", namespace.RootStatementLocal)
	// Groupings maps a grouping name to its definition, stored on the
	// statement that lexically holds it.
	Groupings = namespace.New[string, *stmt.Context]("grouping", namespace.StatementLocal)

	// EnabledFeatures maps a module name to the features enabled for it.
	// Modules without an entry have every feature enabled.
	EnabledFeatures = namespace.New[string, *NameSet]("enabled-features", namespace.Global)
	// AugmentTargets restricts the keywords an augment may target. An absent
	// or empty set allows every target RFC 7950 allows.
	AugmentTargets = namespace.New[struct{}, *NameSet]("valid-augment-targets", namespace.Global)
	// ImplicitParent records, on an augment, the implicit statement its
	// contributions are wrapped in at the target.
	ImplicitParent = namespace.New[struct{}, stmt.Kind]("augment-implicit-parent", namespace.StatementLocal)

	moduleIDs       = namespace.New[struct{}, nodeid.ModuleID]("module-id", namespace.RootStatementLocal)
	ifFeatureValues = namespace.New[struct{}, bool]("if-feature-value", namespace.StatementLocal)
)

// moduleRoot returns the root of the module c belongs to: its own root, or
// for a linked submodule the root of its module.
func moduleRoot(c *stmt.Context) *stmt.Context {
	root := c.Root()
	if root.Kind() == stmt.KindSubmodule {
		if parent := root.SourceParent(); parent != nil {
			return parent
		}
	}
	return root
}

// ModuleOf returns the identity of the module c belongs to.
func ModuleOf(c *stmt.Context) (nodeid.ModuleID, bool) {
	return moduleIDs.Get(moduleRoot(c), struct{}{})
}

// moduleParts returns a module root followed by every submodule it
// includes, directly or through other submodules.
func moduleParts(root *stmt.Context) []*stmt.Context {
	parts := []*stmt.Context{root}
	seen := map[*stmt.Context]bool{root: true}
	for i := 0; i < len(parts); i++ {
		included := IncludedSubmodules.Entries(parts[i])
		names := make([]string, 0, len(included))
		for name := range included {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if sub := included[name]; !seen[sub] {
				seen[sub] = true
				parts = append(parts, sub)
			}
		}
	}
	return parts
}

// lookupInModule finds key in a root-scoped namespace of a module or any of
// its submodules.
func lookupInModule(ns *namespace.Namespace[string, *stmt.Context], root *stmt.Context, key string) (*stmt.Context, bool) {
	for _, part := range moduleParts(root) {
		if v, ok := ns.Get(part, key); ok {
			return v, true
		}
	}
	return nil, false
}
