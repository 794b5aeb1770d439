package namespace

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/yangkit/internal/scheduler"
)

// ErrConflict is returned by Put when the key already holds a different value.
var ErrConflict = errors.New("conflicting namespace entry")

// Scope selects the storage a namespace lives in.
type Scope int

const (
	// StatementLocal entries live on the node they were put on and are visible
	// to its descendants, and to copies of them.
	StatementLocal Scope = iota
	// SourceLocal entries live on the root of a source and are also visible
	// from the submodules that belong to it.
	SourceLocal
	// RootStatementLocal entries live on the root and are visible from that
	// root's tree only.
	RootStatementLocal
	// Global entries are shared by every source of one resolution run.
	Global
)

func (s Scope) String() string {
	switch s {
	case StatementLocal:
		return "statement-local"
	case SourceLocal:
		return "source-local"
	case RootStatementLocal:
		return "root-statement-local"
	case Global:
		return "global"
	}
	return "unknown"
}

// Node is anything that owns namespace storage.
type Node interface {
	Storage() *Storage
	// ParentNode returns nil at a root.
	ParentNode() Node
	RootNode() Node
	// SourceParentNode returns the root of the module a submodule root
	// belongs to, once known; nil otherwise.
	SourceParentNode() Node
	GlobalNode() Node
	// OriginalNode returns the node a copy was made from; nil otherwise.
	OriginalNode() Node
}

// Storage is the private store of one node, holding one table per namespace.
type Storage struct {
	tables map[any]any
}

// Namespace is a typed side table. Instances are package-level identities;
// the data lives in Storage, so one Namespace value serves every run.
type Namespace[K comparable, V comparable] struct {
	name  string
	scope Scope
}

// New declares a namespace.
func New[K comparable, V comparable](name string, scope Scope) *Namespace[K, V] {
	return &Namespace[K, V]{name: name, scope: scope}
}

func (ns *Namespace[K, V]) Name() string { return ns.name }
func (ns *Namespace[K, V]) Scope() Scope { return ns.scope }

func (ns *Namespace[K, V]) table(s *Storage, create bool) map[K]V {
	if s.tables == nil {
		if !create {
			return nil
		}
		s.tables = make(map[any]any)
	}
	t, ok := s.tables[ns]
	if !ok {
		if !create {
			return nil
		}
		t = make(map[K]V)
		s.tables[ns] = t
	}
	return t.(map[K]V)
}

// home returns the node whose storage Put writes into.
func (ns *Namespace[K, V]) home(n Node) Node {
	switch ns.scope {
	case SourceLocal, RootStatementLocal:
		return n.RootNode()
	case Global:
		return n.GlobalNode()
	}
	return n
}

// Get looks key up as seen from n.
func (ns *Namespace[K, V]) Get(n Node, key K) (V, bool) {
	switch ns.scope {
	case StatementLocal:
		return ns.getLocal(n, key)
	case SourceLocal:
		root := n.RootNode()
		if v, ok := ns.table(root.Storage(), false)[key]; ok {
			return v, true
		}
		if parent := root.SourceParentNode(); parent != nil {
			v, ok := ns.table(parent.Storage(), false)[key]
			return v, ok
		}
		var zero V
		return zero, false
	}
	v, ok := ns.table(ns.home(n).Storage(), false)[key]
	return v, ok
}

func (ns *Namespace[K, V]) getLocal(n Node, key K) (V, bool) {
	for cur := n; cur != nil; cur = cur.ParentNode() {
		if v, ok := ns.table(cur.Storage(), false)[key]; ok {
			return v, true
		}
		if orig := cur.OriginalNode(); orig != nil {
			if v, ok := ns.getLocal(orig, key); ok {
				return v, true
			}
		}
	}
	var zero V
	return zero, false
}

// Put stores value under key in the storage the scope designates. Putting an
// equal value again is a no-op; a different value returns ErrConflict.
func (ns *Namespace[K, V]) Put(n Node, key K, value V) error {
	t := ns.table(ns.home(n).Storage(), true)
	if old, ok := t[key]; ok {
		if old == value {
			return nil
		}
		return fmt.Errorf("%w: %s[%v] already holds %v, refusing %v", ErrConflict, ns.name, key, old, value)
	}
	t[key] = value
	return nil
}

// Entries returns a copy of the table stored at the node the scope
// designates for n. Ancestors and parent modules are not consulted.
func (ns *Namespace[K, V]) Entries(n Node) map[K]V {
	t := ns.table(ns.home(n).Storage(), false)
	out := make(map[K]V, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Requires returns a prerequisite satisfied once key is visible from n.
func (ns *Namespace[K, V]) Requires(n Node, key K) scheduler.Prerequisite {
	return &entryPrerequisite[K, V]{ns: ns, node: n, key: key}
}

type entryPrerequisite[K comparable, V comparable] struct {
	ns   *Namespace[K, V]
	node Node
	key  K
}

func (p *entryPrerequisite[K, V]) Status() scheduler.Status {
	if _, ok := p.ns.Get(p.node, p.key); ok {
		return scheduler.Satisfied
	}
	return scheduler.Pending
}

func (p *entryPrerequisite[K, V]) String() string {
	return fmt.Sprintf("%s[%v]", p.ns.name, p.key)
}
