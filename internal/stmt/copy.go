package stmt

import (
	"strings"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/nodeid"
)

// CopyType names the operation that produced a copied context.
type CopyType int

const (
	Original CopyType = iota
	AddedByUses
	AddedByAugmentation
	AddedByUsesAugmentation
)

func (t CopyType) String() string {
	switch t {
	case Original:
		return "original"
	case AddedByUses:
		return "added-by-uses"
	case AddedByAugmentation:
		return "added-by-augmentation"
	case AddedByUsesAugmentation:
		return "added-by-uses-augmentation"
	}
	return "unknown"
}

// CopyHistory records every copy operation a context went through.
type CopyHistory struct {
	ops  uint8
	last CopyType
}

// Append returns the history extended with t.
func (h CopyHistory) Append(t CopyType) CopyHistory {
	if t == Original {
		return h
	}
	return CopyHistory{ops: h.ops | 1<<t, last: t}
}

// Contains reports whether t is part of the history. AddedByUsesAugmentation
// counts as both AddedByUses and AddedByAugmentation.
func (h CopyHistory) Contains(t CopyType) bool {
	switch t {
	case Original:
		return h.ops == 0
	case AddedByUses, AddedByAugmentation:
		return h.ops&(1<<t|1<<AddedByUsesAugmentation) != 0
	}
	return h.ops&(1<<t) != 0
}

// Last returns the most recent copy operation, Original for none.
func (h CopyHistory) Last() CopyType {
	return h.last
}

// IsOriginal reports whether the context was never copied.
func (h CopyHistory) IsOriginal() bool {
	return h.ops == 0
}

func (h CopyHistory) String() string {
	if h.ops == 0 {
		return Original.String()
	}
	var parts []string
	for _, t := range []CopyType{AddedByUses, AddedByAugmentation, AddedByUsesAugmentation} {
		if h.ops&(1<<t) != 0 {
			parts = append(parts, t.String())
		}
	}
	return strings.Join(parts, ",")
}

func (c *Context) requireCopyable(original *Context) {
	if original.phase < c.phase {
		panic(diag.Internalf("cannot copy %s [at %s] in phase %s under %s [at %s] in phase %s",
			original, original.ref, original.phase, c, c.ref, c.phase))
	}
}

// ChildCopyOf creates a semantic replica of original parented under c,
// tagged with copyType, and copies its supported substatements the same
// way. When module is non-nil, schema node names are rebound to it. The
// caller attaches the returned context with AddEffective.
func (c *Context) ChildCopyOf(original *Context, copyType CopyType, module *nodeid.ModuleID) *Context {
	c.requireCopyable(original)

	cp := &Context{
		def:       original.def,
		source:    original.source,
		ref:       original.ref,
		rawArg:    original.rawArg,
		argument:  original.argument,
		parent:    c,
		root:      c.root,
		global:    c.global,
		childID:   -1,
		supported: original.supported,
		implicit:  original.implicit,
		history:   original.history.Append(copyType),
		original:  original,
		phase:     c.phase,
	}
	if module != nil && cp.IsSchemaNode() {
		if q, ok := original.argument.(nodeid.QName); ok {
			cp.argument = nodeid.NewQName(*module, q.Name)
		}
	}
	if !c.IsSupported() {
		cp.supported = Unsupported
	}

	for i, sub := range original.Substatements() {
		if !sub.IsSupported() {
			continue
		}
		cp.AddEffective(cp.ChildCopyOf(sub, copyType, module), Origin{Seq: i})
	}
	return cp
}

// ReplicaAsChildOf grafts original under c without copying its subtree:
// the replica exposes original's substatements directly.
func (c *Context) ReplicaAsChildOf(original *Context) *Context {
	c.requireCopyable(original)

	return &Context{
		def:       original.def,
		source:    original.source,
		ref:       original.ref,
		rawArg:    original.rawArg,
		argument:  original.argument,
		parent:    c,
		root:      c.root,
		global:    c.global,
		childID:   -1,
		supported: original.supported,
		implicit:  original.implicit,
		history:   original.history,
		original:  original,
		replica:   true,
		phase:     c.phase,
	}
}

// IsReplica reports whether c was created by ReplicaAsChildOf.
func (c *Context) IsReplica() bool {
	return c.replica
}
