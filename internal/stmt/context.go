package stmt

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/ir"
	"github.com/specialistvlad/yangkit/internal/namespace"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/scheduler"
)

// Global is the run-wide state every context can reach. The resolution
// session implements it.
type Global interface {
	namespace.Node
	Scheduler() *scheduler.Scheduler
	Logger() *slog.Logger
	// Definition returns the core definition of kind, used when the resolver
	// synthesizes implicit statements.
	Definition(kind Kind) *Definition
}

// SupportState is the tri-state supported flag.
type SupportState int

const (
	SupportPending SupportState = iota
	Supported
	Unsupported
)

// Origin orders effective substatements independently of the order in
// which inference actions happened to add them.
type Origin struct {
	Ref diag.SourceRef
	Seq int
}

// Less orders origins by source reference, then sequence.
func (o Origin) Less(other Origin) bool {
	if o.Ref != other.Ref {
		return o.Ref.Less(other.Ref)
	}
	return o.Seq < other.Seq
}

// rootState is only populated on root contexts.
type rootState struct {
	sourceName   string
	version      nodeid.Version
	sourceParent *Context
}

// Context is one node of the statement context graph.
type Context struct {
	def      *Definition
	source   *ir.Statement
	ref      diag.SourceRef
	rawArg   string
	argument any

	parent *Context
	root   *Context
	global Global
	rs     *rootState

	childID   int
	byChildID map[int]*Context
	declared  []*Context
	effective []*Context
	origin    Origin

	supported SupportState
	implicit  bool
	history   CopyHistory
	original  *Context
	replica   bool

	phase          scheduler.Phase
	pendingOwn     int
	pendingSubtree int

	store namespace.Storage
}

// NewRoot creates the root context of a source document.
func NewRoot(global Global, def *Definition, st *ir.Statement, sourceName string) *Context {
	c := &Context{
		def:     def,
		source:  st,
		global:  global,
		rawArg:  st.RawArgument(),
		childID: -1,
		rs:      &rootState{sourceName: sourceName},
	}
	c.root = c
	c.ref = c.refAt(st.Position())
	return c
}

func newChild(parent *Context, def *Definition, st *ir.Statement, childID int) *Context {
	c := &Context{
		def:     def,
		source:  st,
		parent:  parent,
		root:    parent.root,
		global:  parent.global,
		childID: childID,
		phase:   parent.phase,
	}
	if st != nil {
		c.rawArg = st.RawArgument()
		c.ref = c.refAt(st.Position())
	}
	if !parent.IsSupported() {
		c.supported = Unsupported
	}
	return c
}

func (c *Context) refAt(pos ir.Position) diag.SourceRef {
	return diag.SourceRef{Source: c.root.rs.sourceName, Line: pos.Line(), Column: pos.Column()}
}

func (c *Context) Definition() *Definition  { return c.def }
func (c *Context) Kind() Kind               { return c.def.Kind }
func (c *Context) Statement() *ir.Statement { return c.source }
func (c *Context) Ref() diag.SourceRef      { return c.ref }
func (c *Context) RawArgument() string      { return c.rawArg }
func (c *Context) Argument() any            { return c.argument }
func (c *Context) Parent() *Context         { return c.parent }
func (c *Context) Root() *Context           { return c.root }
func (c *Context) Global() Global           { return c.global }
func (c *Context) IsImplicit() bool         { return c.implicit }
func (c *Context) History() CopyHistory     { return c.history }
func (c *Context) Original() *Context       { return c.original }
func (c *Context) Origin() Origin           { return c.origin }
func (c *Context) Phase() scheduler.Phase   { return c.phase }
func (c *Context) Logger() *slog.Logger     { return c.global.Logger() }

// SetArgument replaces the parsed argument.
func (c *Context) SetArgument(v any) {
	c.argument = v
}

// QName returns the argument as a qualified name, if it is one.
func (c *Context) QName() (nodeid.QName, bool) {
	q, ok := c.argument.(nodeid.QName)
	return q, ok
}

// Keyword returns the keyword as written, or the definition's keyword for
// implicit statements.
func (c *Context) Keyword() string {
	if c.source != nil {
		return c.source.Keyword().String()
	}
	return c.def.String()
}

func (c *Context) String() string {
	if c.rawArg == "" {
		return c.Keyword()
	}
	return fmt.Sprintf("%s %s", c.Keyword(), c.rawArg)
}

// IsRoot reports whether c is the root of a source.
func (c *Context) IsRoot() bool {
	return c.parent == nil
}

// SourceName is the name of the source c was read from.
func (c *Context) SourceName() string {
	return c.root.rs.sourceName
}

// Version returns the YANG version declared by c's source.
func (c *Context) Version() nodeid.Version {
	return c.root.rs.version
}

// SetVersion records the YANG version of a root.
func (c *Context) SetVersion(v nodeid.Version) {
	c.root.rs.version = v
}

// SetSourceParent links a submodule root to the root of its module.
func (c *Context) SetSourceParent(parent *Context) {
	c.root.rs.sourceParent = parent
}

// SourceParent returns the module root a submodule belongs to, if linked.
func (c *Context) SourceParent() *Context {
	return c.root.rs.sourceParent
}

// Declared returns the declared substatements in document order.
func (c *Context) Declared() []*Context {
	if c.replica {
		return c.original.Declared()
	}
	return c.declared
}

// Effective returns the substatements added during inference, in origin order.
func (c *Context) Effective() []*Context {
	if c.replica {
		return c.original.Effective()
	}
	return c.effective
}

// Substatements returns declared followed by effective substatements.
func (c *Context) Substatements() []*Context {
	declared, effective := c.Declared(), c.Effective()
	out := make([]*Context, 0, len(declared)+len(effective))
	out = append(out, declared...)
	return append(out, effective...)
}

// FirstSubstatement returns the first supported substatement of kind.
func (c *Context) FirstSubstatement(kind Kind) *Context {
	for _, s := range c.Substatements() {
		if s.def.Kind == kind && s.IsSupported() {
			return s
		}
	}
	return nil
}

// SubstatementArgument returns the parsed argument of the first supported
// substatement of kind.
func (c *Context) SubstatementArgument(kind Kind) (any, bool) {
	if s := c.FirstSubstatement(kind); s != nil {
		return s.argument, true
	}
	return nil, false
}

// AddEffective attaches child as an effective substatement of c.
func (c *Context) AddEffective(child *Context, origin Origin) {
	if child.parent != c {
		panic(diag.Internalf("%s added as effective child of %s but is parented to %s", child, c, child.parent))
	}
	child.origin = origin
	i := sort.Search(len(c.effective), func(i int) bool { return origin.Less(c.effective[i].origin) })
	c.effective = append(c.effective, nil)
	copy(c.effective[i+1:], c.effective[i:])
	c.effective[i] = child
	if !c.IsSupported() {
		child.SetUnsupported()
	}
}

// RemoveEffective detaches child from c's effective substatements.
func (c *Context) RemoveEffective(child *Context) {
	for i, e := range c.effective {
		if e == child {
			c.effective = append(c.effective[:i], c.effective[i+1:]...)
			return
		}
	}
}

func (c *Context) addDeclared(child *Context) {
	i := sort.Search(len(c.declared), func(i int) bool { return c.declared[i].childID > child.childID })
	c.declared = append(c.declared, nil)
	copy(c.declared[i+1:], c.declared[i:])
	c.declared[i] = child
}

// NewImplicit creates an implicit substatement of c with the given
// definition and raw argument. The caller attaches it.
func (c *Context) NewImplicit(def *Definition, rawArg string) (*Context, error) {
	child := newChild(c, def, nil, -1)
	child.implicit = true
	child.ref = c.ref
	child.rawArg = rawArg
	arg, err := def.Support.ParseArgument(child, rawArg)
	if err != nil {
		return nil, diag.Errorf(c.ref, "implicit %s: %w", def, err)
	}
	child.argument = arg
	return child, nil
}

// SupportState returns the tri-state supported flag.
func (c *Context) SupportState() SupportState {
	return c.supported
}

// IsSupported reports whether c takes part in the effective model. Pending
// counts as supported.
func (c *Context) IsSupported() bool {
	return c.supported != Unsupported
}

// SetUnsupported excludes c and its whole subtree from the effective model.
func (c *Context) SetUnsupported() {
	c.supported = Unsupported
	for _, s := range c.declared {
		s.SetUnsupported()
	}
	for _, s := range c.effective {
		s.SetUnsupported()
	}
}

// ResolveSupport turns every pending flag in c's subtree into Supported.
func (c *Context) ResolveSupport() {
	if c.supported == SupportPending {
		c.supported = Supported
	}
	for _, s := range c.declared {
		s.ResolveSupport()
	}
	for _, s := range c.effective {
		s.ResolveSupport()
	}
}

// IsSchemaNode reports whether c is addressable in the schema tree.
func (c *Context) IsSchemaNode() bool {
	return c.def.Kind.IsSchemaTree() || c.def.SchemaTree
}

// InExtensionBody reports whether an ancestor of c is an extension instance.
func (c *Context) InExtensionBody() bool {
	for p := c.parent; p != nil; p = p.parent {
		if p.def.IsExtensionInstance() {
			return true
		}
	}
	return false
}

// SchemaChild returns the schema node child of c named q, looking through
// declared and effective substatements. Unsupported children are skipped
// unless includeUnsupported is set.
func (c *Context) SchemaChild(q nodeid.QName, includeUnsupported bool) *Context {
	for _, s := range c.Substatements() {
		if !s.IsSchemaNode() || (!includeUnsupported && !s.IsSupported()) {
			continue
		}
		if name, ok := s.QName(); ok && name == q {
			return s
		}
	}
	return nil
}

// namespace.Node

func (c *Context) Storage() *namespace.Storage { return &c.store }

func (c *Context) ParentNode() namespace.Node {
	if c.parent == nil {
		return nil
	}
	return c.parent
}

func (c *Context) RootNode() namespace.Node   { return c.root }
func (c *Context) GlobalNode() namespace.Node { return c.global }

func (c *Context) SourceParentNode() namespace.Node {
	if p := c.root.rs.sourceParent; p != nil {
		return p
	}
	return nil
}

func (c *Context) OriginalNode() namespace.Node {
	if c.original == nil {
		return nil
	}
	return c.original
}
