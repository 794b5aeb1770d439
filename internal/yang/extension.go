package yang

import (
	"fmt"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/ir"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

type extensionSupport struct{}

func (extensionSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return parseIdentifier(c, raw)
}

func (extensionSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.StatementDefinition {
		return nil
	}
	if err := Extensions.Put(c, c.RawArgument(), c); err != nil {
		return diag.Errorf(c.Ref(), "extension '%s' is defined more than once", c.RawArgument())
	}
	return nil
}

// unknownSupport handles instances of extensions no support was registered
// for. Their argument stays raw and they take no part in the schema tree.
type unknownSupport struct {
	stmt.BaseSupport
}

// SchemaTreeSupport handles recognized extensions whose instance names a
// schema tree of its own, such as ietf-restconf:yang-data. The argument is
// bound to the module of the instance like a data node name.
type SchemaTreeSupport struct{}

func (SchemaTreeSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return schemaNodeName(c, raw)
}

func (SchemaTreeSupport) OnDeclared(*stmt.Context, scheduler.Phase) error { return nil }

// ExtensionResolver turns qualified keywords into extension instance
// definitions. One resolver serves one resolution run.
type ExtensionResolver struct {
	registry *registry.Registry
	defs     map[nodeid.QName]*stmt.Definition
}

// NewExtensionResolver creates a resolver that recognizes the extensions
// registered in r.
func NewExtensionResolver(r *registry.Registry) *ExtensionResolver {
	return &ExtensionResolver{registry: r, defs: make(map[nodeid.QName]*stmt.Definition)}
}

// Extension resolves kw as written in the source rooted at root.
func (x *ExtensionResolver) Extension(root *stmt.Context, kw *ir.Keyword) (*stmt.Definition, error) {
	module, err := resolvePrefix(root, kw.Prefix())
	if err != nil {
		return nil, fmt.Errorf("extension '%s': %w", kw, err)
	}
	if _, ok := lookupInModule(Extensions, module, kw.Identifier()); !ok {
		return nil, fmt.Errorf("extension '%s' is not defined in module '%s'", kw.Identifier(), module.RawArgument())
	}
	id, _ := moduleIDs.Get(module, struct{}{})
	q := nodeid.NewQName(id, kw.Identifier())
	if def, ok := x.defs[q]; ok {
		return def, nil
	}

	def := &stmt.Definition{Kind: stmt.KindUnknown, Keyword: q.Name, Extension: &q, Support: unknownSupport{}}
	if ext, ok := x.registry.Extension(id.Name, q.Name); ok {
		def.Kind = stmt.KindExtensionInstance
		def.SchemaTree = ext.SchemaTree
		def.Support = ext.Support
	}
	x.defs[q] = def
	return def, nil
}
