package stmt

import (
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/scheduler"
)

// Support implements the semantics of one statement definition.
type Support interface {
	// ParseArgument converts the raw argument text. It runs once, when the
	// context is created.
	ParseArgument(c *Context, raw string) (any, error)
	// OnDeclared runs after c and its substatements known in phase were
	// written during phase. Supports register inference actions here.
	OnDeclared(c *Context, phase scheduler.Phase) error
}

// BaseSupport keeps the raw argument and does nothing on declaration.
type BaseSupport struct{}

func (BaseSupport) ParseArgument(_ *Context, raw string) (any, error) { return raw, nil }
func (BaseSupport) OnDeclared(*Context, scheduler.Phase) error        { return nil }

// Definition binds a statement keyword to its kind and support.
type Definition struct {
	Kind Kind
	// Keyword is the unqualified keyword; for extension instances it is the
	// extension's name.
	Keyword string
	// Extension identifies the extension an instance belongs to.
	Extension *nodeid.QName
	// SchemaTree marks extension instances whose body holds schema nodes.
	SchemaTree bool
	Support    Support
}

// IsUnknown reports whether this is an unrecognized extension instance.
func (d *Definition) IsUnknown() bool {
	return d.Kind == KindUnknown
}

// IsExtensionInstance reports whether this definition describes any
// extension instance, recognized or not.
func (d *Definition) IsExtensionInstance() bool {
	return d.Kind == KindUnknown || d.Kind == KindExtensionInstance
}

func (d *Definition) String() string {
	if d.Extension != nil {
		return d.Extension.Module.Name + ":" + d.Extension.Name
	}
	return d.Keyword
}
