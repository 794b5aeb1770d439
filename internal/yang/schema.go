package yang

import (
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// schemaNodeSupport handles statements whose argument names a schema node.
type schemaNodeSupport struct{}

func (schemaNodeSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return schemaNodeName(c, raw)
}

func (schemaNodeSupport) OnDeclared(*stmt.Context, scheduler.Phase) error { return nil }

// ioSupport handles input and output, which are named after their keyword.
type ioSupport struct{}

func (ioSupport) ParseArgument(c *stmt.Context, _ string) (any, error) {
	return schemaNodeName(c, c.Definition().Keyword)
}

func (ioSupport) OnDeclared(*stmt.Context, scheduler.Phase) error { return nil }

// operationSupport handles rpc and action. Operations without input or
// output get implicit ones so augments can target them.
type operationSupport struct{}

func (operationSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return schemaNodeName(c, raw)
}

func (operationSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.FullDeclaration {
		return nil
	}
	for seq, kind := range []stmt.Kind{stmt.KindInput, stmt.KindOutput} {
		if hasDeclared(c, kind) {
			continue
		}
		io, err := c.NewImplicit(c.Global().Definition(kind), "")
		if err != nil {
			return err
		}
		c.AddEffective(io, stmt.Origin{Ref: c.Ref(), Seq: seq})
	}
	return nil
}

func hasDeclared(c *stmt.Context, kind stmt.Kind) bool {
	for _, s := range c.Declared() {
		if s.Kind() == kind {
			return true
		}
	}
	return false
}

// schemaChild returns the schema child of node named q, unsupported ones
// included. At a module root the included submodules are searched too.
func schemaChild(node *stmt.Context, q nodeid.QName) *stmt.Context {
	if found := node.SchemaChild(q, true); found != nil {
		return found
	}
	if node.IsRoot() {
		for _, part := range moduleParts(node)[1:] {
			if found := part.SchemaChild(q, true); found != nil {
				return found
			}
		}
	}
	return nil
}

// unknownChild returns the unrecognized extension instance under node whose
// argument is name.
func unknownChild(node *stmt.Context, name string) *stmt.Context {
	for _, s := range node.Substatements() {
		if s.Definition().IsUnknown() && s.RawArgument() == name {
			return s
		}
	}
	return nil
}

func isPresenceContainer(c *stmt.Context) bool {
	return c.Kind() == stmt.KindContainer && c.FirstSubstatement(stmt.KindPresence) != nil
}

func isNonPresenceContainer(c *stmt.Context) bool {
	return c.Kind() == stmt.KindContainer && c.FirstSubstatement(stmt.KindPresence) == nil
}

func isMandatory(c *stmt.Context) bool {
	switch c.Kind() {
	case stmt.KindLeaf, stmt.KindChoice, stmt.KindAnydata, stmt.KindAnyxml:
		mandatory, _ := boolArgument(c, stmt.KindMandatory)
		return mandatory
	case stmt.KindList, stmt.KindLeafList:
		minElements, _ := intArgument(c, stmt.KindMinElements)
		return minElements > 0
	}
	return false
}

// breaksMandatoryChain reports whether data below c can be absent even when
// c's ancestors exist.
func breaksMandatoryChain(c *stmt.Context) bool {
	switch c.Kind() {
	case stmt.KindContainer:
		return isPresenceContainer(c)
	case stmt.KindChoice, stmt.KindList:
		return !isMandatory(c)
	}
	return false
}
