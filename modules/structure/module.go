// Package structure recognizes the structure extension of the
// ietf-yang-structure-ext module (RFC 8791).
package structure

import (
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/yang"
)

// ModuleName is the YANG module defining the extension.
const ModuleName = "ietf-yang-structure-ext"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register makes structure instances schema trees of their own.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtension(ModuleName, "structure", &registry.RegisteredExtension{
		SchemaTree: true,
		Support:    yang.SchemaTreeSupport{},
	})
}
