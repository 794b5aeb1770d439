// Package restconf recognizes the extensions of the ietf-restconf module
// (RFC 8040).
package restconf

import (
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/yang"
)

// ModuleName is the YANG module defining the extensions.
const ModuleName = "ietf-restconf"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register makes yang-data instances schema trees of their own. Their body
// is resolved like data nodes but augments cannot reach into it.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtension(ModuleName, "yang-data", &registry.RegisteredExtension{
		SchemaTree: true,
		Support:    yang.SchemaTreeSupport{},
	})
}
