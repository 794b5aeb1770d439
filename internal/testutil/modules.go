package testutil

import "github.com/specialistvlad/yangkit/internal/registry"

// ExtensionModule is a test helper that registers a single recognized
// extension support.
type ExtensionModule struct {
	Module    string
	Name      string
	Extension *registry.RegisteredExtension
}

// Register implements the registry.Module interface.
func (m *ExtensionModule) Register(r *registry.Registry) {
	if m.Extension != nil {
		r.RegisterExtension(m.Module, m.Name, m.Extension)
	}
}
