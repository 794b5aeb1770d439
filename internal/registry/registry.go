package registry

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// Module is the interface that every bundle of statement supports must
// implement to be registered.
type Module interface {
	Register(r *Registry)
}

// EmissionPhases are the phases in which sources emit statements, in order.
var EmissionPhases = []scheduler.Phase{
	scheduler.PreLinkage,
	scheduler.Linkage,
	scheduler.StatementDefinition,
	scheduler.FullDeclaration,
}

// ExtensionKey identifies an extension by its defining module and name.
type ExtensionKey struct {
	Module string
	Name   string
}

// RegisteredExtension is the support of a recognized extension.
type RegisteredExtension struct {
	// SchemaTree marks extensions whose instances hold schema nodes.
	SchemaTree bool
	Support    stmt.Support
}

// Registry holds all the registered statement definitions for a single
// application instance.
type Registry struct {
	Definitions map[string]*stmt.Definition
	Since       map[string]scheduler.Phase
	Kinds       map[stmt.Kind]*stmt.Definition
	Extensions  map[ExtensionKey]*RegisteredExtension
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		Definitions: make(map[string]*stmt.Definition),
		Since:       make(map[string]scheduler.Phase),
		Kinds:       make(map[stmt.Kind]*stmt.Definition),
		Extensions:  make(map[ExtensionKey]*RegisteredExtension),
	}
}

// RegisterStatement adds a core statement that sources emit from phase
// since onward. Registering a keyword twice panics.
func (r *Registry) RegisterStatement(def *stmt.Definition, since scheduler.Phase) {
	if _, exists := r.Definitions[def.Keyword]; exists {
		panic(fmt.Sprintf("statement '%s' is already registered", def.Keyword))
	}
	r.Definitions[def.Keyword] = def
	r.Since[def.Keyword] = since
	r.Kinds[def.Kind] = def
	slog.Debug("Registered statement support.", "keyword", def.Keyword, "since", since.String())
}

// RegisterExtension adds the support of a recognized extension. Registering
// the same extension twice panics.
func (r *Registry) RegisterExtension(module, name string, ext *RegisteredExtension) {
	key := ExtensionKey{Module: module, Name: name}
	if _, exists := r.Extensions[key]; exists {
		panic(fmt.Sprintf("extension '%s:%s' is already registered", module, name))
	}
	r.Extensions[key] = ext
	slog.Debug("Registered extension support.", "module", module, "extension", name)
}

// Lookup returns the definition of keyword if it is part of the vocabulary
// of phase.
func (r *Registry) Lookup(phase scheduler.Phase, keyword string) (*stmt.Definition, bool) {
	def, ok := r.Definitions[keyword]
	if !ok || r.Since[keyword] > phase {
		return nil, false
	}
	return def, true
}

// Known reports whether keyword is registered at all, whatever the phase.
func (r *Registry) Known(keyword string) bool {
	_, ok := r.Definitions[keyword]
	return ok
}

// Definition returns the definition registered for kind, or nil.
func (r *Registry) Definition(kind stmt.Kind) *stmt.Definition {
	return r.Kinds[kind]
}

// Extension returns the support of a recognized extension.
func (r *Registry) Extension(module, name string) (*RegisteredExtension, bool) {
	ext, ok := r.Extensions[ExtensionKey{Module: module, Name: name}]
	return ext, ok
}
