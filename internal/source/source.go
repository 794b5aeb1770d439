package source

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/ir"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/parse"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// Definitions is the statement vocabulary of a phase.
type Definitions interface {
	// Lookup returns the definition of an unqualified keyword if the phase
	// knows it.
	Lookup(phase scheduler.Phase, keyword string) (*stmt.Definition, bool)
}

// Extensions resolves qualified keywords to extension definitions, as seen
// from the root of the source being written.
type Extensions interface {
	Extension(root *stmt.Context, kw *ir.Keyword) (*stmt.Definition, error)
}

// Identifier names a source: its module or submodule name and its most
// recent revision, if any.
type Identifier struct {
	Name     string
	Revision string
}

func (id Identifier) String() string {
	if id.Revision == "" {
		return id.Name
	}
	return id.Name + "@" + id.Revision
}

// Source is one document the resolver reads.
type Source interface {
	// Name identifies the document in diagnostics.
	Name() string
	Identifier() Identifier
	// Dependencies names the modules and submodules the document imports or
	// includes.
	Dependencies() []string
	WritePreLinkage(w *stmt.TreeWriter, defs Definitions) error
	WriteLinkage(w *stmt.TreeWriter, defs Definitions) error
	WriteLinkageAndStatementDefinitions(w *stmt.TreeWriter, defs Definitions, ext Extensions, v nodeid.Version) error
	WriteFull(w *stmt.TreeWriter, defs Definitions, ext Extensions, v nodeid.Version) error
}

// IRSource is a Source backed by an IR statement tree.
type IRSource struct {
	name string
	root *ir.Statement
	id   Identifier
}

// New wraps an already parsed document. name identifies it in diagnostics.
func New(name string, root *ir.Statement) *IRSource {
	id := Identifier{Name: root.RawArgument()}
	for _, sub := range root.Substatements() {
		kw := sub.Keyword()
		if !kw.IsQualified() && kw.Identifier() == "revision" && sub.RawArgument() > id.Revision {
			id.Revision = sub.RawArgument()
		}
	}
	return &IRSource{name: name, root: root, id: id}
}

// Open parses the YANG file at path, found below dir. The source is named
// by its slash-separated path relative to dir, or by its file name when dir
// is the file itself.
func Open(dir, path string) (*IRSource, error) {
	name := filepath.Base(path)
	if rel, err := filepath.Rel(dir, path); err == nil && rel != "." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != ".." {
		name = filepath.ToSlash(rel)
	}
	root, err := parse.File(name, path)
	if err != nil {
		return nil, err
	}
	return New(name, root), nil
}

// FromText parses YANG text held in memory.
func FromText(name, text string) (*IRSource, error) {
	root, err := parse.Parse(name, []byte(text))
	if err != nil {
		return nil, err
	}
	return New(name, root), nil
}

func (s *IRSource) Identifier() Identifier   { return s.id }
func (s *IRSource) Name() string             { return s.name }
func (s *IRSource) Statement() *ir.Statement { return s.root }

// Dependencies returns the sorted names of imported and included documents.
func (s *IRSource) Dependencies() []string {
	seen := make(map[string]bool)
	for _, sub := range s.root.Substatements() {
		kw := sub.Keyword()
		if kw.IsQualified() || (kw.Identifier() != "import" && kw.Identifier() != "include") {
			continue
		}
		if name := sub.RawArgument(); name != "" {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *IRSource) WritePreLinkage(w *stmt.TreeWriter, defs Definitions) error {
	return s.write(w, defs, nil, nodeid.Version1)
}

func (s *IRSource) WriteLinkage(w *stmt.TreeWriter, defs Definitions) error {
	return s.write(w, defs, nil, nodeid.Version1)
}

func (s *IRSource) WriteLinkageAndStatementDefinitions(w *stmt.TreeWriter, defs Definitions, ext Extensions, v nodeid.Version) error {
	return s.write(w, defs, ext, v)
}

func (s *IRSource) WriteFull(w *stmt.TreeWriter, defs Definitions, ext Extensions, v nodeid.Version) error {
	return s.write(w, defs, ext, v)
}

func (s *IRSource) write(w *stmt.TreeWriter, defs Definitions, ext Extensions, v nodeid.Version) error {
	kw := s.root.Keyword()
	def, ok := defs.Lookup(scheduler.FullDeclaration, kw.Identifier())
	if kw.IsQualified() || !ok {
		return diag.Errorf(s.ref(s.root), "unknown top-level statement '%s'", kw)
	}
	wr := writer{src: s, w: w, defs: defs, ext: ext, version: v, full: w.Phase() == scheduler.FullDeclaration}
	return wr.emit(0, def, s.root)
}

func (s *IRSource) ref(st *ir.Statement) diag.SourceRef {
	pos := st.Position()
	return diag.SourceRef{Source: s.name, Line: pos.Line(), Column: pos.Column()}
}
