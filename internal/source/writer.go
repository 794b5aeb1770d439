package source

import (
	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/ir"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// keywords that only exist in YANG 1.1.
var version11Only = map[string]bool{
	"action":   true,
	"anydata":  true,
	"modifier": true,
}

// writer walks one source for one phase.
type writer struct {
	src     *IRSource
	w       *stmt.TreeWriter
	defs    Definitions
	ext     Extensions
	version nodeid.Version
	full    bool
}

func (wr *writer) emit(childID int, def *stmt.Definition, st *ir.Statement) error {
	if err := wr.w.StartStatement(childID, def, st); err != nil {
		return err
	}
	for i, sub := range st.Substatements() {
		subDef, err := wr.resolve(sub)
		if err != nil {
			return err
		}
		if subDef == nil {
			continue
		}
		if err := wr.emit(i, subDef, sub); err != nil {
			return err
		}
	}
	return wr.w.EndStatement()
}

// resolve returns the definition of st for the phase being written, or nil
// when the statement belongs to a later phase.
func (wr *writer) resolve(st *ir.Statement) (*stmt.Definition, error) {
	kw := st.Keyword()
	if kw.IsQualified() {
		if !wr.full || wr.ext == nil {
			return nil, nil
		}
		def, err := wr.ext.Extension(wr.w.Root(), kw)
		if err != nil {
			return nil, diag.Errorf(wr.src.ref(st), "%w", err)
		}
		return def, nil
	}

	def, ok := wr.defs.Lookup(wr.w.Phase(), kw.Identifier())
	if ok {
		if wr.full && wr.version == nodeid.Version1 && version11Only[kw.Identifier()] {
			return nil, diag.Errorf(wr.src.ref(st), "statement '%s' requires yang-version 1.1", kw)
		}
		return def, nil
	}
	if wr.full {
		return nil, diag.Errorf(wr.src.ref(st), "unknown statement '%s'", kw)
	}
	return nil, nil
}
