package stmt

import (
	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/ir"
	"github.com/specialistvlad/yangkit/internal/scheduler"
)

type frame struct {
	ctx     *Context
	wrapper *Context // implicit case created for a choice shorthand
}

// TreeWriter receives the statements a source emits in one phase and
// creates or resumes the corresponding contexts. A statement seen in an
// earlier phase is found again by its index among its IR siblings.
type TreeWriter struct {
	global     Global
	phase      scheduler.Phase
	sourceName string
	root       *Context
	stack      []frame
}

// NewTreeWriter prepares a writer for phase. root is nil on the first phase
// of a source and the previously built root afterwards.
func NewTreeWriter(global Global, phase scheduler.Phase, sourceName string, root *Context) *TreeWriter {
	return &TreeWriter{global: global, phase: phase, sourceName: sourceName, root: root}
}

// Root returns the root context, once the top-level statement was started.
func (w *TreeWriter) Root() *Context {
	return w.root
}

// Phase returns the phase being written.
func (w *TreeWriter) Phase() scheduler.Phase {
	return w.phase
}

// StartStatement opens the statement at childID under the current one.
func (w *TreeWriter) StartStatement(childID int, def *Definition, st *ir.Statement) error {
	if len(w.stack) == 0 {
		return w.startRoot(def, st)
	}
	parent := w.stack[len(w.stack)-1].ctx

	if existing, ok := parent.byChildID[childID]; ok {
		if existing.def != def {
			panic(diag.Internalf("statement %s [at %s] resumed with definition %s instead of %s",
				existing, existing.ref, def, existing.def))
		}
		existing.phase = w.phase
		w.stack = append(w.stack, frame{ctx: existing})
		return nil
	}

	owner := parent
	var wrapper *Context
	if parent.def.Kind == KindChoice && def.Kind.IsShorthandCase() {
		caseDef := w.global.Definition(KindCase)
		var err error
		if wrapper, err = parent.NewImplicit(caseDef, st.RawArgument()); err != nil {
			return err
		}
		wrapper.childID = childID
		wrapper.ref = parent.refAt(st.Position())
		wrapper.phase = w.phase
		parent.addDeclared(wrapper)
		owner = wrapper
	}

	c := newChild(owner, def, st, childID)
	c.phase = w.phase
	arg, err := def.Support.ParseArgument(c, c.rawArg)
	if err != nil {
		return diag.Errorf(c.ref, "invalid argument of '%s': %w", c.Keyword(), err)
	}
	c.argument = arg
	owner.addDeclared(c)
	if parent.byChildID == nil {
		parent.byChildID = make(map[int]*Context)
	}
	parent.byChildID[childID] = c
	w.stack = append(w.stack, frame{ctx: c, wrapper: wrapper})
	return nil
}

func (w *TreeWriter) startRoot(def *Definition, st *ir.Statement) error {
	if w.root != nil {
		if w.root.def != def {
			panic(diag.Internalf("root %s resumed with definition %s", w.root, def))
		}
		w.root.phase = w.phase
		w.stack = append(w.stack, frame{ctx: w.root})
		return nil
	}
	if def.Kind != KindModule && def.Kind != KindSubmodule {
		pos := st.Position()
		ref := diag.SourceRef{Source: w.sourceName, Line: pos.Line(), Column: pos.Column()}
		return diag.Errorf(ref, "top-level statement must be 'module' or 'submodule', found '%s'", st.Keyword())
	}
	root := NewRoot(w.global, def, st, w.sourceName)
	root.phase = w.phase
	arg, err := def.Support.ParseArgument(root, root.rawArg)
	if err != nil {
		return diag.Errorf(root.ref, "invalid argument of '%s': %w", root.Keyword(), err)
	}
	root.argument = arg
	w.root = root
	w.stack = append(w.stack, frame{ctx: root})
	return nil
}

// EndStatement closes the current statement and runs its support's
// declaration hook for the phase.
func (w *TreeWriter) EndStatement() error {
	if len(w.stack) == 0 {
		panic(diag.Internalf("EndStatement without matching StartStatement"))
	}
	f := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	if err := f.ctx.def.Support.OnDeclared(f.ctx, w.phase); err != nil {
		return err
	}
	if f.wrapper != nil {
		return f.wrapper.def.Support.OnDeclared(f.wrapper, w.phase)
	}
	return nil
}
