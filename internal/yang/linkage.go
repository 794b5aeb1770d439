package yang

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/namespace"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

func parseModuleName(_ *stmt.Context, raw string) (any, error) {
	return nodeid.ParseIdentifier(raw, nodeid.Version11)
}

// declareVersion records the yang-version of a root.
func declareVersion(root *stmt.Context) {
	if v, ok := root.SubstatementArgument(stmt.KindYangVersion); ok {
		root.SetVersion(v.(nodeid.Version))
	}
}

// latestRevision returns the most recent revision date declared by root.
func latestRevision(root *stmt.Context) string {
	latest := ""
	for _, s := range root.Declared() {
		if s.Kind() == stmt.KindRevision {
			if rev := s.RawArgument(); rev > latest {
				latest = rev
			}
		}
	}
	return latest
}

func requireArgument(c *stmt.Context, kind stmt.Kind) (string, error) {
	v, ok := c.SubstatementArgument(kind)
	if !ok {
		return "", diag.Errorf(c.Ref(), "%s '%s' has no %s statement", c.Keyword(), c.RawArgument(), kind)
	}
	s, _ := v.(string)
	return s, nil
}

type moduleSupport struct{}

func (moduleSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return parseModuleName(c, raw)
}

func (moduleSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.PreLinkage {
		return nil
	}
	declareVersion(c)
	ns, err := requireArgument(c, stmt.KindNamespace)
	if err != nil {
		return err
	}
	prefix, err := requireArgument(c, stmt.KindPrefix)
	if err != nil {
		return err
	}

	name := c.RawArgument()
	id := nodeid.ModuleID{Name: name, Namespace: ns, Revision: latestRevision(c)}
	if err := moduleIDs.Put(c, struct{}{}, id); err != nil {
		return diag.Errorf(c.Ref(), "module '%s': %w", name, err)
	}
	if err := Modules.Put(c, name, c); err != nil {
		return diag.Errorf(c.Ref(), "module '%s' is defined more than once", name)
	}
	if err := Prefixes.Put(c, prefix, c); err != nil {
		return diag.Errorf(c.Ref(), "module '%s': %w", name, err)
	}
	c.Logger().Debug("Module declared.", "module", id.String(), "source", c.SourceName())
	return nil
}

type submoduleSupport struct{}

func (submoduleSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return parseModuleName(c, raw)
}

func (submoduleSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	name := c.RawArgument()
	switch phase {
	case scheduler.PreLinkage:
		declareVersion(c)
		if c.FirstSubstatement(stmt.KindBelongsTo) == nil {
			return diag.Errorf(c.Ref(), "submodule '%s' has no belongs-to statement", name)
		}
		if err := Submodules.Put(c, name, c); err != nil {
			return diag.Errorf(c.Ref(), "submodule '%s' is defined more than once", name)
		}
	case scheduler.Linkage:
		belongsTo := c.FirstSubstatement(stmt.KindBelongsTo)
		parentName := belongsTo.RawArgument()
		prefix, err := requireArgument(belongsTo, stmt.KindPrefix)
		if err != nil {
			return err
		}
		c.Global().Scheduler().Register(scheduler.Linkage, scheduler.Funcs{
			OnApply: func() error {
				parent, _ := Modules.Get(c, parentName)
				c.SetSourceParent(parent)
				if err := Prefixes.Put(c, prefix, parent); err != nil {
					return diag.Errorf(belongsTo.Ref(), "belongs-to '%s': %w", parentName, err)
				}
				return nil
			},
			OnFailed: func([]scheduler.Prerequisite) error {
				return diag.Errorf(belongsTo.Ref(), "Module '%s' that submodule '%s' belongs to was not found", parentName, name)
			},
		}, Modules.Requires(c, parentName))
	}
	return nil
}

type importSupport struct{}

func (importSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return parseModuleName(c, raw)
}

func (importSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.Linkage {
		return nil
	}
	name := c.RawArgument()
	prefix, err := requireArgument(c, stmt.KindPrefix)
	if err != nil {
		return err
	}
	revision, pinned := c.SubstatementArgument(stmt.KindRevisionDate)

	c.Global().Scheduler().Register(scheduler.Linkage, scheduler.Funcs{
		OnApply: func() error {
			imported, _ := Modules.Get(c, name)
			if pinned {
				if id, _ := moduleIDs.Get(imported, struct{}{}); id.Revision != revision {
					return diag.Errorf(c.Ref(), "Imported module '%s' revision '%s' was not found", name, revision)
				}
			}
			if err := Prefixes.Put(c, prefix, imported); err != nil {
				if errors.Is(err, namespace.ErrConflict) {
					return diag.Errorf(c.Ref(), "prefix '%s' is already bound to another module", prefix)
				}
				return err
			}
			return nil
		},
		OnFailed: func([]scheduler.Prerequisite) error {
			return diag.Errorf(c.Ref(), "Imported module '%s' was not found", name)
		},
	}, Modules.Requires(c, name))
	return nil
}

type includeSupport struct{}

func (includeSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return parseModuleName(c, raw)
}

func (includeSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.Linkage {
		return nil
	}
	name := c.RawArgument()
	c.Global().Scheduler().Register(scheduler.Linkage, scheduler.Funcs{
		OnApply: func() error {
			sub, _ := Submodules.Get(c, name)
			if err := IncludedSubmodules.Put(c, name, sub); err != nil {
				return diag.Errorf(c.Ref(), "include '%s': %w", name, err)
			}
			return nil
		},
		OnFailed: func([]scheduler.Prerequisite) error {
			return diag.Errorf(c.Ref(), "Included submodule '%s' was not found", name)
		},
	}, Submodules.Requires(c, name))
	return nil
}

// resolvePrefix returns the root of the module prefix is bound to, as seen
// from c.
func resolvePrefix(c *stmt.Context, prefix string) (*stmt.Context, error) {
	root, ok := Prefixes.Get(c, prefix)
	if !ok {
		return nil, fmt.Errorf("prefix '%s' is not bound to any module", prefix)
	}
	return root, nil
}

// resolveName binds an optionally prefixed identifier to its module root.
// An empty prefix designates the module c belongs to.
func resolveName(c *stmt.Context, prefix string) (*stmt.Context, nodeid.ModuleID, error) {
	root := moduleRoot(c)
	if prefix != "" {
		var err error
		if root, err = resolvePrefix(c, prefix); err != nil {
			return nil, nodeid.ModuleID{}, err
		}
	}
	id, ok := moduleIDs.Get(root, struct{}{})
	if !ok {
		return nil, nodeid.ModuleID{}, fmt.Errorf("module '%s' has no identity", root.RawArgument())
	}
	return root, id, nil
}
