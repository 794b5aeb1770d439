package yang

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

type groupingSupport struct{}

func (groupingSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return parseIdentifier(c, raw)
}

func (groupingSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.FullDeclaration {
		return nil
	}
	if err := Groupings.Put(c.Parent(), c.RawArgument(), c); err != nil {
		return diag.Errorf(c.Ref(), "grouping '%s' is already defined in this scope", c.RawArgument())
	}
	return nil
}

// usesRef is the parsed argument of a uses statement.
type usesRef struct {
	Prefix string
	Name   string
}

func (r usesRef) String() string {
	if r.Prefix == "" {
		return r.Name
	}
	return r.Prefix + ":" + r.Name
}

// statements of a grouping that describe the grouping itself.
var skipOnUses = map[stmt.Kind]bool{
	stmt.KindDescription: true,
	stmt.KindReference:   true,
	stmt.KindStatus:      true,
	stmt.KindGrouping:    true,
	stmt.KindUses:        true,
}

type usesSupport struct{}

func (usesSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	prefix, name, qualified := strings.Cut(raw, ":")
	if !qualified {
		prefix, name = "", raw
	}
	if _, err := nodeid.ParseIdentifier(name, c.Version()); err != nil {
		return nil, err
	}
	return usesRef{Prefix: prefix, Name: name}, nil
}

// OnDeclared registers the expansion of the grouping into the parent. The
// expansion waits until the grouping itself is fully expanded, and holds a
// mutation claim on the parent until it is applied.
func (usesSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.FullDeclaration {
		return nil
	}
	ref := c.Argument().(usesRef)
	module, err := groupingScope(c, ref)
	if err != nil {
		return diag.Errorf(c.Ref(), "uses '%s': %w", ref, err)
	}
	find := func() *stmt.Context {
		if module == nil {
			if g, ok := Groupings.Get(c.Parent(), ref.Name); ok {
				return g
			}
			g, _ := lookupInModule(Groupings, moduleRoot(c), ref.Name)
			return g
		}
		g, _ := lookupInModule(Groupings, module, ref.Name)
		return g
	}

	target := c.Parent()
	ready := scheduler.When(fmt.Sprintf("grouping %s reached %s", ref, scheduler.EffectiveModel), func() bool {
		g := find()
		return g != nil && g.Reached(scheduler.EffectiveModel)
	})
	c.Global().Scheduler().Register(scheduler.EffectiveModel, scheduler.Funcs{
		OnApply: func() error {
			return expandUses(c, find(), target)
		},
		OnFailed: func([]scheduler.Prerequisite) error {
			if find() == nil {
				return diag.Errorf(c.Ref(), "Grouping '%s' was not found", ref)
			}
			return diag.Inferencef(c.Ref(), "Grouping '%s' cannot be expanded because it depends on itself", ref)
		},
	}, target.ClaimMutation(), ready)
	return nil
}

// groupingScope returns the module root to look a prefixed grouping up in,
// or nil when the lookup starts from the lexical scope of c.
func groupingScope(c *stmt.Context, ref usesRef) (*stmt.Context, error) {
	if ref.Prefix == "" {
		return nil, nil
	}
	module, _, err := resolveName(c, ref.Prefix)
	if err != nil {
		return nil, err
	}
	if module == moduleRoot(c) {
		return nil, nil
	}
	return module, nil
}

func expandUses(uses, grouping, target *stmt.Context) error {
	if !uses.IsSupported() {
		return nil
	}
	mod, ok := ModuleOf(uses)
	if !ok {
		return diag.Errorf(uses.Ref(), "module of uses '%s' is not known", uses.RawArgument())
	}

	for i, sub := range grouping.Substatements() {
		if !sub.IsSupported() || skipOnUses[sub.Kind()] {
			continue
		}
		origin := stmt.Origin{Ref: uses.Ref(), Seq: i}
		if sub.Kind() == stmt.KindTypedef {
			target.AddEffective(target.ReplicaAsChildOf(sub), origin)
			continue
		}
		if err := attachCopy(target, sub, stmt.AddedByUses, &mod, origin, target.Kind() == stmt.KindChoice); err != nil {
			return err
		}
	}

	for _, refine := range uses.Declared() {
		if refine.Kind() != stmt.KindRefine || !refine.IsSupported() {
			continue
		}
		if err := applyRefine(refine, target); err != nil {
			return err
		}
	}
	uses.Logger().Debug("Grouping expanded.", "uses", uses.RawArgument(), "ref", uses.Ref().String(), "target", target.String())
	return nil
}

// attachCopy copies original under target. With wrapInCase, shorthand
// nodes are wrapped in an implicit case first.
func attachCopy(target, original *stmt.Context, copyType stmt.CopyType, module *nodeid.ModuleID, origin stmt.Origin, wrapInCase bool) error {
	parent := target
	if wrapInCase && original.Kind().IsShorthandCase() {
		wrapper, err := target.NewImplicit(target.Global().Definition(stmt.KindCase), original.RawArgument())
		if err != nil {
			return err
		}
		if q, ok := original.QName(); ok {
			if module != nil {
				q = nodeid.NewQName(*module, q.Name)
			}
			wrapper.SetArgument(q)
		}
		target.AddEffective(wrapper, origin)
		parent = wrapper
		origin = stmt.Origin{Ref: origin.Ref}
	}
	cp := parent.ChildCopyOf(original, copyType, module)
	parent.AddEffective(cp, origin)
	return nil
}

// statements a refine adds to the refined node instead of replacing.
var refineAdds = map[stmt.Kind]bool{
	stmt.KindMust: true,
}

var refinable = map[stmt.Kind]bool{
	stmt.KindDescription: true,
	stmt.KindReference:   true,
	stmt.KindConfig:      true,
	stmt.KindMandatory:   true,
	stmt.KindPresence:    true,
	stmt.KindDefault:     true,
	stmt.KindMinElements: true,
	stmt.KindMaxElements: true,
	stmt.KindMust:        true,
	stmt.KindUnits:       true,
}

type refineSupport struct{}

func (refineSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return nodeid.ParseDescendant(raw, c.Version())
}

func (refineSupport) OnDeclared(*stmt.Context, scheduler.Phase) error { return nil }

func applyRefine(refine, scope *stmt.Context) error {
	id := refine.Argument().(*nodeid.SchemaNodeID)
	node := scope
	for _, seg := range id.Path {
		_, mod, err := resolveName(refine, seg.Prefix)
		if err != nil {
			return diag.Errorf(refine.Ref(), "refine '%s': %w", id, err)
		}
		if node = schemaChild(node, nodeid.NewQName(mod, seg.Name)); node == nil {
			return diag.Errorf(refine.Ref(), "Refine target '%s' not found", id)
		}
	}

	replaced := map[stmt.Kind]bool{}
	for _, sub := range refine.Substatements() {
		if !sub.IsSupported() {
			continue
		}
		kind := sub.Kind()
		if kind == stmt.KindIfFeature {
			if value, _ := IfFeatureValue(sub); !value {
				node.SetUnsupported()
			}
			continue
		}
		if !refinable[kind] {
			return diag.Errorf(sub.Ref(), "statement '%s' cannot be refined", sub.Keyword())
		}
		if !refineAdds[kind] && !replaced[kind] {
			replaced[kind] = true
			for _, existing := range slices.Clone(node.Effective()) {
				if existing.Kind() == kind {
					node.RemoveEffective(existing)
				}
			}
		}
		node.AddEffective(node.ChildCopyOf(sub, stmt.AddedByUses, nil), stmt.Origin{Ref: sub.Ref()})
	}
	return nil
}
