package yang

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// substatements that configure the augment itself and are never copied
// into the target.
var noCopy = map[stmt.Kind]bool{
	stmt.KindUses:        true,
	stmt.KindWhen:        true,
	stmt.KindDescription: true,
	stmt.KindReference:   true,
	stmt.KindStatus:      true,
	stmt.KindIfFeature:   true,
}

// statement kinds RFC 7950 allows as augment targets.
var augmentable = map[stmt.Kind]bool{
	stmt.KindContainer:    true,
	stmt.KindList:         true,
	stmt.KindChoice:       true,
	stmt.KindCase:         true,
	stmt.KindInput:        true,
	stmt.KindOutput:       true,
	stmt.KindNotification: true,
}

type augmentSupport struct{}

func (augmentSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return nodeid.Parse(raw, c.Version())
}

// OnDeclared checks the form of the target path and registers the
// resolution of the augment for the effective model phase.
func (augmentSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.FullDeclaration {
		return nil
	}
	id := c.Argument().(*nodeid.SchemaNodeID)
	parent := c.Parent()

	var start *stmt.Context
	switch {
	case parent.Kind() == stmt.KindUses:
		if id.Absolute {
			return diag.Errorf(c.Ref(), "augment '%s' under uses must use a descendant schema node identifier", id)
		}
		start = parent.Parent()
	case parent.IsRoot():
		if !id.Absolute {
			return diag.Errorf(c.Ref(), "top-level augment '%s' must use an absolute schema node identifier", id)
		}
	default:
		return diag.Errorf(c.Ref(), "augment is not allowed in '%s'", parent.Keyword())
	}

	path := make([]nodeid.QName, len(id.Path))
	for i, seg := range id.Path {
		root, mod, err := resolveName(c, seg.Prefix)
		if err != nil {
			return diag.Errorf(c.Ref(), "augment '%s': %w", id, err)
		}
		if i == 0 && start == nil {
			start = root
		}
		path[i] = nodeid.NewQName(mod, seg.Name)
	}

	target := &augmentTarget{augment: c, start: start, path: path}
	prereqs := []scheduler.Prerequisite{c.RequirePhase(scheduler.EffectiveModel), target}
	if parent.Kind() == stmt.KindUses {
		prereqs = append(prereqs, start.ClaimMutation())
	}
	c.Global().Scheduler().Register(scheduler.EffectiveModel, &augmentAction{augment: c, target: target}, prereqs...)
	return nil
}

// augmentTarget is the prerequisite that resolves the target path. The
// target is pending until every node on the path exists and the target has
// no outstanding mutations, and unavailable once the path runs through an
// unsupported node.
type augmentTarget struct {
	augment *stmt.Context
	start   *stmt.Context
	path    []nodeid.QName

	resolved *stmt.Context
	// deepest is the last node the walk reached.
	deepest *stmt.Context
}

func (t *augmentTarget) Status() scheduler.Status {
	node := t.start
	for _, q := range t.path {
		next := schemaChild(node, q)
		if next == nil {
			next = unknownChild(node, q.Name)
		}
		if next == nil {
			t.deepest = node
			return scheduler.Pending
		}
		if !next.IsSupported() {
			return scheduler.Unavailable
		}
		node = next
	}
	t.deepest = node
	if node.HasPendingMutations() {
		return scheduler.Pending
	}
	t.resolved = node
	return scheduler.Satisfied
}

func (t *augmentTarget) String() string {
	return fmt.Sprintf("augment target %s", t.augment.RawArgument())
}

// augmentAction copies the substatements of an augment into its target.
type augmentAction struct {
	augment *stmt.Context
	target  *augmentTarget
}

func (a *augmentAction) isUsesAugment() bool {
	return a.augment.Parent().Kind() == stmt.KindUses
}

func (a *augmentAction) skip(reason string) error {
	aug := a.augment
	aug.Logger().Warn(reason, "augment", aug.RawArgument(), "ref", aug.Ref().String())
	aug.SetUnsupported()
	return nil
}

func (a *augmentAction) Apply() error {
	aug := a.augment
	if !aug.IsSupported() {
		return nil
	}
	target := a.target.resolved
	def := target.Definition()

	switch {
	case def.IsUnknown():
		if a.isUsesAugment() {
			return a.skip("Uses-augment targets an unrecognized extension, ignoring it.")
		}
		return diag.Inferencef(aug.Ref(), "Augment target '%s' not found", aug.RawArgument())
	case def.IsExtensionInstance() || target.InExtensionBody():
		return a.skip("Augment target lies inside an extension body, ignoring the augment.")
	}
	if allowed, ok := AugmentTargets.Get(aug, struct{}{}); ok && allowed.Len() > 0 && !allowed.Contains(target.Kind().Keyword()) {
		return a.skip("Augment target kind is not in the allowed list, ignoring the augment.")
	}
	if !augmentable[target.Kind()] {
		return diag.Errorf(aug.Ref(), "Augment target '%s' is a '%s', which cannot be augmented", aug.RawArgument(), target.Kind())
	}
	if target.Kind() == stmt.KindChoice {
		if err := ImplicitParent.Put(aug, struct{}{}, stmt.KindCase); err != nil {
			return err
		}
	}
	return a.copyInto(target)
}

func (a *augmentAction) copyInto(target *stmt.Context) error {
	aug := a.augment
	copyType := stmt.AddedByAugmentation
	if a.isUsesAugment() {
		copyType = stmt.AddedByUsesAugmentation
	}
	skipMandatory := aug.Version() == nodeid.Version11 && hasWhen(aug)
	_, wrap := ImplicitParent.Get(aug, struct{}{})

	for i, sub := range aug.Substatements() {
		if !sub.IsSupported() || noCopy[sub.Kind()] {
			continue
		}
		origin := stmt.Origin{Ref: aug.Ref(), Seq: i}
		if sub.Kind() == stmt.KindTypedef {
			target.AddEffective(target.ReplicaAsChildOf(sub), origin)
			continue
		}
		if err := validateAugmentCopy(sub, target, copyType, origin, skipMandatory); err != nil {
			return err
		}
		if err := attachCopy(target, sub, copyType, nil, origin, wrap); err != nil {
			return err
		}
	}
	aug.Logger().Debug("Augment applied.", "augment", aug.RawArgument(), "ref", aug.Ref().String(), "target", target.String())
	return nil
}

// PrerequisiteUnavailable is called when the target path runs through an
// unsupported node. The augment is disabled with it.
func (a *augmentAction) PrerequisiteUnavailable(scheduler.Prerequisite) error {
	aug := a.augment
	aug.Logger().Debug("Augment target is not supported, disabling the augment.",
		"augment", aug.RawArgument(), "ref", aug.Ref().String())
	aug.SetUnsupported()
	return nil
}

func (a *augmentAction) PrerequisiteFailed(pending []scheduler.Prerequisite) error {
	aug := a.augment
	if !aug.IsSupported() {
		return nil
	}
	for _, p := range pending {
		if p != a.target {
			continue
		}
		if deepest := a.target.deepest; a.isUsesAugment() && deepest != nil &&
			(deepest.Definition().IsUnknown() || deepest.InExtensionBody()) {
			return a.skip("Uses-augment targets an unrecognized extension, ignoring it.")
		}
		return diag.Inferencef(aug.Ref(), "Augment target '%s' not found", aug.RawArgument())
	}
	return diag.Inferencef(aug.Ref(), "Augment '%s' cannot be resolved: %s", aug.RawArgument(), describe(pending))
}

func describe(prereqs []scheduler.Prerequisite) string {
	parts := make([]string, len(prereqs))
	for i, p := range prereqs {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// validateAugmentCopy checks that source may be added to target: it must
// not make a foreign module's data mandatory, and its name must be free.
// When two augments add the same name, the one with the later origin is
// reported, whichever was applied first.
func validateAugmentCopy(source, target *stmt.Context, copyType stmt.CopyType, origin stmt.Origin, skipMandatory bool) error {
	if !skipMandatory && copyType == stmt.AddedByAugmentation && requiresMandatoryCheck(source, target) {
		if err := checkMandatoryNodes(source); err != nil {
			return err
		}
	}
	if !source.Kind().IsDataDefinition() {
		return nil
	}
	q, ok := source.QName()
	if !ok {
		return nil
	}
	existing := target.SchemaChild(q, false)
	if existing == nil {
		return nil
	}
	offender := source
	if addedByAugment(existing) && origin.Less(existing.Origin()) {
		offender = existing
	}
	return diag.Errorf(offender.Ref(),
		"An augment cannot add node named '%s' because this name is already used in target", source.RawArgument())
}

func addedByAugment(c *stmt.Context) bool {
	last := c.History().Last()
	return last == stmt.AddedByAugmentation || last == stmt.AddedByUsesAugmentation
}

// requiresMandatoryCheck walks from target towards the root through the
// nodes of source's module. The check applies once the walk reaches a node
// of another module, unless a node passed on the way makes its subtree
// optional or was added by a conditional augment.
func requiresMandatoryCheck(source, target *stmt.Context) bool {
	q, ok := source.QName()
	if !ok {
		return false
	}
	for node := target; node != nil && !node.IsRoot(); node = node.Parent() {
		nq, ok := node.QName()
		if !ok {
			return false
		}
		if nq.Module != q.Module {
			return true
		}
		if breaksMandatoryChain(node) || addedByConditionalAugment(node) {
			return false
		}
	}
	return false
}

// addedByConditionalAugment reports whether node was copied by a YANG 1.1
// augment with a when statement.
func addedByConditionalAugment(node *stmt.Context) bool {
	if node.History().Last() != stmt.AddedByAugmentation || node.Original() == nil {
		return false
	}
	aug := enclosingAugment(node.Original())
	return aug != nil && aug.Version() == nodeid.Version11 && hasWhen(aug)
}

// checkMandatoryNodes rejects source if it is mandatory, looking through
// non-presence containers.
func checkMandatoryNodes(source *stmt.Context) error {
	if isNonPresenceContainer(source) {
		for _, sub := range source.Substatements() {
			if !sub.IsSupported() {
				continue
			}
			if err := checkMandatoryNodes(sub); err != nil {
				return err
			}
		}
		return nil
	}
	if isMandatory(source) {
		return diag.Errorf(source.Ref(),
			"An augment cannot add node '%s' because it is mandatory and in module different than target", source.RawArgument())
	}
	return nil
}

func enclosingAugment(c *stmt.Context) *stmt.Context {
	for p := c.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == stmt.KindAugment {
			return p
		}
	}
	return nil
}

func hasWhen(c *stmt.Context) bool {
	return c != nil && c.FirstSubstatement(stmt.KindWhen) != nil
}
