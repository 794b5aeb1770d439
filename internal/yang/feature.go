package yang

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

type featureSupport struct{}

func (featureSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return parseIdentifier(c, raw)
}

func (featureSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.FullDeclaration {
		return nil
	}
	if err := Features.Put(c, c.RawArgument(), c); err != nil {
		return diag.Errorf(c.Ref(), "feature '%s' is defined more than once", c.RawArgument())
	}
	return nil
}

type ifFeatureSupport struct{}

func (ifFeatureSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return ParseFeatureExpr(raw, c.Version())
}

// OnDeclared waits until every feature the expression names is known, then
// evaluates it. A false result disables the parent statement; under refine
// the result is only recorded, for the refined node.
func (ifFeatureSupport) OnDeclared(c *stmt.Context, phase scheduler.Phase) error {
	if phase != scheduler.FullDeclaration {
		return nil
	}
	expr := c.Argument().(*FeatureExpr)

	var prereqs []scheduler.Prerequisite
	for _, ref := range expr.Refs() {
		module, _, err := resolveName(c, ref.Prefix)
		if err != nil {
			return diag.Errorf(c.Ref(), "if-feature '%s': %w", expr, err)
		}
		name := ref.Name
		prereqs = append(prereqs, scheduler.When(fmt.Sprintf("feature %s", ref), func() bool {
			_, ok := lookupInModule(Features, module, name)
			return ok
		}))
	}

	c.Global().Scheduler().Register(scheduler.FullDeclaration, scheduler.Funcs{
		OnApply: func() error {
			value := evalIfFeature(c, map[*stmt.Context]bool{})
			if err := ifFeatureValues.Put(c, struct{}{}, value); err != nil {
				return err
			}
			if !value && c.Parent().Kind() != stmt.KindRefine {
				c.Logger().Debug("Statement disabled by if-feature.",
					"statement", c.Parent().String(), "ref", c.Parent().Ref().String(), "expression", expr.String())
				c.Parent().SetUnsupported()
			}
			return nil
		},
		OnFailed: func(pending []scheduler.Prerequisite) error {
			names := make([]string, len(pending))
			for i, p := range pending {
				names[i] = strings.TrimPrefix(p.String(), "feature ")
			}
			return diag.Errorf(c.Ref(), "if-feature refers to unknown feature '%s'", strings.Join(names, "', '"))
		},
	}, prereqs...)
	return nil
}

// evalIfFeature evaluates an if-feature statement. A feature counts as
// enabled when the run configuration enables it and its own if-feature
// statements hold. visiting guards against features depending on
// themselves, which count as disabled.
func evalIfFeature(c *stmt.Context, visiting map[*stmt.Context]bool) bool {
	expr := c.Argument().(*FeatureExpr)
	return expr.Eval(func(ref FeatureRef) bool {
		module, _, err := resolveName(c, ref.Prefix)
		if err != nil {
			return false
		}
		feature, ok := lookupInModule(Features, module, ref.Name)
		if !ok {
			return false
		}
		return featureEnabled(feature, visiting)
	})
}

func featureEnabled(feature *stmt.Context, visiting map[*stmt.Context]bool) bool {
	if visiting[feature] {
		return false
	}
	visiting[feature] = true
	defer delete(visiting, feature)

	if mod, ok := ModuleOf(feature); ok {
		if enabled, configured := EnabledFeatures.Get(feature, mod.Name); configured && !enabled.Contains(feature.RawArgument()) {
			return false
		}
	}
	for _, sub := range feature.Declared() {
		if sub.Kind() == stmt.KindIfFeature && !evalIfFeature(sub, visiting) {
			return false
		}
	}
	return true
}

// IfFeatureValue returns the recorded result of an if-feature statement.
func IfFeatureValue(c *stmt.Context) (value, evaluated bool) {
	return ifFeatureValues.Get(c, struct{}{})
}
