package yang

import (
	"fmt"
	"strconv"
	"time"

	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// Unbounded is the parsed argument of "max-elements unbounded".
const Unbounded = -1

// argumentSupport parses an argument with a plain function and has no
// declaration behavior.
type argumentSupport struct {
	parse func(c *stmt.Context, raw string) (any, error)
}

func (s argumentSupport) ParseArgument(c *stmt.Context, raw string) (any, error) {
	return s.parse(c, raw)
}

func (argumentSupport) OnDeclared(*stmt.Context, scheduler.Phase) error { return nil }

var (
	rawArgument        = stmt.BaseSupport{}
	identifierArgument = argumentSupport{parse: parseIdentifier}
	booleanArgument    = argumentSupport{parse: parseBoolean}
	dateArgument       = argumentSupport{parse: parseDate}
	versionArgument    = argumentSupport{parse: parseVersion}
	statusArgument     = argumentSupport{parse: oneOf("current", "deprecated", "obsolete")}
	orderedByArgument  = argumentSupport{parse: oneOf("system", "user")}
	modifierArgument   = argumentSupport{parse: oneOf("invert-match")}
	minElementsArg     = argumentSupport{parse: parseUnsigned}
	maxElementsArg     = argumentSupport{parse: parseMaxElements}
	fractionDigitsArg  = argumentSupport{parse: parseFractionDigits}
	integerArgument    = argumentSupport{parse: parseInteger}
	unsignedArgument   = argumentSupport{parse: parseUnsigned}
)

func parseIdentifier(c *stmt.Context, raw string) (any, error) {
	return nodeid.ParseIdentifier(raw, c.Version())
}

func parseBoolean(_ *stmt.Context, raw string) (any, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, fmt.Errorf("'%s' is not a boolean, expected 'true' or 'false'", raw)
}

func parseDate(_ *stmt.Context, raw string) (any, error) {
	if _, err := time.Parse(time.DateOnly, raw); err != nil {
		return nil, fmt.Errorf("'%s' is not a revision date", raw)
	}
	return raw, nil
}

func parseVersion(_ *stmt.Context, raw string) (any, error) {
	return nodeid.ParseVersion(raw)
}

func oneOf(values ...string) func(*stmt.Context, string) (any, error) {
	return func(_ *stmt.Context, raw string) (any, error) {
		for _, v := range values {
			if raw == v {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("'%s' is not one of %v", raw, values)
	}
}

func parseUnsigned(_ *stmt.Context, raw string) (any, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a non-negative integer", raw)
	}
	return int(v), nil
}

func parseInteger(_ *stmt.Context, raw string) (any, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not an integer", raw)
	}
	return v, nil
}

func parseMaxElements(c *stmt.Context, raw string) (any, error) {
	if raw == "unbounded" {
		return Unbounded, nil
	}
	v, err := parseUnsigned(c, raw)
	if err != nil || v.(int) == 0 {
		return nil, fmt.Errorf("'%s' is not a positive integer or 'unbounded'", raw)
	}
	return v, nil
}

func parseFractionDigits(c *stmt.Context, raw string) (any, error) {
	v, err := parseUnsigned(c, raw)
	if err != nil || v.(int) < 1 || v.(int) > 18 {
		return nil, fmt.Errorf("fraction-digits '%s' is not between 1 and 18", raw)
	}
	return v, nil
}

// schemaNodeName binds raw to the module c belongs to.
func schemaNodeName(c *stmt.Context, raw string) (any, error) {
	name, err := nodeid.ParseIdentifier(raw, c.Version())
	if err != nil {
		return nil, err
	}
	mod, ok := ModuleOf(c)
	if !ok {
		return nil, fmt.Errorf("module of '%s' is not known yet", raw)
	}
	return nodeid.NewQName(mod, name), nil
}

// boolArgument returns the boolean argument of the first supported
// substatement of kind.
func boolArgument(c *stmt.Context, kind stmt.Kind) (value, present bool) {
	v, ok := c.SubstatementArgument(kind)
	if !ok {
		return false, false
	}
	b, _ := v.(bool)
	return b, true
}

// intArgument returns the integer argument of the first supported
// substatement of kind.
func intArgument(c *stmt.Context, kind stmt.Kind) (int, bool) {
	v, ok := c.SubstatementArgument(kind)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}
