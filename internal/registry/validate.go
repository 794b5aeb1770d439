package registry

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/specialistvlad/yangkit/internal/ctxlog"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// kinds the resolver synthesizes on its own and therefore must find.
var implicitKinds = []stmt.Kind{stmt.KindCase, stmt.KindInput, stmt.KindOutput}

// ValidateRegistry checks that the registered definitions are consistent:
// every keyword maps to its own kind, every support is present, every
// vocabulary starts in an emission phase, and the statements the resolver
// synthesizes are available.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	keywords := make([]string, 0, len(r.Definitions))
	for kw := range r.Definitions {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	for _, kw := range keywords {
		def := r.Definitions[kw]
		if def.Support == nil {
			errs = append(errs, fmt.Sprintf("statement '%s': no support", kw))
		}
		if kind, ok := stmt.KindOf(kw); !ok || kind != def.Kind {
			errs = append(errs, fmt.Sprintf("statement '%s': registered with kind '%s'", kw, def.Kind))
		}
		if !slices.Contains(EmissionPhases, r.Since[kw]) {
			errs = append(errs, fmt.Sprintf("statement '%s': vocabulary starts in non-emission phase '%s'", kw, r.Since[kw]))
		}
	}

	for _, kind := range implicitKinds {
		if r.Kinds[kind] == nil {
			errs = append(errs, fmt.Sprintf("statement '%s' is synthesized by the resolver but not registered", kind))
		}
	}

	for key, ext := range r.Extensions {
		if ext.Support == nil {
			errs = append(errs, fmt.Sprintf("extension '%s:%s': no support", key.Module, key.Name))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.", "statements", len(r.Definitions), "extensions", len(r.Extensions))
	return nil
}
