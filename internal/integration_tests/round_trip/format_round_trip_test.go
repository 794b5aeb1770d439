package integration_tests

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/yangkit/internal/effective"
	"github.com/specialistvlad/yangkit/internal/ir"
	"github.com/specialistvlad/yangkit/internal/parse"
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/testutil"
	"github.com/specialistvlad/yangkit/internal/yang"
	"github.com/stretchr/testify/require"
)

var documents = map[string]string{
	"quoting.yang": `module quoting {
  yang-version 1.1;
  namespace "urn:example:quoting";
  prefix q;

  organization 'Example ' + "Networks";
  description
    "A description that spans
     several lines and has \"escaped\" quotes.";

  typedef percent {
    type uint8 { range "0 .. 100"; }
  }

  container settings {
    leaf ratio { type percent; default 50; }
    leaf pattern {
      type string { pattern '[a-z]+\d*'; }
    }
  }
}`,
	"extensions.yang": `module extensions {
  yang-version 1.1;
  namespace "urn:example:extensions";
  prefix ex;

  extension note { argument text; }

  ex:note "module level";

  feature fast;

  grouping tuning {
    leaf level { if-feature "fast or not fast"; type int32; }
  }

  list profile {
    key name;
    leaf name { type string; }
    uses tuning;
    ex:note "inside a list";
    action apply {
      input { leaf dry-run { type boolean; } }
    }
  }

  augment "/ex:profile/ex:apply/ex:output" {
    leaf applied { type boolean; }
  }
}`,
}

func format(t *testing.T, name, text string) string {
	t.Helper()
	root, err := parse.Parse(name, []byte(text))
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, ir.Format(&b, root))
	return b.String()
}

// TestRoundTrip_FormattedSourceResolvesIdentically validates that writing a
// parsed document back as text and resolving that text produces the same
// effective model as the original document.
func TestRoundTrip_FormattedSourceResolvesIdentically(t *testing.T) {
	t.Parallel()

	for name, text := range documents {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			formatted := format(t, name, text)

			// --- Act ---
			original := testutil.MustBuild(t, map[string]string{name: text})
			reparsed := testutil.MustBuild(t, map[string]string{name: formatted})

			// --- Assert ---
			if diff := cmp.Diff(testutil.Dump(original), testutil.Dump(reparsed)); diff != "" {
				t.Errorf("effective models differ (-original +formatted):\n%s", diff)
			}
		})
	}
}

// TestRoundTrip_FormatIsAFixpoint validates that formatting already
// formatted text changes nothing.
func TestRoundTrip_FormatIsAFixpoint(t *testing.T) {
	t.Parallel()

	for name, text := range documents {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			once := format(t, name, text)
			twice := format(t, name, once)

			// --- Assert ---
			require.Equal(t, once, twice)
		})
	}
}

// shape is the keyword, argument and ordered children of a statement.
type shape struct {
	Keyword  string
	Argument string
	Children []shape
}

// singlePassShape reads st in one walk, checking that the vocabulary of the
// full declaration phase knows every core keyword on the way.
func singlePassShape(t *testing.T, reg *registry.Registry, st *ir.Statement) shape {
	t.Helper()
	out := shape{Keyword: st.Keyword().String(), Argument: st.RawArgument()}
	for _, sub := range st.Substatements() {
		if kw := sub.Keyword(); !kw.IsQualified() {
			_, ok := reg.Lookup(scheduler.FullDeclaration, kw.Identifier())
			require.True(t, ok, "keyword %s is not in the full vocabulary", kw)
		}
		out.Children = append(out.Children, singlePassShape(t, reg, sub))
	}
	return out
}

// effectiveShape returns the shape of s without the statements the resolver
// injected: implicit statements are replaced by their children, and copies
// made by uses or augment are left out.
func effectiveShape(s *effective.Statement) shape {
	return shape{Keyword: s.Keyword(), Argument: s.RawArgument(), Children: declaredShapes(s)}
}

func declaredShapes(s *effective.Statement) []shape {
	var out []shape
	for _, sub := range s.Substatements() {
		switch {
		case sub.IsImplicit():
			out = append(out, declaredShapes(sub)...)
		case !sub.History().IsOriginal():
		default:
			out = append(out, effectiveShape(sub))
		}
	}
	return out
}

// TestRoundTrip_PhasedBuildMatchesSinglePassShape validates that replaying a
// document phase by phase yields the tree a single pass over the document
// reads, once injected statements are set aside.
func TestRoundTrip_PhasedBuildMatchesSinglePassShape(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	yang.Bundle{}.Register(reg)

	for name, text := range documents {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			root, err := parse.Parse(name, []byte(text))
			require.NoError(t, err)
			want := singlePassShape(t, reg, root)

			// --- Act ---
			model := testutil.MustBuild(t, map[string]string{name: text})

			// --- Assert ---
			module, ok := model.Module(root.RawArgument())
			require.True(t, ok)
			if diff := cmp.Diff(want, effectiveShape(module)); diff != "" {
				t.Errorf("phased build differs from the single-pass shape (-single-pass +phased):\n%s", diff)
			}
		})
	}
}
