package yang

import (
	"testing"

	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/stretchr/testify/require"
)

func TestParseFeatureExpr(t *testing.T) {
	t.Parallel()

	enabled := map[string]bool{"a": true, "b": false, "c": true, "p:d": true}
	lookup := func(ref FeatureRef) bool { return enabled[ref.String()] }

	testCases := []struct {
		name     string
		raw      string
		want     bool
		wantRefs []FeatureRef
	}{
		{name: "single", raw: "a", want: true, wantRefs: []FeatureRef{{Name: "a"}}},
		{name: "prefixed", raw: "p:d", want: true, wantRefs: []FeatureRef{{Prefix: "p", Name: "d"}}},
		{name: "not", raw: "not b", want: true, wantRefs: []FeatureRef{{Name: "b"}}},
		{name: "and binds tighter than or", raw: "b and a or c", want: true},
		{name: "parentheses", raw: "b and (a or c)", want: false},
		{name: "nested not", raw: "not not a", want: true},
		{name: "extra whitespace", raw: "  a   and\tc ", want: true},
		{name: "not over group", raw: "not (a and c)", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			expr, err := ParseFeatureExpr(tc.raw, nodeid.Version11)

			// --- Assert ---
			require.NoError(t, err)
			require.Equal(t, tc.want, expr.Eval(lookup))
			require.Equal(t, tc.raw, expr.String())
			if tc.wantRefs != nil {
				require.Equal(t, tc.wantRefs, expr.Refs())
			}
		})
	}
}

func TestParseFeatureExpr_Refs(t *testing.T) {
	t.Parallel()

	// --- Act ---
	expr, err := ParseFeatureExpr("x and (p:y or not z)", nodeid.Version11)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []FeatureRef{{Name: "x"}, {Prefix: "p", Name: "y"}, {Name: "z"}}, expr.Refs())
}

func TestParseFeatureExpr_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		raw     string
		version nodeid.Version
		wantErr string
	}{
		{name: "empty", raw: "", version: nodeid.Version11, wantErr: "unexpected end of expression"},
		{name: "dangling operator", raw: "a and", version: nodeid.Version11, wantErr: "unexpected end of expression"},
		{name: "missing close", raw: "(a or b", version: nodeid.Version11, wantErr: "missing ')'"},
		{name: "trailing token", raw: "a b", version: nodeid.Version11, wantErr: "unexpected 'b'"},
		{name: "operator as operand", raw: "or a", version: nodeid.Version11, wantErr: "unexpected 'or'"},
		{name: "bad identifier", raw: "1abc", version: nodeid.Version11, wantErr: "invalid identifier"},
		{name: "expression in version 1", raw: "a and c", version: nodeid.Version1, wantErr: "requires yang-version 1.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			_, err := ParseFeatureExpr(tc.raw, tc.version)

			// --- Assert ---
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
