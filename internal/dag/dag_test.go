package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// imports builds a graph from a module -> imported modules table. Edges run
// from the imported module to the importing one.
func imports(t *testing.T, table map[string][]string) *Graph {
	t.Helper()
	g := New()
	for module, deps := range table {
		g.AddNode(module)
		for _, dep := range deps {
			g.AddNode(dep)
		}
	}
	for module, deps := range table {
		for _, dep := range deps {
			require.NoError(t, g.AddEdge(dep, module))
		}
	}
	return g
}

func TestAddNode_IsIdempotent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := New()

	// --- Act ---
	g.AddNode("ietf-interfaces")
	g.AddNode("ietf-interfaces")
	g.AddNode("ietf-ip")

	// --- Assert ---
	assert.Len(t, g.nodes, 2)
	require.Contains(t, g.nodes, "ietf-interfaces")
	assert.Empty(t, g.nodes["ietf-interfaces"].deps)
}

func TestAddEdge(t *testing.T) {
	t.Parallel()

	t.Run("import links both directions", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		g := New()
		g.AddNode("ietf-interfaces")
		g.AddNode("ietf-ip")

		// --- Act ---
		err := g.AddEdge("ietf-interfaces", "ietf-ip")

		// --- Assert ---
		require.NoError(t, err)
		assert.Contains(t, g.nodes["ietf-ip"].deps, "ietf-interfaces")
		assert.Contains(t, g.nodes["ietf-interfaces"].dependents, "ietf-ip")
	})

	testCases := []struct {
		name    string
		from    string
		to      string
		wantErr string
	}{
		{name: "unknown imported module", from: "ietf-yang-types", to: "ietf-ip", wantErr: "source node not found: ietf-yang-types"},
		{name: "unknown importing module", from: "ietf-ip", to: "vendor", wantErr: "destination node not found: vendor"},
		{name: "module importing itself", from: "ietf-ip", to: "ietf-ip", wantErr: "self-referential edge not allowed: ietf-ip -> ietf-ip"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			g := New()
			g.AddNode("ietf-ip")

			// --- Act ---
			err := g.AddEdge(tc.from, tc.to)

			// --- Assert ---
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestDetectCycles(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		table     map[string][]string
		wantCycle string
	}{
		{
			name:  "independent modules",
			table: map[string][]string{"ietf-ip": nil, "ietf-routing": nil},
		},
		{
			name: "shared imports and an include",
			table: map[string][]string{
				"ietf-ip":          {"ietf-interfaces", "ietf-inet-types"},
				"ietf-interfaces":  {"ietf-yang-types"},
				"ietf-routing":     {"ietf-interfaces", "ietf-routing-sub"},
				"ietf-routing-sub": {"ietf-inet-types"},
			},
		},
		{
			name:      "two modules importing each other",
			table:     map[string][]string{"left": {"right"}, "right": {"left"}},
			wantCycle: "left",
		},
		{
			name: "cycle through a submodule",
			table: map[string][]string{
				"base":      {"base-part"},
				"base-part": {"types"},
				"types":     {"base"},
			},
			wantCycle: "base",
		},
		{
			name: "cycle apart from a valid component",
			table: map[string][]string{
				"app":     {"common"},
				"x-left":  {"x-right"},
				"x-right": {"x-left"},
			},
			wantCycle: "x-left",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			g := imports(t, tc.table)

			// --- Act ---
			err := g.DetectCycles()

			// --- Assert ---
			if tc.wantCycle == "" {
				assert.NoError(t, err)
				return
			}
			var cycle *CycleError
			require.ErrorAs(t, err, &cycle)
			assert.Equal(t, tc.wantCycle, cycle.Node)
			assert.EqualError(t, err, "cycle detected involving node '"+tc.wantCycle+"'")
		})
	}
}

func TestDependenciesAndDependents(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := imports(t, map[string][]string{
		"example": {"ietf-yang-types", "ietf-inet-types"},
	})

	// --- Act ---
	deps, err := g.Dependencies("example")
	require.NoError(t, err)
	dependents, err := g.Dependents("ietf-inet-types")
	require.NoError(t, err)
	_, missingErr := g.Dependencies("nope")
	_, missingDependentsErr := g.Dependents("nope")

	// --- Assert ---
	assert.Equal(t, []string{"ietf-inet-types", "ietf-yang-types"}, deps)
	assert.Equal(t, []string{"example"}, dependents)
	assert.EqualError(t, missingErr, "node not found: nope")
	assert.EqualError(t, missingDependentsErr, "node not found: nope")
}

func TestTopologicalOrder(t *testing.T) {
	t.Parallel()

	t.Run("dependencies come first, ties broken by name", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		g := imports(t, map[string][]string{
			"app":       {"types"},
			"base":      {"base-part", "types"},
			"base-part": nil,
		})

		// --- Act ---
		order, err := g.TopologicalOrder()

		// --- Assert ---
		require.NoError(t, err)
		assert.Equal(t, []string{"base-part", "types", "app", "base"}, order)
	})

	t.Run("cycle is reported", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		g := imports(t, map[string][]string{"a": {"b"}, "b": {"a"}})

		// --- Act ---
		_, err := g.TopologicalOrder()

		// --- Assert ---
		assert.EqualError(t, err, "cycle detected involving node 'a'")
	})
}
