package effective_test

import (
	"testing"

	"github.com/specialistvlad/yangkit/internal/nodeid"
	"github.com/specialistvlad/yangkit/internal/stmt"
	"github.com/specialistvlad/yangkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleTexts = map[string]string{
	"zeta.yang": `module zeta {
  namespace "urn:zeta";
  prefix z;
  revision 2025-01-01;
  include zeta-part;

  container top {
    leaf name { type string; }
    description "top level";
  }
}`,
	"zeta-part.yang": `submodule zeta-part {
  belongs-to zeta { prefix z; }

  container extra;
}`,
	"alpha.yang": `module alpha {
  namespace "urn:alpha";
  prefix a;
  import zeta { prefix z; }

  augment "/z:top" {
    leaf added { type string; }
  }
}`,
}

func TestModel_ModulesAreSortedByName(t *testing.T) {
	t.Parallel()

	// --- Act ---
	model := testutil.MustBuild(t, sampleTexts)

	// --- Assert ---
	require.Len(t, model.Modules(), 2)
	assert.Equal(t, "alpha", model.Modules()[0].RawArgument())
	assert.Equal(t, "zeta", model.Modules()[1].RawArgument())
	require.Len(t, model.Submodules(), 1)
	assert.Equal(t, stmt.KindSubmodule, model.Submodules()[0].Kind())

	zeta, ok := model.Module("zeta")
	require.True(t, ok)
	assert.Equal(t, stmt.KindModule, zeta.Kind())
	_, ok = model.Module("zeta-part")
	assert.False(t, ok, "submodules are not listed as modules")
}

func TestModel_LookupByQName(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	model := testutil.MustBuild(t, sampleTexts)
	zeta := nodeid.ModuleID{Name: "zeta", Namespace: "urn:zeta", Revision: "2025-01-01"}
	alpha := nodeid.ModuleID{Name: "alpha", Namespace: "urn:alpha"}

	// --- Act ---
	added, ok := model.Lookup(nodeid.NewQName(zeta, "top"), nodeid.NewQName(alpha, "added"))

	// --- Assert ---
	require.True(t, ok)
	assert.Equal(t, "leaf added", added.String())
	assert.Equal(t, stmt.AddedByAugmentation, added.History().Last())

	_, ok = model.Lookup(nodeid.NewQName(zeta, "top"), nodeid.NewQName(zeta, "added"))
	assert.False(t, ok, "the augmented node belongs to the augmenting module")
	_, ok = model.Lookup()
	assert.False(t, ok)

	extra := model.MustLookup(nodeid.NewQName(zeta, "extra"))
	assert.Equal(t, "zeta-part.yang", extra.Ref().Source)
	assert.Panics(t, func() { model.MustLookup(nodeid.NewQName(zeta, "missing")) })
}

func TestModel_Find(t *testing.T) {
	t.Parallel()

	model := testutil.MustBuild(t, sampleTexts)

	testCases := []struct {
		path   string
		wantOK bool
	}{
		{path: "/zeta:top", wantOK: true},
		{path: "zeta:top", wantOK: true},
		{path: "/zeta:top/name", wantOK: true},
		{path: "/zeta:top/zeta:name", wantOK: true},
		{path: "/zeta:top/alpha:added", wantOK: true},
		{path: "/zeta:top/added", wantOK: false},
		{path: "/zeta:extra", wantOK: true},
		{path: "/zeta:missing", wantOK: false},
		{path: "/nowhere:top", wantOK: false},
		{path: "/zeta:top/name/deeper", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			_, ok := model.Find(tc.path)

			// --- Assert ---
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestStatement_Accessors(t *testing.T) {
	t.Parallel()

	// --- Act ---
	model := testutil.MustBuild(t, sampleTexts)

	// --- Assert ---
	top := testutil.RequireNode(t, model, "/zeta:top")
	assert.True(t, top.IsSchemaNode())
	assert.Equal(t, "container", top.Keyword())
	assert.Equal(t, []string{"name", "added"}, testutil.ChildNames(top))

	desc, ok := top.Find(stmt.KindDescription)
	require.True(t, ok)
	assert.False(t, desc.IsSchemaNode())
	assert.Equal(t, "top level", desc.RawArgument())
	_, ok = top.Find(stmt.KindMust)
	assert.False(t, ok)

	q, ok := top.QName()
	require.True(t, ok)
	assert.Equal(t, "zeta", q.Module.Name)
	_, ok = desc.QName()
	assert.False(t, ok)

	assert.Equal(t, 7, top.Ref().Line)
}

func TestBuild_DuplicateSchemaNames(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		texts   map[string]string
		wantErr string
	}{
		{
			name: "siblings in one module",
			texts: map[string]string{"m.yang": `module m {
  namespace "urn:m";
  prefix m;
  container top {
    leaf dup { type string; }
    leaf dup { type int8; }
  }
}`},
			wantErr: "node named 'dup' is already defined at m.yang:5:5",
		},
		{
			name: "module and submodule",
			texts: map[string]string{
				"m.yang": `module m {
  namespace "urn:m";
  prefix m;
  include s;
  container top;
}`,
				"s.yang": `submodule s {
  belongs-to m { prefix m; }
  container top;
}`,
			},
			wantErr: "node named 'top' is already defined",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.Build(t, tc.texts)

			// --- Assert ---
			assert.ErrorContains(t, result.Err, tc.wantErr)
			assert.Nil(t, result.Model)
		})
	}
}
