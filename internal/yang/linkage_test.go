package yang_test

import (
	"testing"

	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const typesModule = `module types {
  namespace "urn:types";
  prefix t;
  revision 2024-01-01;
  revision 2025-02-01;

  grouping address {
    leaf host { type string; }
    leaf port { type uint16; }
  }
}`

func TestLinkage_ImportedGroupingTakesUserNamespace(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	texts := map[string]string{
		"types.yang": typesModule,
		"app.yang": `module app {
  namespace "urn:app";
  prefix app;
  import types { prefix t; revision-date 2025-02-01; }

  container server {
    uses t:address;
  }
}`,
	}

	// --- Act ---
	model := testutil.MustBuild(t, texts)

	// --- Assert ---
	server := testutil.RequireNode(t, model, "/app:server")
	assert.Equal(t, []string{"host", "port"}, testutil.ChildNames(server))
	host := testutil.RequireNode(t, model, "/app:server/host")
	q, ok := host.QName()
	require.True(t, ok)
	assert.Equal(t, "urn:app", q.Module.Namespace)
	testutil.RequireNoNode(t, model, "/types:host")
}

func TestLinkage_SubmoduleSchemaMergesIntoModule(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	texts := map[string]string{
		"main.yang": `module main {
  yang-version 1.1;
  namespace "urn:main";
  prefix m;
  include part;

  container local;
}`,
		"part.yang": `submodule part {
  yang-version 1.1;
  belongs-to main { prefix m; }

  container shared {
    leaf value { type string; }
  }
}`,
	}

	// --- Act ---
	model := testutil.MustBuild(t, texts)

	// --- Assert ---
	testutil.RequireNode(t, model, "/main:local")
	testutil.RequireNode(t, model, "/main:shared/value")
	require.Len(t, model.Submodules(), 1)
	assert.Equal(t, "part", model.Submodules()[0].RawArgument())
}

func TestLinkage_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		texts   map[string]string
		wantErr string
	}{
		{
			name: "missing import",
			texts: map[string]string{"app.yang": `module app {
  namespace "urn:app";
  prefix app;
  import missing { prefix x; }
}`},
			wantErr: "Imported module 'missing' was not found",
		},
		{
			name: "pinned revision not available",
			texts: map[string]string{
				"types.yang": typesModule,
				"app.yang": `module app {
  namespace "urn:app";
  prefix app;
  import types { prefix t; revision-date 2024-01-01; }
}`,
			},
			wantErr: "Imported module 'types' revision '2024-01-01' was not found",
		},
		{
			name: "missing submodule",
			texts: map[string]string{"main.yang": `module main {
  namespace "urn:main";
  prefix m;
  include nowhere;
}`},
			wantErr: "Included submodule 'nowhere' was not found",
		},
		{
			name: "submodule of unknown module",
			texts: map[string]string{"part.yang": `submodule part {
  belongs-to main { prefix m; }
}`},
			wantErr: "Module 'main' that submodule 'part' belongs to was not found",
		},
		{
			name: "module without namespace",
			texts: map[string]string{"app.yang": `module app {
  prefix app;
}`},
			wantErr: "module 'app' has no namespace statement",
		},
		{
			name: "prefix bound twice",
			texts: map[string]string{
				"types.yang": typesModule,
				"app.yang": `module app {
  namespace "urn:app";
  prefix app;
  import types { prefix app; }
}`,
			},
			wantErr: "prefix 'app' is already bound to another module",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.Build(t, tc.texts)

			// --- Assert ---
			require.Error(t, result.Err)
			assert.ErrorContains(t, result.Err, tc.wantErr)
			var srcErr *diag.SourceError
			assert.ErrorAs(t, result.Err, &srcErr)
		})
	}
}
