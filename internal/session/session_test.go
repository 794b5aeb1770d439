package session_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/yangkit/internal/ctxlog"
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/session"
	"github.com/specialistvlad/yangkit/internal/source"
	"github.com/specialistvlad/yangkit/internal/testutil"
	"github.com/specialistvlad/yangkit/internal/yang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario exercises imports, submodules, groupings, features and augments
// across sources that depend on each other.
var scenario = map[string]string{
	"a-app.yang": `module app {
  yang-version 1.1;
  namespace "urn:app";
  prefix app;
  import base { prefix b; }
  import types { prefix t; }

  augment "/b:system" {
    uses t:endpoint;
    leaf label { type string; }
  }

  augment "/b:system/app:peer" {
    leaf weight { if-feature b:tuning; type uint8; }
  }

  container local {
    uses t:endpoint {
      augment "peer" { leaf secure { type boolean; } }
    }
  }
}`,
	"b-base.yang": `module base {
  yang-version 1.1;
  namespace "urn:base";
  prefix b;
  include base-part;

  feature tuning;

  container system {
    leaf hostname { type string; }
    choice mode {
      leaf simple { type empty; }
    }
  }

  rpc restart;
}`,
	"c-base-part.yang": `submodule base-part {
  yang-version 1.1;
  belongs-to base { prefix b; }

  augment "/b:system/b:mode" {
    leaf advanced { type empty; }
  }

  container status {
    leaf up { type boolean; }
  }
}`,
	"d-types.yang": `module types {
  yang-version 1.1;
  namespace "urn:types";
  prefix t;

  grouping endpoint {
    container peer {
      leaf address { type string; }
    }
  }
}`,
}

func newRegistry(t *testing.T, ctx context.Context) *registry.Registry {
	t.Helper()
	reg := registry.New()
	yang.Bundle{}.Register(reg)
	require.NoError(t, reg.ValidateRegistry(ctx))
	return reg
}

// buildInOrder resolves texts with the sources handed to the session in
// the given order.
func buildInOrder(t *testing.T, texts map[string]string, order []string, opts ...session.Option) (string, error) {
	t.Helper()
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
	sources := make([]source.Source, 0, len(order))
	for _, name := range order {
		src, err := source.FromText(name, texts[name])
		require.NoError(t, err)
		sources = append(sources, src)
	}
	model, err := session.New(ctx, newRegistry(t, ctx), sources, opts...).Build(ctx)
	if err != nil {
		return "", err
	}
	return testutil.Dump(model), nil
}

func TestBuild_ResolvesScenario(t *testing.T) {
	t.Parallel()

	// --- Act ---
	model := testutil.MustBuild(t, scenario)

	// --- Assert ---
	testutil.RequireNode(t, model, "/base:system/app:peer/address")
	testutil.RequireNode(t, model, "/base:system/app:peer/app:weight")
	testutil.RequireNode(t, model, "/base:system/app:label")
	testutil.RequireNode(t, model, "/base:system/mode/advanced/advanced")
	testutil.RequireNode(t, model, "/base:status/up")
	testutil.RequireNode(t, model, "/base:restart/input")
	testutil.RequireNode(t, model, "/app:local/peer/secure")
}

func TestBuild_IndependentOfSourceOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	want, err := buildInOrder(t, scenario, []string{"a-app.yang", "b-base.yang", "c-base-part.yang", "d-types.yang"})
	require.NoError(t, err)

	orders := [][]string{
		{"d-types.yang", "c-base-part.yang", "b-base.yang", "a-app.yang"},
		{"c-base-part.yang", "a-app.yang", "d-types.yang", "b-base.yang"},
		{"b-base.yang", "d-types.yang", "a-app.yang", "c-base-part.yang"},
	}

	for i, order := range orders {
		t.Run(fmt.Sprintf("order %d", i), func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			got, err := buildInOrder(t, scenario, order)

			// --- Assert ---
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("effective model differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_IndependentOfSchedulingOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	want := testutil.Dump(testutil.MustBuild(t, scenario))

	for _, seed := range []int64{1, 7, 42, 1234, 99991} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			got := testutil.Dump(testutil.MustBuild(t, scenario, testutil.Shuffled(seed)))

			// --- Assert ---
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("effective model differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_ConcurrentSessionsShareRegistry(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
	reg := newRegistry(t, ctx)
	const runs = 8

	// --- Act ---
	dumps := make([]string, runs)
	errs := make([]error, runs)
	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var sources []source.Source
			for _, name := range []string{"a-app.yang", "b-base.yang", "c-base-part.yang", "d-types.yang"} {
				src, err := source.FromText(name, scenario[name])
				if err != nil {
					errs[i] = err
					return
				}
				sources = append(sources, src)
			}
			model, err := session.New(ctx, reg, sources).Build(ctx)
			if err != nil {
				errs[i] = err
				return
			}
			dumps[i] = testutil.Dump(model)
		}()
	}
	wg.Wait()

	// --- Assert ---
	for i := range runs {
		require.NoError(t, errs[i])
		assert.Equal(t, dumps[0], dumps[i])
	}
}

func TestBuild_LogsCarryRunID(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	logs := &testutil.SafeBuffer{}
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	src, err := source.FromText("m.yang", `module m { namespace "urn:m"; prefix m; }`)
	require.NoError(t, err)
	s := session.New(ctx, newRegistry(t, ctx), []source.Source{src})

	// --- Act ---
	_, err = s.Build(ctx)

	// --- Assert ---
	require.NoError(t, err)
	require.NotEmpty(t, s.ID())
	assert.Contains(t, logs.String(), "run_id="+s.ID())
	assert.Contains(t, logs.String(), "Effective model built.")
}

func TestBuild_LogsSourceDependencies(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	logs := &testutil.SafeBuffer{}
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	var sources []source.Source
	for _, name := range []string{"a-app.yang", "b-base.yang", "c-base-part.yang", "d-types.yang"} {
		src, err := source.FromText(name, scenario[name])
		require.NoError(t, err)
		sources = append(sources, src)
	}

	// --- Act ---
	_, err := session.New(ctx, newRegistry(t, ctx), sources).Build(ctx)

	// --- Assert ---
	require.NoError(t, err)
	out := logs.String()
	assert.Contains(t, out, `source=base depends_on=[base-part] dependents=[app]`)
	assert.Contains(t, out, `source=app depends_on="[base types]" dependents=[]`)
}

func TestBuild_OnlyOnce(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
	src, err := source.FromText("m.yang", `module m { namespace "urn:m"; prefix m; }`)
	require.NoError(t, err)
	s := session.New(ctx, newRegistry(t, ctx), []source.Source{src})
	_, err = s.Build(ctx)
	require.NoError(t, err)

	// --- Act ---
	_, err = s.Build(ctx)

	// --- Assert ---
	assert.EqualError(t, err, "session has already been built")
}

func TestBuild_CanceledContext(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler)))
	src, err := source.FromText("m.yang", `module m { namespace "urn:m"; prefix m; }`)
	require.NoError(t, err)
	s := session.New(ctx, newRegistry(t, ctx), []source.Source{src})
	cancel()

	// --- Act ---
	_, err = s.Build(ctx)

	// --- Assert ---
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_SourceGraphErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		texts   map[string]string
		wantErr string
	}{
		{
			name: "import cycle",
			texts: map[string]string{
				"a.yang": `module a { namespace "urn:a"; prefix a; import b { prefix b; } }`,
				"b.yang": `module b { namespace "urn:b"; prefix b; import a { prefix a; } }`,
			},
			wantErr: "import cycle: cycle detected involving node 'a'; 'a' depends on b",
		},
		{
			name: "module imports itself",
			texts: map[string]string{
				"a.yang": `module a { namespace "urn:a"; prefix a; import a { prefix self; } }`,
			},
			wantErr: "module 'a' depends on itself",
		},
		{
			name: "module defined twice",
			texts: map[string]string{
				"a.yang":      `module a { namespace "urn:a"; prefix a; }`,
				"a-copy.yang": `module a { namespace "urn:a2"; prefix a; }`,
			},
			wantErr: "module 'a' is defined more than once",
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
		})
	}
}
