package testutil

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"testing"

	"github.com/specialistvlad/yangkit/internal/ctxlog"
	"github.com/specialistvlad/yangkit/internal/effective"
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/session"
	"github.com/specialistvlad/yangkit/internal/source"
	"github.com/specialistvlad/yangkit/internal/yang"
	"github.com/stretchr/testify/require"
)

// BuildResult holds the outcome of resolving in-memory sources.
type BuildResult struct {
	Model     *effective.Model
	Err       error
	LogOutput string
}

// Build resolves YANG texts keyed by source name through a fresh session,
// without touching the file system. Sources are handed to the session in
// name order. Texts that fail to parse fail the test.
func Build(t *testing.T, texts map[string]string, opts ...session.Option) *BuildResult {
	t.Helper()
	return BuildWith(t, texts, nil, opts...)
}

// BuildWith is Build with extra statement modules registered next to the
// core bundle.
func BuildWith(t *testing.T, texts map[string]string, modules []registry.Module, opts ...session.Option) *BuildResult {
	t.Helper()

	names := make([]string, 0, len(texts))
	for name := range texts {
		names = append(names, name)
	}
	sort.Strings(names)

	sources := make([]source.Source, 0, len(names))
	for _, name := range names {
		src, err := source.FromText(name, texts[name])
		require.NoError(t, err, "source %s does not parse", name)
		sources = append(sources, src)
	}

	reg := registry.New()
	yang.Bundle{}.Register(reg)
	for _, mod := range modules {
		mod.Register(reg)
	}

	logBuffer := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)
	require.NoError(t, reg.ValidateRegistry(ctx))

	t.Cleanup(func() {
		if os.Getenv("YANGKIT_TEST_LOGS") == "1" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	model, err := session.New(ctx, reg, sources, opts...).Build(ctx)
	return &BuildResult{Model: model, Err: err, LogOutput: logBuffer.String()}
}

// MustBuild is Build for scenarios expected to resolve.
func MustBuild(t *testing.T, texts map[string]string, opts ...session.Option) *effective.Model {
	t.Helper()
	result := Build(t, texts, opts...)
	require.NoError(t, result.Err, "resolution failed; logs:\n%s", result.LogOutput)
	return result.Model
}

// Shuffled returns a session option that permutes the scheduler worklist
// with a seeded generator, for order-independence tests.
func Shuffled(seed int64) session.Option {
	rng := rand.New(rand.NewSource(seed))
	return session.WithOrder(rng.Shuffle)
}
