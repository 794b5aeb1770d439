package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/yangkit/internal/effective"
	"github.com/specialistvlad/yangkit/internal/stmt"
	"github.com/stretchr/testify/require"
)

// RequireNode returns the schema node at path, written with module names as
// in effective.Model.Find, and fails the test when it is missing.
func RequireNode(t *testing.T, model *effective.Model, path string) *effective.Statement {
	t.Helper()
	node, ok := model.Find(path)
	require.True(t, ok, "schema node %s not found in:\n%s", path, Dump(model))
	return node
}

// RequireNoNode fails the test when a schema node exists at path.
func RequireNoNode(t *testing.T, model *effective.Model, path string) {
	t.Helper()
	_, ok := model.Find(path)
	require.False(t, ok, "unexpected schema node %s in:\n%s", path, Dump(model))
}

// ChildNames returns the names of the schema node children of s, in order.
func ChildNames(s *effective.Statement) []string {
	var names []string
	for _, child := range s.SchemaChildren() {
		q, _ := child.QName()
		names = append(names, q.Name)
	}
	return names
}

// Count returns how many substatements of s have kind.
func Count(s *effective.Statement, kind stmt.Kind) int {
	n := 0
	for _, sub := range s.Substatements() {
		if sub.Kind() == kind {
			n++
		}
	}
	return n
}

// Dump renders the model one statement per line, with copy history and
// implicit markers, for comparisons and failure messages.
func Dump(model *effective.Model) string {
	if model == nil {
		return "<nil model>"
	}
	var b strings.Builder
	for _, m := range model.Modules() {
		dump(&b, m, 0)
	}
	for _, m := range model.Submodules() {
		dump(&b, m, 0)
	}
	return b.String()
}

func dump(b *strings.Builder, s *effective.Statement, depth int) {
	fmt.Fprintf(b, "%s%s", strings.Repeat("  ", depth), s)
	if s.IsImplicit() {
		b.WriteString(" (implicit)")
	}
	if h := s.History(); !h.IsOriginal() {
		fmt.Fprintf(b, " (%s)", h)
	}
	b.WriteByte('\n')
	for _, sub := range s.Substatements() {
		dump(b, sub, depth+1)
	}
}
