package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustKeyword(t *testing.T, prefix, id string) *Keyword {
	t.Helper()
	kw, err := NewInterner().Keyword(prefix, id)
	require.NoError(t, err)
	return kw
}

func TestFormat(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p := NewPosition(1, 1)
	tree := NewStatement(mustKeyword(t, "", "container"), NewUnquoted("c"), p,
		NewStatement(mustKeyword(t, "", "description"), NewDoubleQuoted(`two "words"`, 0), p),
		NewStatement(mustKeyword(t, "", "presence"), NewSingleQuoted("x;y"), p),
		NewStatement(mustKeyword(t, "ex", "flag"), nil, p),
	)

	// --- Act ---
	var buf bytes.Buffer
	err := Format(&buf, tree)

	// --- Assert ---
	require.NoError(t, err)
	expected := "container c {\n" +
		"  description \"two \\\"words\\\"\";\n" +
		"  presence \"x;y\";\n" +
		"  ex:flag;\n" +
		"}\n"
	require.Equal(t, expected, buf.String())
}
