package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgument_DoubleQuotedValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		column   int
		expected string
	}{
		{name: "plain", raw: "hello", column: 4, expected: "hello"},
		{name: "escapes", raw: `a\tb\nc\"d\\e`, column: 0, expected: "a\tb\nc\"d\\e"},
		{name: "unknown escape kept", raw: `a\d`, column: 0, expected: `a\d`},
		{
			name:     "indentation up to quote column is stripped",
			raw:      "first line\n               second line",
			column:   14,
			expected: "first line\nsecond line",
		},
		{
			name:     "deeper indentation is kept",
			raw:      "first\n         second",
			column:   4,
			expected: "first\n    second",
		},
		{
			name:     "trailing whitespace before newline is stripped",
			raw:      "first   \t\n  second",
			column:   1,
			expected: "first\nsecond",
		},
		{
			name:     "tab counts as eight columns",
			raw:      "first\n\tsecond",
			column:   3,
			expected: "first\n    second",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			arg := NewDoubleQuoted(tc.raw, tc.column)
			require.Equal(t, DoubleQuoted, arg.Kind())
			require.Equal(t, tc.expected, arg.Value())
		})
	}
}

func TestArgument_SingleQuotedHasNoEscapes(t *testing.T) {
	t.Parallel()

	arg := NewSingleQuoted(`a\nb`)
	require.Equal(t, `a\nb`, arg.Value())
}

func TestArgument_Concatenation(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	first := NewDoubleQuoted(`abc\n`, 10)
	second := NewSingleQuoted("def")

	// --- Act ---
	joined := NewConcatenation(first, second)

	// --- Assert ---
	require.Equal(t, Concatenation, joined.Kind())
	require.Equal(t, "abc\ndef", joined.Value())
	require.Len(t, joined.Parts(), 2)
	require.Same(t, first, NewConcatenation(first), "a single fragment is not wrapped")
}

func TestNewPosition_PicksNarrowestEncoding(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		line, col int
		expected  Position
	}{
		{line: 1, col: 1, expected: pos8{1, 1}},
		{line: 300, col: 2, expected: pos16{300, 2}},
		{line: 70000, col: 2, expected: pos32{70000, 2}},
	}
	for _, tc := range testCases {
		p := NewPosition(tc.line, tc.col)
		require.IsType(t, tc.expected, p)
		require.Equal(t, tc.line, p.Line())
		require.Equal(t, tc.col, p.Column())
	}
}

func TestInterner_SharesInstances(t *testing.T) {
	t.Parallel()

	in := NewInterner()

	kw1, err := in.Keyword("", "leaf")
	require.NoError(t, err)
	kw2, err := in.Keyword("", "leaf")
	require.NoError(t, err)
	require.Same(t, kw1, kw2)

	ext, err := in.Keyword("ex", "annotation")
	require.NoError(t, err)
	require.True(t, ext.IsQualified())
	require.Equal(t, "ex:annotation", ext.String())

	a1 := in.Argument(Unquoted, "name", 7)
	a2 := in.Argument(Unquoted, "name", 12)
	require.Same(t, a1, a2)

	_, err = in.Keyword("", "9bad")
	require.Error(t, err)
}
