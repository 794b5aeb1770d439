package parse

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/yangkit/internal/diag"
	"github.com/specialistvlad/yangkit/internal/ir"
	"github.com/stretchr/testify/require"
)

const sampleModule = `// leading comment
module example {
  yang-version 1.1;
  namespace "urn:example";
  prefix ex;

  /* block
     comment */
  import other { prefix o; }

  container top {
    description
      "Spans two
       lines.";
    leaf name {
      type string;
      default 'single \n quoted';
    }
    leaf joined {
      type string;
      default "con" + 'cat' + "enated";
    }
    o:marker;
  }
}
`

// shape is a position-free view of an IR tree used for comparisons.
type shape struct {
	Keyword  string
	Argument string
	Children []shape
}

func shapeOf(st *ir.Statement) shape {
	s := shape{Keyword: st.Keyword().String(), Argument: st.RawArgument()}
	for _, c := range st.Substatements() {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

func TestParse_SampleModule(t *testing.T) {
	t.Parallel()

	// --- Act ---
	root, err := Parse("example.yang", []byte(sampleModule))

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "module", root.Keyword().String())
	require.Equal(t, "example", root.RawArgument())
	require.Equal(t, 2, root.Position().Line())
	require.Equal(t, 1, root.Position().Column())

	top := root.Find("container")
	require.NotNil(t, top)
	require.Equal(t, 11, top.Position().Line())
	require.Equal(t, 3, top.Position().Column())
	require.Equal(t, "Spans two\nlines.", top.Find("description").RawArgument())

	leaves := top.Substatements()
	require.Len(t, leaves, 4)
	require.Equal(t, `single \n quoted`, leaves[1].Find("default").RawArgument())

	joined := leaves[2].Find("default").Argument()
	require.Equal(t, ir.Concatenation, joined.Kind())
	require.Equal(t, "concatenated", joined.Value())

	marker := leaves[3]
	require.True(t, marker.Keyword().IsQualified())
	require.Equal(t, "o", marker.Keyword().Prefix())
	require.Nil(t, marker.Argument())
}

func TestParse_InternsKeywords(t *testing.T) {
	t.Parallel()

	root, err := Parse("x.yang", []byte(`module x { leaf a { type string; } leaf b { type string; } }`))
	require.NoError(t, err)

	a, b := root.Substatements()[0], root.Substatements()[1]
	require.Same(t, a.Keyword(), b.Keyword())
	require.Same(t, a.Find("type").Argument(), b.Find("type").Argument())
}

func TestParse_RoundTripThroughFormat(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	original, err := Parse("example.yang", []byte(sampleModule))
	require.NoError(t, err)

	// --- Act ---
	var buf bytes.Buffer
	require.NoError(t, ir.Format(&buf, original))
	reparsed, err := Parse("example.yang", buf.Bytes())

	// --- Assert ---
	require.NoError(t, err)
	if diff := cmp.Diff(shapeOf(original), shapeOf(reparsed)); diff != "" {
		t.Fatalf("round trip changed the tree (-original +reparsed):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		input        string
		expectedLine int
		expectedCol  int
		expectedMsg  string
	}{
		{name: "missing brace", input: "module m {\n  leaf a;\n", expectedLine: 3, expectedCol: 1, expectedMsg: "missing '}'"},
		{name: "unterminated string", input: "module m {\n  description \"abc;\n}\n", expectedLine: 2, expectedCol: 15, expectedMsg: "unterminated quoted string"},
		{name: "unterminated comment", input: "module m { /* never closed\n}", expectedLine: 1, expectedCol: 12, expectedMsg: "unterminated block comment"},
		{name: "dangling plus", input: "module m { description \"a\" + ; }", expectedLine: 1, expectedCol: 30, expectedMsg: "expected a quoted string after '+'"},
		{name: "two roots", input: "module a; module b;", expectedLine: 1, expectedCol: 11, expectedMsg: "unexpected content"},
		{name: "bad keyword", input: "module m { 9leaf a; }", expectedLine: 1, expectedCol: 12, expectedMsg: "invalid keyword"},
		{name: "missing terminator", input: "module m { leaf a b c; }", expectedLine: 1, expectedCol: 19, expectedMsg: "expected ';' or '{'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse("m.yang", []byte(tc.input))

			require.Error(t, err)
			var srcErr *diag.SourceError
			require.True(t, errors.As(err, &srcErr), "expected a SourceError, got %T", err)
			require.Equal(t, "m.yang", srcErr.Ref.Source)
			require.Equal(t, tc.expectedLine, srcErr.Ref.Line)
			require.Equal(t, tc.expectedCol, srcErr.Ref.Column)
			require.Contains(t, err.Error(), tc.expectedMsg)
		})
	}
}
