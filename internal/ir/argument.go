package ir

import (
	"strings"
)

// ArgumentKind tells how an argument was written in the source.
type ArgumentKind int

const (
	Unquoted ArgumentKind = iota
	SingleQuoted
	DoubleQuoted
	Concatenation
)

func (k ArgumentKind) String() string {
	switch k {
	case Unquoted:
		return "unquoted"
	case SingleQuoted:
		return "single-quoted"
	case DoubleQuoted:
		return "double-quoted"
	case Concatenation:
		return "concatenation"
	}
	return "unknown"
}

const tabWidth = 8

// Argument is the optional value of a statement. Raw holds the text between
// the quotes exactly as written; Value applies the quoting rules.
type Argument struct {
	kind   ArgumentKind
	raw    string
	column int // zero-based column of the opening quote
	parts  []*Argument
	value  string
}

func newArgument(kind ArgumentKind, raw string, column int) *Argument {
	a := &Argument{kind: kind, raw: raw, column: column}
	switch kind {
	case DoubleQuoted:
		a.value = unescape(stripIndentation(raw, column))
	default:
		a.value = raw
	}
	return a
}

// NewUnquoted returns an unquoted argument.
func NewUnquoted(text string) *Argument {
	return newArgument(Unquoted, text, 0)
}

// NewSingleQuoted returns a single-quoted argument. No escapes apply.
func NewSingleQuoted(raw string) *Argument {
	return newArgument(SingleQuoted, raw, 0)
}

// NewDoubleQuoted returns a double-quoted argument whose opening quote sat at
// the given zero-based column.
func NewDoubleQuoted(raw string, column int) *Argument {
	return newArgument(DoubleQuoted, raw, column)
}

// NewConcatenation joins quoted fragments written with '+'. A single part
// is returned unchanged.
func NewConcatenation(parts ...*Argument) *Argument {
	if len(parts) == 1 {
		return parts[0]
	}
	var b strings.Builder
	raws := make([]string, len(parts))
	for i, p := range parts {
		b.WriteString(p.value)
		raws[i] = p.raw
	}
	return &Argument{
		kind:  Concatenation,
		raw:   strings.Join(raws, ""),
		parts: parts,
		value: b.String(),
	}
}

func (a *Argument) Kind() ArgumentKind { return a.kind }
func (a *Argument) Raw() string        { return a.raw }
func (a *Argument) Parts() []*Argument { return a.parts }
func (a *Argument) Value() string      { return a.value }
func (a *Argument) String() string     { return a.value }

// stripIndentation trims whitespace before every line break, then removes
// the layout indentation of continuation lines up to and including the
// column of the opening quote. A tab counts as eight columns.
func stripIndentation(raw string, quoteColumn int) string {
	if !strings.Contains(raw, "\n") {
		return raw
	}
	lines := strings.Split(raw, "\n")
	for i := range lines {
		if i < len(lines)-1 {
			lines[i] = strings.TrimRight(lines[i], " \t\r")
		}
		if i > 0 {
			lines[i] = trimLayout(lines[i], quoteColumn+1)
		}
	}
	return strings.Join(lines, "\n")
}

func trimLayout(line string, width int) string {
	col := 0
	i := 0
	for i < len(line) && col < width {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += tabWidth
		default:
			return line[i:]
		}
		i++
	}
	if col > width {
		return strings.Repeat(" ", col-width) + line[i:]
	}
	return line[i:]
}

// unescape resolves \n, \t, \" and \\. Any other escape is kept as written.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
