package ir

import (
	"bufio"
	"io"
	"strings"
)

// Format writes st back as YANG text. Quoting and whitespace are
// normalized, so the output is equivalent to, not identical with, the
// document st was read from.
func Format(w io.Writer, st *Statement) error {
	bw := bufio.NewWriter(w)
	writeStatement(bw, st, 0)
	return bw.Flush()
}

func writeStatement(w *bufio.Writer, st *Statement, depth int) {
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(st.keyword.String())
	if st.argument != nil {
		w.WriteByte(' ')
		w.WriteString(quote(st.argument.Value()))
	}
	if len(st.children) == 0 {
		w.WriteString(";\n")
		return
	}
	w.WriteString(" {\n")
	for _, c := range st.children {
		writeStatement(w, c, depth+1)
	}
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString("}\n")
}

// quote leaves s bare when it is a valid unquoted token and double-quotes
// it otherwise.
func quote(s string) string {
	if isBareToken(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareToken(s string) bool {
	if s == "" || strings.Contains(s, "//") || strings.Contains(s, "/*") {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n;{}'\"+")
}
