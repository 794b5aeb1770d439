package ir

import "strings"

type argumentKey struct {
	kind   ArgumentKind
	raw    string
	column int
}

// Interner deduplicates strings, keywords, and arguments within one
// document. It is not safe for concurrent use; each front-end run owns one.
type Interner struct {
	strings   map[string]string
	keywords  map[Keyword]*Keyword
	arguments map[argumentKey]*Argument
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		strings:   make(map[string]string),
		keywords:  make(map[Keyword]*Keyword),
		arguments: make(map[argumentKey]*Argument),
	}
}

// String returns the shared instance of s.
func (in *Interner) String(s string) string {
	if v, ok := in.strings[s]; ok {
		return v
	}
	in.strings[s] = s
	return s
}

// Keyword returns the shared keyword for prefix and identifier. An empty
// prefix yields an unqualified keyword.
func (in *Interner) Keyword(prefix, identifier string) (*Keyword, error) {
	key := Keyword{prefix: prefix, identifier: identifier}
	if kw, ok := in.keywords[key]; ok {
		return kw, nil
	}
	var (
		kw  *Keyword
		err error
	)
	if prefix == "" {
		kw, err = Unqualified(in.String(identifier))
	} else {
		kw, err = Qualified(in.String(prefix), in.String(identifier))
	}
	if err != nil {
		return nil, err
	}
	in.keywords[key] = kw
	return kw, nil
}

// Argument returns the shared argument for a single fragment. The column
// only matters for double-quoted text spanning several lines, so it is not
// part of the key otherwise.
func (in *Interner) Argument(kind ArgumentKind, raw string, column int) *Argument {
	key := argumentKey{kind: kind, raw: raw}
	if kind == DoubleQuoted && strings.Contains(raw, "\n") {
		key.column = column
	}
	if a, ok := in.arguments[key]; ok {
		return a
	}
	a := newArgument(kind, in.String(raw), column)
	a.value = in.String(a.value)
	in.arguments[key] = a
	return a
}
