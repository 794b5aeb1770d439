package ir

import (
	"fmt"
	"regexp"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

// IsIdentifier reports whether s satisfies the YANG identifier grammar.
func IsIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// Keyword identifies a statement. An unqualified keyword names a core
// language statement, a qualified one (prefix:identifier) an extension.
type Keyword struct {
	prefix     string
	identifier string
}

// Unqualified returns the keyword of a core statement.
func Unqualified(identifier string) (*Keyword, error) {
	if !IsIdentifier(identifier) {
		return nil, fmt.Errorf("invalid keyword '%s'", identifier)
	}
	return &Keyword{identifier: identifier}, nil
}

// Qualified returns the keyword of an extension statement.
func Qualified(prefix, identifier string) (*Keyword, error) {
	if !IsIdentifier(prefix) {
		return nil, fmt.Errorf("invalid keyword prefix '%s'", prefix)
	}
	if !IsIdentifier(identifier) {
		return nil, fmt.Errorf("invalid keyword '%s:%s'", prefix, identifier)
	}
	return &Keyword{prefix: prefix, identifier: identifier}, nil
}

func (k *Keyword) Prefix() string     { return k.prefix }
func (k *Keyword) Identifier() string { return k.identifier }
func (k *Keyword) IsQualified() bool  { return k.prefix != "" }

func (k *Keyword) String() string {
	if k.prefix == "" {
		return k.identifier
	}
	return k.prefix + ":" + k.identifier
}
