// internal/nodeid/types.go
package nodeid

import "fmt"

// Version is the YANG language version a module declares.
type Version int

const (
	Version1 Version = iota
	Version11
)

// ParseVersion converts a yang-version argument.
func ParseVersion(raw string) (Version, error) {
	switch raw {
	case "1":
		return Version1, nil
	case "1.1":
		return Version11, nil
	}
	return Version1, fmt.Errorf("unsupported yang-version '%s'", raw)
}

func (v Version) String() string {
	if v == Version11 {
		return "1.1"
	}
	return "1"
}

// ModuleID identifies a module: its namespace URI and optional revision.
// Name is carried for diagnostics.
type ModuleID struct {
	Name      string
	Namespace string
	Revision  string
}

func (m ModuleID) String() string {
	if m.Revision == "" {
		return m.Name
	}
	return m.Name + "@" + m.Revision
}

// QName is a name qualified by the module that defines it.
type QName struct {
	Module ModuleID
	Name   string
}

// NewQName binds name to module.
func NewQName(module ModuleID, name string) QName {
	return QName{Module: module, Name: name}
}

func (q QName) String() string {
	if q.Module.Revision == "" {
		return fmt.Sprintf("(%s)%s", q.Module.Namespace, q.Name)
	}
	return fmt.Sprintf("(%s?revision=%s)%s", q.Module.Namespace, q.Module.Revision, q.Name)
}

// PathSegment is one step of a schema node identifier, e.g. `ex:top`.
type PathSegment struct {
	Prefix string // empty when unprefixed
	Name   string
}

// NewPathSegment creates an unprefixed segment.
func NewPathSegment(name string) PathSegment {
	return PathSegment{Name: name}
}

// NewPrefixedPathSegment creates a segment with a prefix.
func NewPrefixedPathSegment(prefix, name string) PathSegment {
	return PathSegment{Prefix: prefix, Name: name}
}

// HasPrefix returns true if the segment carries an explicit prefix.
func (ps PathSegment) HasPrefix() bool {
	return ps.Prefix != ""
}

// SchemaNodeID is the parsed form of a schema node identifier.
type SchemaNodeID struct {
	Absolute bool
	Path     []PathSegment
}
