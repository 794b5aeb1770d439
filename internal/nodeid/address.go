// internal/nodeid/address.go
package nodeid

import (
	"slices"
	"strings"
)

// String serializes the identifier into its canonical textual form.
func (id *SchemaNodeID) String() string {
	if id == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range id.Path {
		if i > 0 || id.Absolute {
			sb.WriteRune('/')
		}
		if segment.Prefix != "" {
			sb.WriteString(segment.Prefix)
			sb.WriteRune(':')
		}
		sb.WriteString(segment.Name)
	}

	return sb.String()
}

// Equal checks for deep equality between two identifiers.
func (id *SchemaNodeID) Equal(other *SchemaNodeID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return id.Absolute == other.Absolute && slices.Equal(id.Path, other.Path)
}
