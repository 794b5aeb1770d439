// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single segment, e.g. `name` or `prefix:name`.
var segmentRegex = regexp.MustCompile(`^(?:([A-Za-z_][A-Za-z0-9_.\-]*):)?([A-Za-z_][A-Za-z0-9_.\-]*)$`)

// isValidIdentifier applies the version-specific restrictions on top of
// the shared identifier grammar. YANG 1 reserves identifiers starting with
// "xml" in any case.
func isValidIdentifier(name string, v Version) bool {
	if v == Version1 && len(name) >= 3 && strings.EqualFold(name[:3], "xml") {
		return false
	}
	return true
}

// ParseIdentifier checks a plain identifier, such as the name of a schema
// node, under the grammar of the given YANG version.
func ParseIdentifier(raw string, v Version) (string, error) {
	matches := segmentRegex.FindStringSubmatch(raw)
	if matches == nil || matches[1] != "" {
		return "", fmt.Errorf("invalid identifier %q", raw)
	}
	if !isValidIdentifier(raw, v) {
		return "", fmt.Errorf("identifier %q is not allowed in YANG %s", raw, v)
	}
	return raw, nil
}

// Parse creates a SchemaNodeID from its textual form under the grammar of
// the given YANG version.
func Parse(rawID string, v Version) (*SchemaNodeID, error) {
	if rawID == "" {
		return nil, fmt.Errorf("schema node identifier cannot be empty")
	}

	id := &SchemaNodeID{}
	body := rawID
	if strings.HasPrefix(rawID, "/") {
		id.Absolute = true
		body = rawID[1:]
	}

	for _, segmentStr := range strings.Split(body, "/") {
		segmentStr = strings.TrimSpace(segmentStr)
		if segmentStr == "" {
			return nil, fmt.Errorf("schema node identifier %q contains an empty segment", rawID)
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return nil, fmt.Errorf("invalid schema node identifier segment: %q", segmentStr)
		}

		prefix, name := matches[1], matches[2]
		if !isValidIdentifier(name, v) || (prefix != "" && !isValidIdentifier(prefix, v)) {
			return nil, fmt.Errorf("identifier %q is not allowed in YANG %s", segmentStr, v)
		}
		id.Path = append(id.Path, PathSegment{Prefix: prefix, Name: name})
	}

	return id, nil
}

// ParseAbsolute parses rawID and rejects descendant identifiers.
func ParseAbsolute(rawID string, v Version) (*SchemaNodeID, error) {
	id, err := Parse(rawID, v)
	if err != nil {
		return nil, err
	}
	if !id.Absolute {
		return nil, fmt.Errorf("schema node identifier %q must be absolute", rawID)
	}
	return id, nil
}

// ParseDescendant parses rawID and rejects absolute identifiers.
func ParseDescendant(rawID string, v Version) (*SchemaNodeID, error) {
	id, err := Parse(rawID, v)
	if err != nil {
		return nil, err
	}
	if id.Absolute {
		return nil, fmt.Errorf("schema node identifier %q must be a descendant path", rawID)
	}
	return id, nil
}
