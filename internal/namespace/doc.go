// Package namespace implements typed, scoped key-value side tables that
// thread cross-cutting facts (module identities, prefix bindings, grouping
// definitions, augment targets) through the statement tree without turning
// it into a graph.
//
// A Namespace declares a Scope. The scope decides which node's Storage a Get
// or Put actually touches, so callers always address a namespace through
// the node they stand on.
package namespace
