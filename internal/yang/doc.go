// Package yang implements the RFC 7950 statements on top of the statement
// context graph.
//
// Every core keyword gets a stmt.Support. Supports parse arguments into
// typed values and, once a statement was declared in a phase, publish facts
// into namespaces or register inference actions with the scheduler:
//
//   - pre-linkage: module and submodule identities, own prefixes.
//   - linkage: imports, includes, and belongs-to are bound.
//   - statement definition: extensions become known keywords.
//   - full declaration: features, groupings, implicit input and output,
//     if-feature evaluation.
//   - effective model: uses expansion and augment resolution.
//
// The augment resolution engine lives in augment.go.
package yang
