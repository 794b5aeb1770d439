// Package dag holds the dependency graph between source documents. Edges run
// from a module to the modules and submodules it imports or includes, so a
// topological order lists every dependency before its dependents and import
// cycles are detected before linkage starts.
package dag
