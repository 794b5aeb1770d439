// Package session runs one resolution: it feeds every source to the
// statement context graph phase by phase, drives the scheduler to a fixpoint
// after each phase, and freezes the result into an effective model.
//
// # How It Works
//
// A Session owns all state that is global to a run: the scheduler, the
// storage of global namespaces, and the logger tagged with the run id.
// Nothing is kept in package-level variables, so independent sessions can
// run concurrently.
//
// Build walks the phases in order:
//  1. Pre-linkage: every source writes its linkage header. Sources are then
//     ordered so that imported and included documents come first.
//  2. Linkage, statement definition and full declaration: every source
//     writes the statements the phase knows about, then the scheduler runs.
//  3. Effective model: no source is written; the scheduler resolves uses
//     and augments until nothing is pending.
//
// # Relationship with Other Components
//
//   - **source:** supplies the statement streams.
//   - **registry:** supplies the vocabulary of each phase.
//   - **yang:** the statement supports that register inference actions.
//   - **effective:** receives the resolved context graph.
package session
