// Package source replays parsed YANG documents into the statement context
// graph, one model-processing phase at a time.
//
// A Source is written four times. Each pass only emits the statements whose
// definitions the phase's vocabulary knows; anything else is skipped with its
// whole subtree and picked up by a later pass. The final pass emits
// everything and fails on keywords nobody defined. Statements are identified
// across passes by their index among their IR siblings, so a pass resumes the
// contexts the previous one created instead of creating new ones.
package source
