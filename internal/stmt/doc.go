// Package stmt is the statement context graph: the mutable, resolution-time
// counterpart of the IR tree.
//
// Every Context wraps one statement (or an implicit one the resolver had to
// synthesize), holds its parsed argument, and tracks resolution state:
// declared and effective substatements, the supported flag, copy history,
// the last phase it was declared in, and pending mutations. Ownership is a
// strict tree; everything else is recorded in namespaces.
package stmt
