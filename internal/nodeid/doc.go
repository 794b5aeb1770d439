// internal/nodeid/doc.go

/*
Package nodeid provides the identities the resolver addresses schema nodes
with: module identities, qualified names, and schema node identifiers.

A schema node identifier is a slash-separated sequence of optionally
prefixed identifiers. An absolute identifier starts with a slash,
e.g. `/ex:top/ex:list`; a descendant identifier does not, e.g. `a/ex:b`.
The identifier grammar depends on the YANG version of the enclosing module.
*/
package nodeid
