// Package ir holds the immutable intermediate representation of a YANG
// document: a tree of statements, each made of a keyword, an optional
// argument, its substatements, and the position it was read from.
//
// The tree is produced once per document by a front-end (see package parse)
// and then replayed, phase after phase, by the statement stream source.
// Equal keywords, arguments, and strings within one document share a single
// instance through an Interner.
package ir
