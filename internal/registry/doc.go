// Package registry provides the central "glue" between statement keywords
// and the Go code that implements them.
//
// The Registry maps every core keyword to its stmt.Definition and records the
// first emission phase in which the keyword belongs to the vocabulary.
// Recognized extensions are registered by defining module and name. Bundles
// of supports implement Module and register themselves at startup, after
// which the registry is validated so that wiring mistakes surface before any
// source is read.
package registry
