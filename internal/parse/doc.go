// Package parse is the textual YANG front-end. It tokenizes a document with
// parsly matchers and builds the ir.Statement tree in a single pass.
// Malformed syntax is rejected here, before any IR exists.
package parse
