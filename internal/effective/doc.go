// Package effective holds the immutable result of a resolution run: one
// statement tree per module and submodule, with the schema nodes of every
// statement indexed by qualified name.
//
// A Model is built once from the statement context graph after the final
// phase. Unsupported statements are left out, and no part of the model
// changes afterwards, so a Model may be shared between goroutines.
package effective
