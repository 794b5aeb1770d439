// Package hcl loads the run configuration from an HCL file into the
// format-agnostic config.Model.
//
// Expressions are evaluated with an `env` object holding the process
// environment and a few string functions, so paths can be written as
// "${env.YANG_HOME}/models".
package hcl
