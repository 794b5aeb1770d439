// Package app contains the core application logic. It wires the run
// configuration, the statement registry, and a resolution session together
// and prints the resulting effective model, decoupled from any specific
// entrypoint like a CLI.
package app
