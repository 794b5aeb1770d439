// Package diag defines the diagnostics every resolution error carries: a
// source reference (document identity, line, column) and the three error
// families the engine distinguishes between.
package diag
