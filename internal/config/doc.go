// Package config defines the format-agnostic run configuration: which YANG
// sources to read, which features are enabled per module, and which
// statements augments may target.
//
// Concrete loaders, such as the HCL one, live in separate packages and
// return a *Model.
package config
