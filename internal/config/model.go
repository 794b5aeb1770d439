package config

import (
	"maps"
	"slices"
	"sort"
)

// Model is the run configuration of one resolution.
type Model struct {
	// Sources are files or directories holding .yang documents.
	Sources []string
	// Features maps a module name to its enabled features. A module that is
	// not listed has every feature enabled.
	Features map[string][]string
	// AugmentTargets restricts the keywords augments may target. Empty
	// means every target RFC 7950 allows.
	AugmentTargets []string
	LogLevel       string
	LogFormat      string
}

// Merge overlays other onto m: sources and augment targets are appended,
// feature lists replace those of the same module, and non-empty log
// settings win.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Sources = append(m.Sources, other.Sources...)
	m.AugmentTargets = append(m.AugmentTargets, other.AugmentTargets...)
	if len(other.Features) > 0 && m.Features == nil {
		m.Features = make(map[string][]string, len(other.Features))
	}
	maps.Copy(m.Features, other.Features)
	if other.LogLevel != "" {
		m.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		m.LogFormat = other.LogFormat
	}
}

// FeatureModules returns the modules with an explicit feature list, sorted.
func (m *Model) FeatureModules() []string {
	modules := slices.Collect(maps.Keys(m.Features))
	sort.Strings(modules)
	return modules
}
