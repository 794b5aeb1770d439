package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration file at path.
	Load(ctx context.Context, path string) (*Model, error)
}
