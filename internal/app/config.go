package app

import (
	"errors"
	"fmt"
)

// Output formats of the effective model dump.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputNone = "none"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths      []string // .yang files or directories
	ConfigPath string   // optional HCL run configuration

	Output         string
	LogFormat      string
	LogLevel       string
	Features       map[string][]string
	AugmentTargets []string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 && cfg.ConfigPath == "" {
		return nil, errors.New("at least one YANG path or a configuration file is required")
	}
	switch cfg.Output {
	case "":
		cfg.Output = OutputText
	case OutputText, OutputYAML, OutputNone:
	default:
		return nil, fmt.Errorf("invalid output format '%s': must be '%s', '%s' or '%s'", cfg.Output, OutputText, OutputYAML, OutputNone)
	}
	if cfg.LogLevel != "" {
		if _, err := parseLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
