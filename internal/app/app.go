package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/yangkit/internal/config"
	"github.com/specialistvlad/yangkit/internal/ctxlog"
	"github.com/specialistvlad/yangkit/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	settings *config.Model
	output   string
}

// NewApp is the constructor for the main application. The effective model
// is written to outW and logs to logW. Configuration and registry errors
// are fatal startup errors and panic.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings := &config.Model{}
	if appConfig.ConfigPath != "" {
		loaded, err := loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		settings.Merge(loaded)
		logger.Debug("Configuration file loaded.", "path", appConfig.ConfigPath)

		// The file may ask for a different log setup than the flags did.
		if (appConfig.LogLevel == "" && settings.LogLevel != "") || (appConfig.LogFormat == "" && settings.LogFormat != "") {
			logger = newLogger(firstNonEmpty(appConfig.LogLevel, settings.LogLevel), firstNonEmpty(appConfig.LogFormat, settings.LogFormat), logW)
			ctx = ctxlog.WithLogger(context.Background(), logger)
		}
	}
	settings.Merge(&config.Model{
		Sources:        appConfig.Paths,
		Features:       appConfig.Features,
		AugmentTargets: appConfig.AugmentTargets,
	})

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All statement modules registered.", "count", len(modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error, so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		settings: settings,
		output:   appConfig.Output,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Settings returns the merged run configuration.
func (a *App) Settings() *config.Model {
	return a.settings
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
