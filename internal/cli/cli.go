package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/yangkit/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("yangc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
yangc - resolves YANG modules into their effective schema.

Usage:
  yangc [options] PATH...

Arguments:
  PATH
    A .yang file or a directory searched recursively for .yang files.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL run configuration file.")
	outputFlag := flagSet.String("output", app.OutputText, "Effective model output format. Options: 'text', 'yaml' or 'none'.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'. Overrides the configuration file; 'text' when unset.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. Overrides the configuration file; 'info' when unset.")

	var features map[string][]string
	flagSet.Func("feature", "Enable a feature as 'module:name'. Repeatable. A listed module gets exactly the listed features; 'module:' enables none.", func(v string) error {
		module, name, ok := strings.Cut(v, ":")
		if !ok || module == "" {
			return fmt.Errorf("expected 'module:name', got '%s'", v)
		}
		if features == nil {
			features = make(map[string][]string)
		}
		if _, seen := features[module]; !seen {
			features[module] = []string{}
		}
		if name != "" {
			features[module] = append(features[module], name)
		}
		return nil
	})
	var augmentTargets []string
	flagSet.Func("augment-target", "Allow augments to target this statement keyword. Repeatable. Default: every target RFC 7950 allows.", func(v string) error {
		if v == "" {
			return fmt.Errorf("empty keyword")
		}
		augmentTargets = append(augmentTargets, v)
		return nil
	})

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := flagSet.Args()
	if len(paths) == 0 && *configFlag == "" {
		slog.Debug("No paths provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "" && logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Paths:          paths,
		ConfigPath:     *configFlag,
		Output:         strings.ToLower(*outputFlag),
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		Features:       features,
		AugmentTargets: augmentTargets,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
