package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/specialistvlad/yangkit/internal/app"
	"github.com/specialistvlad/yangkit/internal/cli"
	"github.com/specialistvlad/yangkit/internal/hcl"
)

// main is the entrypoint for the yangc application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	errColor := color.New(color.FgRed)
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			errColor.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors; report them as a plain error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	yangApp := app.NewApp(outW, logW, appConfig, hcl.NewLoader())
	return yangApp.Run(context.Background())
}
