package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/specialistvlad/yangkit/internal/ctxlog"
	"github.com/specialistvlad/yangkit/internal/effective"
	"github.com/specialistvlad/yangkit/internal/fsutil"
	"github.com/specialistvlad/yangkit/internal/session"
	"github.com/specialistvlad/yangkit/internal/source"
	"golang.org/x/sync/errgroup"
)

// Run resolves every configured source and writes the effective model.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := a.discover()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no .yang files found")
	}
	a.logger.Info("YANG sources discovered.", "count", len(files))

	sources, err := openSources(ctx, files)
	if err != nil {
		return err
	}

	model, err := a.resolve(ctx, sources)
	if err != nil {
		return err
	}

	switch a.output {
	case OutputYAML:
		err = writeYAML(a.outW, model)
	case OutputNone:
	default:
		err = writeText(a.outW, model)
	}
	if err != nil {
		return fmt.Errorf("failed to write the effective model: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) resolve(ctx context.Context, sources []source.Source) (*effective.Model, error) {
	opts := []session.Option{session.WithFeatures(a.settings.Features)}
	if modules := a.settings.FeatureModules(); len(modules) > 0 {
		a.logger.Debug("Feature restrictions configured.", "modules", modules)
	}
	if len(a.settings.AugmentTargets) > 0 {
		opts = append(opts, session.WithAugmentTargets(a.settings.AugmentTargets...))
	}
	s := session.New(ctx, a.registry, sources, opts...)
	a.logger.Debug("Resolution session created.", "run_id", s.ID())
	return s.Build(ctx)
}

// sourceFile is a discovered document and the configured path it was
// found under.
type sourceFile struct {
	root string
	path string
}

// openSources parses files concurrently. The result keeps the order of
// files.
func openSources(ctx context.Context, files []sourceFile) ([]source.Source, error) {
	sources := make([]source.Source, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := source.Open(file.root, file.path)
			if err != nil {
				return err
			}
			sources[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// discover returns the .yang files below every configured source path,
// sorted by path. A file reachable from several paths is kept once, under
// the first of them.
func (a *App) discover() ([]sourceFile, error) {
	seen := make(map[string]bool)
	var files []sourceFile
	for _, root := range a.settings.Sources {
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", root, err)
		}
		found, err := fsutil.FindFilesByExtension(root, ".yang")
		if err != nil {
			return nil, fmt.Errorf("failed to list YANG files in %s: %w", root, err)
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, sourceFile{root: root, path: f})
			}
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	return files, nil
}
