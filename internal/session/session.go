package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/yangkit/internal/ctxlog"
	"github.com/specialistvlad/yangkit/internal/dag"
	"github.com/specialistvlad/yangkit/internal/effective"
	"github.com/specialistvlad/yangkit/internal/namespace"
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/source"
	"github.com/specialistvlad/yangkit/internal/stmt"
	"github.com/specialistvlad/yangkit/internal/yang"
)

// Option configures a Session.
type Option func(*Session)

// WithFeatures restricts the enabled features per module. A module listed
// here has exactly the given features enabled; other modules keep all.
func WithFeatures(features map[string][]string) Option {
	return func(s *Session) {
		s.features = features
	}
}

// WithAugmentTargets limits augments to targets with the given keywords.
func WithAugmentTargets(keywords ...string) Option {
	return func(s *Session) {
		s.augmentTargets = keywords
	}
}

// WithOrder permutes the scheduler worklist before every pass.
func WithOrder(order func(n int, swap func(i, j int))) Option {
	return func(s *Session) {
		s.schedulerOpts = append(s.schedulerOpts, scheduler.WithOrder(order))
	}
}

// Session is one resolution run over a fixed set of sources.
type Session struct {
	id        string
	registry  *registry.Registry
	sources   []source.Source
	roots     map[source.Source]*stmt.Context
	scheduler *scheduler.Scheduler
	logger    *slog.Logger
	store     namespace.Storage
	built     bool

	features       map[string][]string
	augmentTargets []string
	schedulerOpts  []scheduler.Option
}

// New prepares a session. The logger in ctx is tagged with a fresh run id.
func New(ctx context.Context, reg *registry.Registry, sources []source.Source, opts ...Option) *Session {
	id := uuid.NewString()
	_, logger := ctxlog.With(ctx, "run_id", id)
	s := &Session{
		id:       id,
		registry: reg,
		sources:  sources,
		roots:    make(map[source.Source]*stmt.Context, len(sources)),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scheduler = scheduler.New(s.schedulerOpts...)
	return s
}

// ID returns the run id.
func (s *Session) ID() string { return s.id }

// stmt.Global

func (s *Session) Scheduler() *scheduler.Scheduler { return s.scheduler }
func (s *Session) Logger() *slog.Logger            { return s.logger }

func (s *Session) Definition(kind stmt.Kind) *stmt.Definition {
	return s.registry.Definition(kind)
}

// namespace.Node

func (s *Session) Storage() *namespace.Storage      { return &s.store }
func (s *Session) ParentNode() namespace.Node       { return nil }
func (s *Session) RootNode() namespace.Node         { return s }
func (s *Session) SourceParentNode() namespace.Node { return nil }
func (s *Session) GlobalNode() namespace.Node       { return s }
func (s *Session) OriginalNode() namespace.Node     { return nil }

// Build resolves every source and returns the effective model. A session
// builds at most once.
func (s *Session) Build(ctx context.Context) (*effective.Model, error) {
	if s.built {
		return nil, errors.New("session has already been built")
	}
	s.built = true
	ctx = ctxlog.WithLogger(ctx, s.logger)

	if err := s.publishSettings(); err != nil {
		return nil, err
	}
	ext := yang.NewExtensionResolver(s.registry)

	for _, phase := range scheduler.Phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Debug("Starting phase.", "phase", phase.String(), "sources", len(s.sources))
		if phase != scheduler.EffectiveModel {
			for _, src := range s.sources {
				if err := s.write(src, phase, ext); err != nil {
					return nil, err
				}
			}
		}
		for _, root := range s.orderedRoots() {
			root.MarkPhase(phase)
		}
		if err := s.scheduler.Run(ctx, phase); err != nil {
			return nil, err
		}

		switch phase {
		case scheduler.PreLinkage:
			if err := s.orderSources(); err != nil {
				return nil, err
			}
		case scheduler.FullDeclaration:
			for _, root := range s.orderedRoots() {
				root.ResolveSupport()
			}
		}
	}

	model, err := effective.Build(s.orderedRoots())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Effective model built.", "modules", len(model.Modules()), "submodules", len(model.Submodules()))
	return model, nil
}

func (s *Session) publishSettings() error {
	for module, names := range s.features {
		if err := yang.EnabledFeatures.Put(s, module, yang.NewNameSet(names...)); err != nil {
			return fmt.Errorf("failed to publish enabled features of module '%s': %w", module, err)
		}
	}
	if len(s.augmentTargets) > 0 {
		if err := yang.AugmentTargets.Put(s, struct{}{}, yang.NewNameSet(s.augmentTargets...)); err != nil {
			return fmt.Errorf("failed to publish augment targets: %w", err)
		}
	}
	return nil
}

func (s *Session) write(src source.Source, phase scheduler.Phase, ext source.Extensions) error {
	root := s.roots[src]
	w := stmt.NewTreeWriter(s, phase, src.Name(), root)
	var err error
	switch phase {
	case scheduler.PreLinkage:
		err = src.WritePreLinkage(w, s.registry)
	case scheduler.Linkage:
		err = src.WriteLinkage(w, s.registry)
	case scheduler.StatementDefinition:
		err = src.WriteLinkageAndStatementDefinitions(w, s.registry, ext, root.Version())
	case scheduler.FullDeclaration:
		err = src.WriteFull(w, s.registry, ext, root.Version())
	}
	if err != nil {
		return err
	}
	if root == nil {
		s.roots[src] = w.Root()
	}
	return nil
}

// orderSources sorts the sources so that every document comes after the
// documents it imports or includes.
func (s *Session) orderSources() error {
	g := dag.New()
	byName := make(map[string]source.Source, len(s.sources))
	for _, src := range s.sources {
		name := src.Identifier().Name
		if other, dup := byName[name]; dup {
			return fmt.Errorf("'%s' is defined by both %s and %s", name, other.Name(), src.Name())
		}
		byName[name] = src
		g.AddNode(name)
	}
	for _, src := range s.sources {
		name := src.Identifier().Name
		for _, dep := range src.Dependencies() {
			if _, ok := byName[dep]; !ok {
				continue
			}
			if err := g.AddEdge(dep, name); err != nil {
				return fmt.Errorf("module '%s' depends on itself: %w", name, err)
			}
		}
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			deps, _ := g.Dependencies(cycle.Node)
			return fmt.Errorf("import cycle: %w; '%s' depends on %s", err, cycle.Node, strings.Join(deps, ", "))
		}
		return fmt.Errorf("import cycle: %w", err)
	}

	sorted := make([]source.Source, 0, len(order))
	for _, name := range order {
		sorted = append(sorted, byName[name])
		deps, _ := g.Dependencies(name)
		dependents, _ := g.Dependents(name)
		s.logger.Debug("Source ordered.", "source", name, "depends_on", deps, "dependents", dependents)
	}
	s.sources = sorted
	s.logger.Debug("Sources ordered.", "order", order)
	return nil
}

func (s *Session) orderedRoots() []*stmt.Context {
	roots := make([]*stmt.Context, 0, len(s.sources))
	for _, src := range s.sources {
		if root, ok := s.roots[src]; ok {
			roots = append(roots, root)
		}
	}
	return roots
}
