package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/yangkit/internal/ctxlog"
	"github.com/specialistvlad/yangkit/internal/diag"
)

type entry struct {
	seq     int
	action  Action
	prereqs []Prerequisite
}

// status folds the entry's prerequisites into one. The first unavailable
// prerequisite is returned alongside Unavailable.
func (e *entry) status() (Status, Prerequisite) {
	result := Satisfied
	for _, p := range e.prereqs {
		switch p.Status() {
		case Unavailable:
			return Unavailable, p
		case Pending:
			result = Pending
		}
	}
	return result, nil
}

func (e *entry) pending() []Prerequisite {
	var out []Prerequisite
	for _, p := range e.prereqs {
		if p.Status() != Satisfied {
			out = append(out, p)
		}
	}
	return out
}

func (e *entry) release() {
	for _, p := range e.prereqs {
		if r, ok := p.(Releaser); ok {
			r.Release()
		}
	}
}

// Scheduler is the per-run fixpoint engine. It is single-threaded and must
// not be shared between resolution runs.
type Scheduler struct {
	completed Phase
	pending   map[Phase][]*entry
	seq       int
	order     func(n int, swap func(i, j int))
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithOrder installs a permutation applied to the worklist before every
// pass, e.g. rand.Shuffle. The result of a run must not depend on it.
func WithOrder(order func(n int, swap func(i, j int))) Option {
	return func(s *Scheduler) {
		s.order = order
	}
}

// New creates an idle scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		completed: Init,
		pending:   make(map[Phase][]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Completed returns the last phase Run finished.
func (s *Scheduler) Completed() Phase {
	return s.completed
}

// Pending returns the number of actions waiting in phase.
func (s *Scheduler) Pending(phase Phase) int {
	return len(s.pending[phase])
}

// Register queues action for phase. Registering for a phase that already
// completed is an engine bug and panics.
func (s *Scheduler) Register(phase Phase, action Action, prereqs ...Prerequisite) {
	if phase <= s.completed {
		panic(diag.Internalf("action registered for completed phase %s (last completed %s)", phase, s.completed))
	}
	s.seq++
	s.pending[phase] = append(s.pending[phase], &entry{seq: s.seq, action: action, prereqs: prereqs})
}

// Run drives phase to its fixpoint. Phases must be run in order, each
// exactly once.
func (s *Scheduler) Run(ctx context.Context, phase Phase) error {
	if phase != s.completed+1 {
		panic(diag.Internalf("phase %s cannot run after %s", phase, s.completed))
	}
	logger := ctxlog.FromContext(ctx).With("phase", phase.String())

	for pass := 1; len(s.pending[phase]) > 0; pass++ {
		work := s.pending[phase]
		s.pending[phase] = nil
		if s.order != nil {
			s.order(len(work), func(i, j int) { work[i], work[j] = work[j], work[i] })
		}

		var stalled []*entry
		applied := 0
		for i, e := range work {
			status, unavailable := e.status()
			var err error
			switch status {
			case Satisfied:
				err = e.action.Apply()
			case Unavailable:
				err = e.action.PrerequisiteUnavailable(unavailable)
			default:
				stalled = append(stalled, e)
				continue
			}
			applied++
			e.release()
			if err != nil {
				s.abort(append(stalled, work[i+1:]...))
				return err
			}
		}
		logger.Debug("Scheduler pass finished.", "pass", pass, "applied", applied, "stalled", len(stalled))

		s.pending[phase] = append(stalled, s.pending[phase]...)
		if applied == 0 {
			if err := s.fail(ctx, phase); err != nil {
				return err
			}
		}
	}

	s.completed = phase
	logger.Debug("Phase completed.")
	return nil
}

// fail notifies every stalled action of phase and returns their errors,
// ordered by message so the report does not depend on worklist order.
func (s *Scheduler) fail(ctx context.Context, phase Phase) error {
	stalled := s.pending[phase]
	s.pending[phase] = nil
	sort.Slice(stalled, func(i, j int) bool { return stalled[i].seq < stalled[j].seq })

	var errs []error
	for _, e := range stalled {
		pending := e.pending()
		ctxlog.FromContext(ctx).Debug("Action stalled.", "phase", phase.String(), "prerequisites", describe(pending))
		if err := e.action.PrerequisiteFailed(pending); err != nil {
			errs = append(errs, err)
		}
		e.release()
	}
	if len(errs) == 0 {
		return nil
	}
	s.abort(nil)
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// abort releases the given entries and everything still queued.
func (s *Scheduler) abort(rest []*entry) {
	for _, e := range rest {
		e.release()
	}
	for phase, entries := range s.pending {
		for _, e := range entries {
			e.release()
		}
		delete(s.pending, phase)
	}
}

func describe(prereqs []Prerequisite) string {
	parts := make([]string, len(prereqs))
	for i, p := range prereqs {
		parts[i] = p.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
