package stmt

import (
	"fmt"

	"github.com/specialistvlad/yangkit/internal/scheduler"
)

// MarkPhase records that c and its whole subtree were declared in phase.
// Contexts only ever move forward.
func (c *Context) MarkPhase(phase scheduler.Phase) {
	if c.phase < phase {
		c.phase = phase
	}
	for _, s := range c.declared {
		s.MarkPhase(phase)
	}
	for _, s := range c.effective {
		s.MarkPhase(phase)
	}
}

// Reached reports whether c has completed phase: it was declared in phase
// or later and, for the phase itself, nothing is still pending to mutate c
// or a descendant.
func (c *Context) Reached(phase scheduler.Phase) bool {
	if c.phase > phase {
		return true
	}
	return c.phase == phase && c.pendingSubtree == 0
}

// HasPendingMutations reports whether an action still plans to change c's
// own substatements.
func (c *Context) HasPendingMutations() bool {
	return c.pendingOwn > 0
}

// RequirePhase returns a prerequisite satisfied once c reached phase.
func (c *Context) RequirePhase(phase scheduler.Phase) scheduler.Prerequisite {
	return scheduler.When(fmt.Sprintf("%s [at %s] reached %s", c, c.ref, phase), func() bool {
		return c.Reached(phase)
	})
}

// ClaimMutation announces that an action will add substatements to c. The
// claim holds back Reached for c and its ancestors until the scheduler
// releases it.
func (c *Context) ClaimMutation() scheduler.Prerequisite {
	c.pendingOwn++
	for p := c; p != nil; p = p.parent {
		p.pendingSubtree++
	}
	return &mutationClaim{target: c}
}

type mutationClaim struct {
	target   *Context
	released bool
}

func (m *mutationClaim) Status() scheduler.Status { return scheduler.Satisfied }
func (m *mutationClaim) String() string           { return fmt.Sprintf("mutation of %s", m.target) }

func (m *mutationClaim) Release() {
	if m.released {
		return
	}
	m.released = true
	m.target.pendingOwn--
	for p := m.target; p != nil; p = p.parent {
		p.pendingSubtree--
	}
}
