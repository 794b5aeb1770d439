// Package scheduler provides the fixpoint engine that applies inference
// actions once the facts they depend on have been discovered.
//
// # How It Works
//
// Statement supports register actions while statements are being declared.
// Each action names the phase it belongs to and the prerequisites it waits
// for: a namespace entry that must appear, or a statement context that must
// reach a phase. Run then repeats passes over the phase's worklist:
//  1. Evaluate every pending action's prerequisites.
//  2. Apply the actions whose prerequisites are all satisfied.
//  3. Drop the actions with a prerequisite that became unavailable, after
//     notifying them.
//  4. Repeat while a pass applied something.
//  5. When a pass makes no progress, every action still pending is told
//     which prerequisites failed; what the action returns decides whether
//     the phase fails.
//
// Actions applied in a phase may register more actions, for the same phase
// or a later one. That is how chained augments resolve.
//
// # Ordering
//
// Within a phase the worklist is an unordered multiset. Nothing may depend
// on registration order; WithOrder lets tests permute each pass to prove it.
//
// # Relationship with Other Components
//
//   - **namespace:** provides prerequisites that wait for a key to be put.
//   - **stmt:** provides prerequisites that wait for a context to reach a phase.
//   - **session:** drives the phases in order and owns one Scheduler per run.
package scheduler

// Phase is a model-processing phase. Phases are strictly ordered.
type Phase int

const (
	// Init is the state before any phase has completed.
	Init Phase = iota
	PreLinkage
	Linkage
	StatementDefinition
	FullDeclaration
	EffectiveModel
)

// Phases lists every runnable phase in execution order.
var Phases = []Phase{PreLinkage, Linkage, StatementDefinition, FullDeclaration, EffectiveModel}

func (p Phase) String() string {
	switch p {
	case Init:
		return "init"
	case PreLinkage:
		return "pre-linkage"
	case Linkage:
		return "linkage"
	case StatementDefinition:
		return "statement-definition"
	case FullDeclaration:
		return "full-declaration"
	case EffectiveModel:
		return "effective-model"
	}
	return "unknown"
}

// Status is the resolution state of a prerequisite at one point in time.
type Status int

const (
	Pending Status = iota
	Satisfied
	Unavailable
)

// Prerequisite is something an action waits for.
type Prerequisite interface {
	// Status is evaluated on every scheduler pass until the action finishes.
	Status() Status
	// String describes the prerequisite for diagnostics.
	String() string
}

// Releaser is implemented by prerequisites that hold a claim on some state
// while their action is pending. Release is called exactly once when the
// action finishes, whatever the outcome.
type Releaser interface {
	Release()
}

// Action is a deferred unit of inference work. Exactly one of its methods is
// called, exactly once.
type Action interface {
	// Apply performs the action once every prerequisite is satisfied.
	Apply() error
	// PrerequisiteUnavailable reports a prerequisite that can never be met.
	PrerequisiteUnavailable(p Prerequisite) error
	// PrerequisiteFailed reports the prerequisites still pending when the
	// phase stopped making progress.
	PrerequisiteFailed(pending []Prerequisite) error
}
