package scheduler

import "fmt"

// Funcs adapts plain functions to Action. A nil OnUnavailable is treated as
// a successful no-op; a nil OnFailed reports the pending prerequisites.
type Funcs struct {
	OnApply       func() error
	OnUnavailable func(p Prerequisite) error
	OnFailed      func(pending []Prerequisite) error
}

func (f Funcs) Apply() error {
	if f.OnApply == nil {
		return nil
	}
	return f.OnApply()
}

func (f Funcs) PrerequisiteUnavailable(p Prerequisite) error {
	if f.OnUnavailable == nil {
		return nil
	}
	return f.OnUnavailable(p)
}

func (f Funcs) PrerequisiteFailed(pending []Prerequisite) error {
	if f.OnFailed == nil {
		return fmt.Errorf("unresolved prerequisites %s", describe(pending))
	}
	return f.OnFailed(pending)
}

// Condition is a prerequisite backed by a function.
type Condition struct {
	Description string
	Check       func() Status
}

func (c *Condition) Status() Status { return c.Check() }
func (c *Condition) String() string { return c.Description }

// When returns a prerequisite that is satisfied once ok reports true.
func When(description string, ok func() bool) Prerequisite {
	return &Condition{Description: description, Check: func() Status {
		if ok() {
			return Satisfied
		}
		return Pending
	}}
}
