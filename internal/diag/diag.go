package diag

import (
	"fmt"
)

// SourceRef points at a statement inside a source document.
type SourceRef struct {
	Source string // name of the source document, usually its path
	Line   int
	Column int
}

// IsZero reports whether the reference carries no location.
func (r SourceRef) IsZero() bool {
	return r.Source == "" && r.Line == 0 && r.Column == 0
}

// Less orders references by source, then line, then column.
func (r SourceRef) Less(o SourceRef) bool {
	if r.Source != o.Source {
		return r.Source < o.Source
	}
	if r.Line != o.Line {
		return r.Line < o.Line
	}
	return r.Column < o.Column
}

func (r SourceRef) String() string {
	if r.IsZero() {
		return "<implicit>"
	}
	return fmt.Sprintf("%s:%d:%d", r.Source, r.Line, r.Column)
}

// SourceError is a semantic error in a single statement. It is always fatal
// to the resolution run.
type SourceError struct {
	Ref SourceRef
	Msg string
	Err error
}

// Errorf creates a SourceError with a formatted message. A trailing %w verb
// is honored the same way fmt.Errorf honors it.
func Errorf(ref SourceRef, format string, args ...any) *SourceError {
	wrapped := fmt.Errorf(format, args...)
	e := &SourceError{Ref: ref, Msg: wrapped.Error()}
	if u, ok := wrapped.(interface{ Unwrap() error }); ok {
		e.Err = u.Unwrap()
	}
	return e
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s [at %s]", e.Msg, e.Ref)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// InferenceError reports a prerequisite that never became available, for
// example an augment whose target does not exist.
type InferenceError struct {
	SourceError
}

// Inferencef creates an InferenceError with a formatted message.
func Inferencef(ref SourceRef, format string, args ...any) *InferenceError {
	return &InferenceError{SourceError: *Errorf(ref, format, args...)}
}

func (e *InferenceError) Error() string {
	return "inference failed: " + e.SourceError.Error()
}

// Unwrap exposes the embedded SourceError so errors.As matches both types.
func (e *InferenceError) Unwrap() error {
	return &e.SourceError
}

// InternalError is a broken engine invariant. It is only ever raised with
// panic and never returned.
type InternalError struct {
	Msg string
}

// Internalf builds an InternalError value suitable for panic.
func Internalf(format string, args ...any) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}

func (e *InternalError) Error() string {
	return "internal invariant violated: " + e.Msg
}
