package graph

import "strings"

// AggregateError collects every distinct inner error observed while running
// a subgraph. First recovers the earliest one observed, which is what
// spec.md's Execute unwraps to surface to its caller.
type AggregateError struct {
	Errs []error
}

// Error implements error.
func (e *AggregateError) Error() string {
	if len(e.Errs) == 0 {
		return "graph: no error"
	}
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is/As traverse every collected error.
func (e *AggregateError) Unwrap() []error {
	return e.Errs
}

// First returns the first observed inner error.
func (e *AggregateError) First() error {
	if len(e.Errs) == 0 {
		return nil
	}
	return e.Errs[0]
}
