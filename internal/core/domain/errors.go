package domain

import "fmt"

// Sentinel errors identifying the error kinds from spec §7. Every error
// constructed below unwraps to exactly one of these kinds (plus, for
// NewTaskExecutionFailedError, the original cause), so callers can branch on
// kind without parsing message text.
var (
	// ErrInvalidArgument is raised by malformed task parameters or by the
	// hex codec on malformed input.
	ErrInvalidArgument = &sentinel{"invalid argument"}

	// ErrCycleDetected is raised when the task graph has a dependency cycle.
	ErrCycleDetected = &sentinel{"cycle detected in task graph"}

	// ErrDuplicateTaskSpec is raised when two distinct task instances in the
	// same build have the same name and produce the same signature — almost
	// always two copies of the same specification.
	ErrDuplicateTaskSpec = &sentinel{"clashing build specification"}

	// ErrSignatureCollision is raised when two distinct tasks with different
	// names claim the same signature via the signature-ownership map.
	ErrSignatureCollision = &sentinel{"tasks are clashing: same signature"}

	// ErrOutputCollision is raised during validation when two tasks' done
	// directories contain the same relative output path.
	ErrOutputCollision = &sentinel{"tasks are clashing: same output file"}

	// ErrTaskExecutionFailed wraps an error raised by a task's Execute.
	ErrTaskExecutionFailed = &sentinel{"task execution failed"}

	// ErrIOFailure wraps a filesystem operation failure in the engine.
	ErrIOFailure = &sentinel{"io failure"}
)

// sentinel is a plain, comparable error kind marker.
type sentinel struct{ msg string }

func (s *sentinel) Error() string { return s.msg }

// messageError carries a message whose exact text is part of the stable,
// test-asserted contract in spec §6, while still unwrapping to its error
// kind so errors.Is(err, ErrDuplicateTaskSpec) etc. keeps working. Several
// error-context libraries (including the teacher's zerr) compose a new
// message on top of the wrapped error's own text; spec's message formats
// must come through verbatim, so these are built directly rather than via
// zerr's generic Wrap/With.
type messageError struct {
	msg   string
	kind  error
	cause error
}

func (e *messageError) Error() string { return e.msg }

// Unwrap exposes the error kind and, when there is one, the wrapped cause.
func (e *messageError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// NewInvalidArgumentError builds an ErrInvalidArgument with the given exact
// message text (used by the hex codec, whose messages are stable per spec
// §6).
func NewInvalidArgumentError(msg string) error {
	return &messageError{msg: msg, kind: ErrInvalidArgument}
}

// NewDuplicateTaskSpecError builds the stable "Clashing build
// specification" message for two tasks sharing a signature whose names are
// identical (the common case: two copies of the same specification).
func NewDuplicateTaskSpecError(nameA, nameB string) error {
	return &messageError{
		msg:  fmt.Sprintf("Clashing build specification. Found duplicate tasks: '%s' and '%s'.", nameA, nameB),
		kind: ErrDuplicateTaskSpec,
	}
}

// NewSignatureCollisionError builds the stable "same signature" clash
// message for two distinct tasks that computed an identical signature.
func NewSignatureCollisionError(nameA, nameB, signature string) error {
	return &messageError{
		msg:  fmt.Sprintf("Tasks '%s' and '%s' are clashing. They have the same signature '%s'.", nameA, nameB, signature),
		kind: ErrSignatureCollision,
	}
}

// NewOutputCollisionError builds the stable "same output file" clash
// message for two tasks whose done directories both claim relPath.
func NewOutputCollisionError(nameA, nameB, relPath string) error {
	return &messageError{
		msg:  fmt.Sprintf("Tasks '%s' and '%s' are clashing. They produced the same file '%s'.", nameA, nameB, relPath),
		kind: ErrOutputCollision,
	}
}

// NewCycleError builds an ErrCycleDetected naming the offending cycle path.
func NewCycleError(cyclePath string) error {
	return &messageError{
		msg:  fmt.Sprintf("Cycle detected in task graph: %s", cyclePath),
		kind: ErrCycleDetected,
	}
}

// NewTaskExecutionFailedError wraps a task's own Execute error, preserving
// it via Unwrap so callers can still inspect the original cause.
func NewTaskExecutionFailedError(taskName string, cause error) error {
	return &messageError{
		msg:   fmt.Sprintf("task %q execution failed: %v", taskName, cause),
		kind:  ErrTaskExecutionFailed,
		cause: cause,
	}
}

// NewIOFailureError wraps a filesystem error with the operation that failed.
func NewIOFailureError(op string, cause error) error {
	return &messageError{
		msg:  fmt.Sprintf("io failure during %s: %v", op, cause),
		kind: ErrIOFailure,
	}
}
