package isod

// missingDependencyResultError signals an engine bug, not a user-facing
// failure: the scheduler guarantees an upstream node's result is recorded
// before any downstream node's task step runs, so this should never surface
// in practice.
type missingDependencyResultError struct{ dep string }

func (e *missingDependencyResultError) Error() string {
	return "missing recorded result for dependency " + e.dep
}

func errMissingDependencyResult(dep string) error {
	return &missingDependencyResultError{dep: dep}
}
