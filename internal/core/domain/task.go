// Package domain contains the core abstractions of the ISOD build engine:
// the BuildTask capability, the context a task runs against, and the result
// it produces once it has run (or been skipped because its signature was
// already cached).
package domain

import "context"

// BuildTask is a named unit of work that declares its upstream tasks,
// computes a cryptographic signature over everything that affects its
// output, and writes its output into a directory handed to it by the
// engine.
//
// Implementations must be safe to call Signature and Execute on from a
// single goroutine per build (the engine never calls either concurrently
// for the same task), but a task may be reached from multiple downstream
// tasks, so Name and Dependencies must be stable and side-effect free.
type BuildTask interface {
	// Name identifies the task for diagnostics and error messages; the
	// done/partial store is keyed by signature, not by Name. It need not be
	// unique across unrelated builds, but two
	// distinct tasks in the same build must not collide on Name in a way
	// that hides a real clash (the engine detects that separately, by
	// signature and by output path).
	Name() string

	// Dependencies returns the task's upstream tasks, in a stable order.
	// The engine builds one graph node per distinct BuildTask (by identity)
	// reachable from the requested set, regardless of how many downstream
	// tasks share it.
	Dependencies() []BuildTask

	// Signature computes a digest of everything that affects this task's
	// output: input file bytes, upstream signatures (carried in deps, in
	// the same order as Dependencies), any environment the task consults,
	// and an algorithm-identifying constant for the task's own class. The
	// returned string must be a safe filesystem directory name (hex or
	// base64url) and must be deterministic across processes and hosts for
	// identical inputs.
	//
	// sourceDir is the build's source root (the same value Execute will
	// receive in BuildTaskContext.SourceDir) — it is available before the
	// task's output directory exists, since signature computation always
	// precedes execution.
	Signature(deps []BuildTaskResult, sourceDir string) (string, error)

	// Execute writes this task's outputs into bctx.OutputDir, reading
	// whatever it needs from bctx.SourceDir. The directory handed to
	// Execute is fresh and empty; Execute must not write outside it.
	Execute(ctx context.Context, bctx BuildTaskContext) error
}

// BuildTaskContext is handed to BuildTask.Execute. OutputDir is a fresh,
// empty directory (the task's partial directory) that Execute must write
// its complete output set into. SourceDir is the root of the build's input
// tree.
type BuildTaskContext struct {
	OutputDir string
	SourceDir string
}

// BuildTaskResult is produced exactly once per task per build, either by
// running Execute or by finding the signature's done directory already
// present. It is what downstream tasks see in their Signature's deps
// argument.
type BuildTaskResult struct {
	TaskName          string
	Signature         string
	OutputDir         string
	DependencyResults []BuildTaskResult
}
