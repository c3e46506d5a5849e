// Package isod implements the Isolated Signed Output Directories execution
// engine: it turns a set of domain.BuildTask values into a TaskGraph,
// executes it, enforces signature uniqueness and output-path disjointness,
// and assembles the done directories into a single build tree.
package isod

import (
	"os"
	"path/filepath"
	"sync"

	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/engine/graph"
)

// buildExecutionContext holds the per-Execute-call state described in
// spec §3: the three directory roots, the single-threaded task→graph
// memoisation table built during graph construction, and the two
// concurrent tables written during execution.
type buildExecutionContext struct {
	sourceDir string
	buildDir  string
	metaDir   string

	doneDir    string
	partialDir string

	// taskToGraph memoises BuildTask identity -> graph node during the
	// single-threaded graph-construction phase. Never touched again once
	// execution starts.
	taskToGraph map[domain.BuildTask]*graph.Node

	resultsMu  sync.Mutex
	taskToResult map[domain.BuildTask]domain.BuildTaskResult

	sigMu           sync.Mutex
	signatureToTask map[string]domain.BuildTask
}

// newBuildExecutionContext creates the .done and .partial directories under
// metaDir and returns a fresh, empty execution context.
func newBuildExecutionContext(sourceDir, buildDir, metaDir string) (*buildExecutionContext, error) {
	doneDir := filepath.Join(metaDir, ".done")
	partialDir := filepath.Join(metaDir, ".partial")

	if err := os.MkdirAll(doneDir, 0o755); err != nil {
		return nil, domain.NewIOFailureError("creating done directory", err)
	}
	if err := os.MkdirAll(partialDir, 0o755); err != nil {
		return nil, domain.NewIOFailureError("creating partial directory", err)
	}

	return &buildExecutionContext{
		sourceDir:       sourceDir,
		buildDir:        buildDir,
		metaDir:         metaDir,
		doneDir:         doneDir,
		partialDir:      partialDir,
		taskToGraph:     make(map[domain.BuildTask]*graph.Node),
		taskToResult:    make(map[domain.BuildTask]domain.BuildTaskResult),
		signatureToTask: make(map[string]domain.BuildTask),
	}, nil
}

// putResult records task's result. Called at most once per task, by the
// node that executed or skipped it.
func (c *buildExecutionContext) putResult(task domain.BuildTask, result domain.BuildTaskResult) {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()
	c.taskToResult[task] = result
}

// getResult returns task's recorded result. Only valid to call after task's
// graph node has finished, which the scheduler guarantees for downstream
// callers.
func (c *buildExecutionContext) getResult(task domain.BuildTask) (domain.BuildTaskResult, bool) {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()
	result, ok := c.taskToResult[task]
	return result, ok
}

// claimSignature implements the first-writer-wins getOrAdd: the first task
// to claim sig owns it; every later claimant gets the original owner back
// so the caller can detect the collision.
func (c *buildExecutionContext) claimSignature(sig string, task domain.BuildTask) domain.BuildTask {
	c.sigMu.Lock()
	defer c.sigMu.Unlock()

	if existing, ok := c.signatureToTask[sig]; ok {
		return existing
	}
	c.signatureToTask[sig] = task
	return task
}

// snapshotSignatures returns a copy of the signature -> task table's keys,
// in no particular order; the validation and assembly phases sort it
// themselves so they iterate deterministically per spec §4.3 step 4.
func (c *buildExecutionContext) snapshotSignatures() []string {
	c.sigMu.Lock()
	defer c.sigMu.Unlock()

	sigs := make([]string, 0, len(c.signatureToTask))
	for sig := range c.signatureToTask {
		sigs = append(sigs, sig)
	}
	return sigs
}

func (c *buildExecutionContext) taskForSignature(sig string) domain.BuildTask {
	c.sigMu.Lock()
	defer c.sigMu.Unlock()
	return c.signatureToTask[sig]
}
