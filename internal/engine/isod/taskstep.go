package isod

import (
	"context"
	"os"
	"path/filepath"

	"go.bud.dev/bud/internal/core/domain"
)

// taskStep is the action every non-aggregate graph node runs, implementing
// spec §4.3's five-step task step: gather upstream results, compute the
// signature, claim it, skip or execute, then record the result.
func (e *Engine) taskStep(ctx context.Context, ec *buildExecutionContext, task domain.BuildTask, deps []domain.BuildTask) error {
	ctx, span := e.tracer.Start(ctx, "isod.taskStep")
	defer span.End()
	span.SetAttribute("task.name", task.Name())

	depResults := make([]domain.BuildTaskResult, len(deps))
	for i, dep := range deps {
		result, ok := ec.getResult(dep)
		if !ok {
			return domain.NewIOFailureError("gathering dependency result", errMissingDependencyResult(dep.Name()))
		}
		depResults[i] = result
	}

	sig, err := task.Signature(depResults, ec.sourceDir)
	if err != nil {
		span.RecordError(err)
		return domain.NewTaskExecutionFailedError(task.Name(), err)
	}
	span.SetAttribute("task.signature", sig)

	owner := ec.claimSignature(sig, task)
	if owner != task {
		// Two distinct task instances with the same name and the same
		// signature are, in practice, duplicate specifications of the same
		// task rather than a genuine collision between unrelated tasks.
		var err error
		if owner.Name() == task.Name() {
			err = domain.NewDuplicateTaskSpecError(owner.Name(), task.Name())
		} else {
			err = domain.NewSignatureCollisionError(owner.Name(), task.Name(), sig)
		}
		span.RecordError(err)
		return err
	}

	doneDir := joinSig(ec.doneDir, sig)

	if _, statErr := os.Stat(doneDir); statErr == nil {
		span.SetAttribute("cache.hit", true)
		ec.putResult(task, domain.BuildTaskResult{
			TaskName:          task.Name(),
			Signature:         sig,
			OutputDir:         doneDir,
			DependencyResults: depResults,
		})
		return nil
	}

	span.SetAttribute("cache.hit", false)

	partialDir := joinSig(ec.partialDir, sig)
	if err := os.RemoveAll(partialDir); err != nil {
		return domain.NewIOFailureError("clearing stale partial directory", err)
	}
	if err := os.MkdirAll(partialDir, 0o755); err != nil {
		return domain.NewIOFailureError("creating partial directory", err)
	}

	execErr := task.Execute(ctx, domain.BuildTaskContext{
		OutputDir: partialDir,
		SourceDir: ec.sourceDir,
	})
	if execErr != nil {
		span.RecordError(execErr)
		e.logger.Error("task execution failed", "task", task.Name(), "error", execErr)
		return domain.NewTaskExecutionFailedError(task.Name(), execErr)
	}

	if err := publish(partialDir, doneDir); err != nil {
		return domain.NewIOFailureError("publishing task output", err)
	}

	ec.putResult(task, domain.BuildTaskResult{
		TaskName:          task.Name(),
		Signature:         sig,
		OutputDir:         doneDir,
		DependencyResults: depResults,
	})
	return nil
}

// publish renames partialDir to doneDir atomically. If doneDir appeared in
// the meantime (a racing equivalent task, or a prior run), the existing
// doneDir is authoritative per spec §9 and partialDir is discarded.
func publish(partialDir, doneDir string) error {
	if err := os.Rename(partialDir, doneDir); err != nil {
		if _, statErr := os.Stat(doneDir); statErr == nil {
			_ = os.RemoveAll(partialDir)
			return nil
		}
		return err
	}
	return nil
}

func joinSig(dir, sig string) string {
	return filepath.Join(dir, sig)
}
