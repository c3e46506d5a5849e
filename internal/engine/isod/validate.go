package isod

import (
	"io/fs"
	"path/filepath"
	"sort"

	"go.bud.dev/bud/internal/core/domain"
)

// validateNoOutputCollisions implements spec §4.3 step 4: for every
// executed-or-skipped task's done directory, enumerate its files relative
// to that directory and fail as soon as two distinct tasks claim the same
// relative path. Signatures are visited in sorted order so that, for a
// given input set, the reported collision is reproducible across runs.
func (e *Engine) validateNoOutputCollisions(ec *buildExecutionContext) error {
	sigs := ec.snapshotSignatures()
	sort.Strings(sigs)

	relPathToTask := make(map[string]domain.BuildTask)

	for _, sig := range sigs {
		task := ec.taskForSignature(sig)
		doneDir := joinSig(ec.doneDir, sig)

		relPaths, err := listFiles(doneDir)
		if err != nil {
			return domain.NewIOFailureError("enumerating done directory", err)
		}
		sort.Strings(relPaths)

		for _, rel := range relPaths {
			if owner, ok := relPathToTask[rel]; ok && owner != task {
				return domain.NewOutputCollisionError(owner.Name(), task.Name(), rel)
			}
			relPathToTask[rel] = task
		}
	}

	return nil
}

// listFiles returns every regular file under root, as slash-separated
// paths relative to root.
func listFiles(root string) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rels, nil
}
