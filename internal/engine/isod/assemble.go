package isod

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.bud.dev/bud/internal/core/domain"
)

// assembleBuildDir implements spec §4.3 step 5: wipe buildDir if present,
// then overlay every referenced done directory's tree into it. Collision
// freedom was already established by validateNoOutputCollisions, so overlay
// order has no observable effect on the result; signatures are still
// visited in sorted order to keep file creation order deterministic.
func (e *Engine) assembleBuildDir(ec *buildExecutionContext) error {
	if _, err := os.Stat(ec.buildDir); err == nil {
		if err := os.RemoveAll(ec.buildDir); err != nil {
			return domain.NewIOFailureError("removing stale build directory", err)
		}
	}
	if err := os.MkdirAll(ec.buildDir, 0o755); err != nil {
		return domain.NewIOFailureError("creating build directory", err)
	}

	sigs := ec.snapshotSignatures()
	sort.Strings(sigs)

	for _, sig := range sigs {
		doneDir := joinSig(ec.doneDir, sig)
		if err := copyTree(doneDir, ec.buildDir); err != nil {
			return domain.NewIOFailureError("assembling build directory", err)
		}
	}
	return nil
}

// copyTree copies every file under src into dst, preserving the relative
// directory structure and each file's modification time.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
