package globext_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/tasks/globext"
)

// trimCommand is a globext.Command that trims surrounding whitespace from
// each source and writes the result under the replaced extension.
func trimCommand(_ context.Context, cctx globext.CommandContext) error {
	for _, src := range cctx.Sources {
		data, err := os.ReadFile(src.AbsPath)
		if err != nil {
			return err
		}
		out := filepath.Join(cctx.OutputDir, filepath.FromSlash(globext.OutputPath(src.RelPath, cctx.SourceExt, cctx.OutputExt)))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(strings.TrimSpace(string(data))), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestTask_Name(t *testing.T) {
	task := globext.Build(trimCommand, "src", ".txt", "build", ".nospace")
	assert.Equal(t, "src/**/*.txt -> build/**/*.nospace", task.Name())
}

func TestTask_SignatureIsDeterministic(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "src", "foo.txt"), "  foo  ")

	task := globext.Build(trimCommand, "src", ".txt", "build", ".nospace")

	sig1, err := task.Signature(nil, base)
	require.NoError(t, err)
	sig2, err := task.Signature(nil, base)
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2)
	assert.Len(t, sig1, 64)
}

func TestTask_SignatureChangesWithContent(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "src", "foo.txt"), "  foo  ")

	task := globext.Build(trimCommand, "src", ".txt", "build", ".nospace")
	sig1, err := task.Signature(nil, base)
	require.NoError(t, err)

	writeFile(t, filepath.Join(base, "src", "foo.txt"), "  foo2  ")
	sig2, err := task.Signature(nil, base)
	require.NoError(t, err)

	assert.NotEqual(t, sig1, sig2)
}

func TestTask_Execute(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "src", "foo.txt"), "  foo  ")
	writeFile(t, filepath.Join(base, "src", "subdir", "bar.txt"), "  bar  ")

	task := globext.Build(trimCommand, "src", ".txt", "build", ".nospace")

	outDir := t.TempDir()
	err := task.Execute(context.Background(), domain.BuildTaskContext{
		OutputDir: outDir,
		SourceDir: base,
	})
	require.NoError(t, err)

	foo, err := os.ReadFile(filepath.Join(outDir, "foo.nospace"))
	require.NoError(t, err)
	assert.Equal(t, "foo", string(foo))

	bar, err := os.ReadFile(filepath.Join(outDir, "subdir", "bar.nospace"))
	require.NoError(t, err)
	assert.Equal(t, "bar", string(bar))
}

func TestTask_MissingSourceDirYieldsNoSources(t *testing.T) {
	base := t.TempDir()
	task := globext.Build(trimCommand, "does-not-exist", ".txt", "build", ".nospace")

	sig, err := task.Signature(nil, base)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	outDir := t.TempDir()
	err = task.Execute(context.Background(), domain.BuildTaskContext{OutputDir: outDir, SourceDir: base})
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOutputPath_PreservesSubdirectories(t *testing.T) {
	assert.Equal(t, "subdir/bar.nospace", globext.OutputPath("subdir/bar.txt", ".txt", ".nospace"))
}
