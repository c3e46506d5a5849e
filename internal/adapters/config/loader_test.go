package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bud.dev/bud/internal/adapters/config"
	"go.bud.dev/bud/internal/adapters/fscache"
	"go.bud.dev/bud/internal/adapters/logger"
	"go.bud.dev/bud/internal/adapters/shell"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "bud.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
version: "1"
tasks:
  copy:
    sourceDir: src
    sourceExt: .txt
    outputDir: build
    outputExt: .out
    cmd: ["cp", "{{src}}", "{{out}}"]
`)

	loader := config.NewLoader(path, shell.NewExecutor(logger.NewNoOp()), fscache.New())
	tasks, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task, ok := tasks["copy"]
	require.True(t, ok)
	assert.Equal(t, "src/**/*.txt -> build/**/*.out", task.Name())
}

func TestLoader_Load_MissingCommandErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
version: "1"
tasks:
  broken:
    sourceDir: src
    sourceExt: .txt
    outputDir: build
    outputExt: .out
`)

	loader := config.NewLoader(path, shell.NewExecutor(logger.NewNoOp()), fscache.New())
	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task has no command")
}

func TestLoader_Load_MissingFileErrors(t *testing.T) {
	loader := config.NewLoader(filepath.Join(t.TempDir(), "missing.yaml"), shell.NewExecutor(logger.NewNoOp()), fscache.New())
	_, err := loader.Load()
	require.Error(t, err)
}
