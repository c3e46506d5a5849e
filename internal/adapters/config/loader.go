// Package config provides the YAML manifest loader that turns a bud.yaml
// file into a set of ready-to-run globext tasks.
package config

import (
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.bud.dev/bud/internal/adapters/fscache"
	"go.bud.dev/bud/internal/adapters/shell"
	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/tasks/globext"
)

// Loader reads a bud.yaml manifest and builds its declared tasks, running
// every task's command through executor and sharing cache across them.
type Loader struct {
	Filename string
	executor *shell.Executor
	cache    *fscache.Cache
}

// NewLoader creates a Loader that reads filename.
func NewLoader(filename string, executor *shell.Executor, cache *fscache.Cache) *Loader {
	return &Loader{Filename: filename, executor: executor, cache: cache}
}

// Load reads the manifest and returns one domain.BuildTask per declared
// task, keyed by its name in the manifest's tasks map, sharing a single
// content cache across all of them.
func (l *Loader) Load() (map[string]domain.BuildTask, error) {
	data, err := os.ReadFile(l.Filename) //nolint:gosec // path is operator-provided
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var manifest Budfile
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	tasks := make(map[string]domain.BuildTask, len(manifest.Tasks))
	for name, dto := range manifest.Tasks {
		if len(dto.Cmd) == 0 {
			return nil, zerr.With(zerr.New("task has no command"), "task", name)
		}

		cmd := shellCommand(l.executor, dto.Cmd)
		tasks[name] = globext.Build(cmd, dto.SourceDir, dto.SourceExt, dto.OutputDir, dto.OutputExt,
			globext.WithContentCache(l.cache))
	}

	return tasks, nil
}
