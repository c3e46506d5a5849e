package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.bud.dev/bud/internal/adapters/config"
	"go.bud.dev/bud/internal/adapters/logger"
	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/engine/isod"
)

// RunOptions controls where Run reads its manifest from and where a build's
// outputs and metadata land.
type RunOptions struct {
	ManifestPath string
	BaseDir      string
	MetaDir      string
}

// Run loads targetNames from a bud.yaml manifest (every declared task when
// targetNames is empty) and drives them through the ISOD engine, wired with
// a logger writing to stdout and this Components' tracer.
func (c *Components) Run(ctx context.Context, targetNames []string, opts RunOptions, stdout io.Writer) error {
	loader := config.NewLoader(opts.ManifestPath, c.Executor, c.Cache)
	all, err := loader.Load()
	if err != nil {
		return err
	}

	tasks, err := selectTasks(all, targetNames)
	if err != nil {
		return err
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return domain.NewIOFailureError("resolving working directory", err)
		}
		baseDir = wd
	}

	metaDir := opts.MetaDir
	if metaDir == "" {
		metaDir = filepath.Join(baseDir, ".bud")
	}
	buildDir := filepath.Join(baseDir, "build")

	engine := isod.New(isod.WithLogger(logger.NewWithWriter(stdout)), isod.WithTracer(c.Tracer))
	return engine.Execute(ctx, baseDir, buildDir, metaDir, tasks)
}

// selectTasks resolves targetNames against the manifest's declared tasks.
// When targetNames is empty it returns every declared task, sorted by name
// for determinism.
func selectTasks(all map[string]domain.BuildTask, targetNames []string) ([]domain.BuildTask, error) {
	if len(targetNames) == 0 {
		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)

		tasks := make([]domain.BuildTask, len(names))
		for i, name := range names {
			tasks[i] = all[name]
		}
		return tasks, nil
	}

	tasks := make([]domain.BuildTask, 0, len(targetNames))
	for _, name := range targetNames {
		task, ok := all[name]
		if !ok {
			return nil, domain.NewInvalidArgumentError(fmt.Sprintf("unknown target %q", name))
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
