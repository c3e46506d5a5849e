// Package app implements the high-level entry point spec §6 calls RunBuild:
// it fills in the defaults around isod.Engine.Execute so a caller only has
// to provide the tasks it wants built.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.bud.dev/bud/internal/adapters/logger"
	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/engine/isod"
)

// RunBuild drives tasks through the ISOD engine, defaulting baseDir to the
// current working directory and metaDir to baseDir/.bud when not given.
// stdout receives the build's log output.
func RunBuild(ctx context.Context, tasks []domain.BuildTask, stdout io.Writer, baseDir string, metaDir ...string) error {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return domain.NewIOFailureError("resolving working directory", err)
		}
		baseDir = wd
	}

	meta := filepath.Join(baseDir, ".bud")
	if len(metaDir) > 0 && metaDir[0] != "" {
		meta = metaDir[0]
	}

	buildDir := filepath.Join(baseDir, "build")

	engine := isod.New(isod.WithLogger(logger.NewWithWriter(stdout)))
	return engine.Execute(ctx, baseDir, buildDir, meta, tasks)
}
