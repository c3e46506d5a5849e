package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.bud.dev/bud/internal/adapters/shell"
	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/tasks/globext"
)

// shellCommand builds a globext.Command that runs argvTemplate once per
// source file via executor, substituting "{{src}}" and "{{out}}" with that
// source's absolute path and its computed output path.
func shellCommand(executor *shell.Executor, argvTemplate []string) globext.Command {
	return func(ctx context.Context, cctx globext.CommandContext) error {
		for _, src := range cctx.Sources {
			out := filepath.Join(cctx.OutputDir, filepath.FromSlash(globext.OutputPath(src.RelPath, cctx.SourceExt, cctx.OutputExt)))
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return domain.NewIOFailureError("creating output subdirectory", err)
			}

			argv := make([]string, len(argvTemplate))
			for i, arg := range argvTemplate {
				arg = strings.ReplaceAll(arg, "{{src}}", src.AbsPath)
				arg = strings.ReplaceAll(arg, "{{out}}", out)
				argv[i] = arg
			}

			if err := executor.Run(ctx, cctx.SourceDir, argv); err != nil {
				return err
			}
		}
		return nil
	}
}
