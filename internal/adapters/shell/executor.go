// Package shell provides the process-launcher adapter that a globext.Command
// uses to invoke external programs (compilers, code generators, file
// processors), per spec §1's "CLI/process launcher" external collaborator.
package shell

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"go.bud.dev/bud/internal/core/ports"
)

// Executor runs a command line with its stdout/stderr streamed to a logger.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates an Executor that streams command output to logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run executes argv[0] with argv[1:] as arguments, inheriting the process
// environment, in workDir.
func (e *Executor) Run(ctx context.Context, workDir string, argv []string) error {
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // caller-controlled command
	cmd.Dir = workDir
	cmd.Env = os.Environ()
	cmd.Stdout = &logWriter{logger: e.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: e.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "command failed"), "argv", argv)
	}
	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(line)
		}
	}
	return len(p), nil
}
