package app

import (
	"go.bud.dev/bud/internal/adapters/fscache"
	"go.bud.dev/bud/internal/adapters/shell"
	"go.bud.dev/bud/internal/core/ports"
)

// Components holds the CLI's shared adapters, wired once at startup and
// reused across every command invocation. The ISOD engine itself never
// depends on Components; it is only how the CLI layer assembles the
// adapters a manifest loader and its commands need.
type Components struct {
	Logger   ports.Logger
	Tracer   ports.Tracer
	Executor *shell.Executor
	Cache    *fscache.Cache
}
