// Package wiring registers all Graft nodes for the application. Importing
// it for side effects is enough to make graft.ExecuteFor resolve the full
// dependency graph.
package wiring

import (
	// Register adapter nodes.
	_ "go.bud.dev/bud/internal/adapters/fscache"
	_ "go.bud.dev/bud/internal/adapters/logger"
	_ "go.bud.dev/bud/internal/adapters/shell"
	_ "go.bud.dev/bud/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.bud.dev/bud/internal/app"
)
