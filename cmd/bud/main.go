// Package main is the entry point for the bud build tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"go.bud.dev/bud/cmd/bud/commands"
	"go.bud.dev/bud/internal/app"
	_ "go.bud.dev/bud/internal/wiring" //nolint:depguard // registers graft nodes via init()
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// The logger isn't available if wiring itself failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components)
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err.Error())
		return 1
	}
	return 0
}
