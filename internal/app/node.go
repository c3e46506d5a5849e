package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.bud.dev/bud/internal/adapters/fscache" //nolint:depguard // wired in app layer
	"go.bud.dev/bud/internal/adapters/logger"  //nolint:depguard // wired in app layer
	"go.bud.dev/bud/internal/adapters/shell"   //nolint:depguard // wired in app layer
	"go.bud.dev/bud/internal/adapters/telemetry"
	"go.bud.dev/bud/internal/core/ports"
)

// ComponentsNodeID is the unique identifier for the Components Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.TracerNodeID,
			shell.NodeID,
			fscache.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[*shell.Executor](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[*fscache.Cache](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				Logger:   log,
				Tracer:   tracer,
				Executor: executor,
				Cache:    cache,
			}, nil
		},
	})
}
