package fscache

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the content cache Graft node.
const NodeID graft.ID = "adapter.content_cache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Cache, error) {
			return New(), nil
		},
	})
}
