package isod

import (
	"context"
	"strings"

	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/engine/graph"
)

// getOrCreateTaskGraph builds the graph.Node for task, memoising by task
// identity in ec.taskToGraph so a task reachable via multiple parents (a
// diamond dependency) becomes a single shared node. path carries the chain
// of tasks currently being recursed into, in order, so a cycle can be
// reported with the offending chain.
func (e *Engine) getOrCreateTaskGraph(ec *buildExecutionContext, task domain.BuildTask, path []domain.BuildTask) (*graph.Node, error) {
	if node, ok := ec.taskToGraph[task]; ok {
		return node, nil
	}

	for _, seen := range path {
		if seen == task {
			return nil, domain.NewCycleError(cyclePath(append(path, task)))
		}
	}

	nextPath := append(path, task)

	deps := task.Dependencies()
	upstream := make([]*graph.Node, 0, len(deps))
	for _, dep := range deps {
		depNode, err := e.getOrCreateTaskGraph(ec, dep, nextPath)
		if err != nil {
			return nil, err
		}
		upstream = append(upstream, depNode)
	}

	node := graph.New(func(ctx context.Context) error {
		return e.taskStep(ctx, ec, task, deps)
	}, upstream...)

	ec.taskToGraph[task] = node
	return node, nil
}

func cyclePath(path []domain.BuildTask) string {
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = t.Name()
	}
	return strings.Join(names, " -> ")
}
