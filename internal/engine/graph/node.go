// Package graph implements the minimal DAG executor that the ISOD engine
// layers its task-step actions on top of: every node runs its action
// exactly once, after all of its upstream nodes have finished, with
// independent nodes running concurrently.
package graph

import (
	"context"
	"sync"
)

// Action is a unit of work a Node performs once all of its upstream Nodes
// have completed successfully.
type Action func(ctx context.Context) error

// Node is one vertex in a TaskGraph. Two nodes are constructed via New (a
// work node with an Action) or NewAggregate (a fan-in node with no Action
// of its own, used as the synthetic root over a set of requested tasks).
//
// A Node reached via multiple paths (a diamond dependency) must be the same
// *Node pointer at every reaching path — Node itself does not deduplicate
// by any kind of identity; that is the caller's job (see isod's
// getOrCreateTaskGraph, which memoises by BuildTask identity).
type Node struct {
	action   Action
	upstream []*Node

	once sync.Once
	done chan struct{}
	err  error
}

// New creates a work node: action runs after every node in upstream has
// completed successfully.
func New(action Action, upstream ...*Node) *Node {
	return &Node{
		action:   action,
		upstream: upstream,
		done:     make(chan struct{}),
	}
}

// NewAggregate creates a no-op fan-in node over upstream. It is used as the
// synthetic root over all of a build's requested tasks; its own "action" is
// simply to wait for all upstream nodes.
func NewAggregate(upstream ...*Node) *Node {
	return New(nil, upstream...)
}

// Run executes the subgraph reachable from n: n's action (if any) runs
// after every node in the subgraph has run its own action exactly once,
// with independent nodes running concurrently. On failure, Run returns an
// *AggregateError wrapping every distinct inner error observed in the
// reachable subgraph, in discovery order, with the first one recoverable
// via AggregateError.First.
func (n *Node) Run(ctx context.Context) error {
	n.start(ctx)
	<-n.done
	if n.err == nil {
		return nil
	}
	if agg, ok := n.err.(*AggregateError); ok {
		return agg
	}
	return &AggregateError{Errs: []error{n.err}}
}

// start launches n's goroutine at most once (via sync.Once), regardless of
// how many parents call start on the same shared Node — this is what makes
// diamond dependencies safe and what memoises "each node runs at most once".
func (n *Node) start(ctx context.Context) {
	n.once.Do(func() {
		go n.run(ctx)
	})
}

func (n *Node) run(ctx context.Context) {
	defer close(n.done)

	for _, up := range n.upstream {
		up.start(ctx)
	}

	var upstreamErrs []error
	seen := make(map[error]bool)
	for _, up := range n.upstream {
		<-up.done
		if up.err == nil {
			continue
		}
		for _, e := range flatten(up.err) {
			if !seen[e] {
				seen[e] = true
				upstreamErrs = append(upstreamErrs, e)
			}
		}
	}

	if len(upstreamErrs) > 0 {
		n.err = &AggregateError{Errs: upstreamErrs}
		return
	}

	if n.action == nil {
		return
	}

	if err := n.action(ctx); err != nil {
		n.err = err
	}
}

// flatten expands an *AggregateError into its leaf errors so that an error
// observed through two different diamond paths is reported once, in the
// order it was first observed, rather than nested arbitrarily deep.
func flatten(err error) []error {
	if agg, ok := err.(*AggregateError); ok {
		return agg.Errs
	}
	return []error{err}
}
