package isod

import (
	"context"

	"go.bud.dev/bud/internal/adapters/logger"
	"go.bud.dev/bud/internal/adapters/telemetry"
	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/core/ports"
	"go.bud.dev/bud/internal/engine/graph"
)

// Engine drives the ISOD algorithm from spec §4.3: it converts a set of
// domain.BuildTask values into a TaskGraph, runs it, validates output-path
// disjointness across the resulting done directories, and assembles them
// into a single build directory.
//
// The zero value is not usable; construct with New.
type Engine struct {
	logger ports.Logger
	tracer ports.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger overrides the engine's logger. The default discards everything.
func WithLogger(l ports.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTracer overrides the engine's tracer. The default is a no-op.
func WithTracer(t ports.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// New creates an Engine. Without options it has no observability
// dependencies: a NoOp logger and a NoOp tracer.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: logger.NewNoOp(),
		tracer: telemetry.NewNoOpTracer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute is the engine's direct entry point (spec §6). It runs the four
// phases described in spec §4.3: graph construction, execution, validation,
// and assembly.
func (e *Engine) Execute(ctx context.Context, sourceDir, buildDir, metaDir string, tasks []domain.BuildTask) error {
	ctx, span := e.tracer.Start(ctx, "isod.Execute")
	defer span.End()

	ec, err := newBuildExecutionContext(sourceDir, buildDir, metaDir)
	if err != nil {
		span.RecordError(err)
		return err
	}

	roots := make([]*graph.Node, 0, len(tasks))
	for _, task := range tasks {
		node, err := e.getOrCreateTaskGraph(ec, task, nil)
		if err != nil {
			span.RecordError(err)
			return err
		}
		roots = append(roots, node)
	}
	root := graph.NewAggregate(roots...)

	if err := root.Run(ctx); err != nil {
		if agg, ok := err.(*graph.AggregateError); ok {
			first := agg.First()
			span.RecordError(first)
			return first
		}
		span.RecordError(err)
		return err
	}

	if err := e.validateNoOutputCollisions(ec); err != nil {
		span.RecordError(err)
		return err
	}

	if err := e.assembleBuildDir(ec); err != nil {
		span.RecordError(err)
		return err
	}

	e.logger.Info("build succeeded", "tasks", len(tasks), "buildDir", buildDir)
	return nil
}
