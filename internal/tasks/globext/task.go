// Package globext implements the glob-to-extension task: it transforms
// every file matching sourceDir/**/*.sourceExt into a sibling file under
// outputDir/**/*.outputExt by invoking a user-supplied Command.
package globext

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/zeebo/blake3"

	"go.bud.dev/bud/internal/adapters/fscache"
	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/engine/isod/hexcodec"
)

// signatureVersion tags this task class's signature-formation rules. Bump
// it whenever the fields or encoding fed into Signature change, so that an
// algorithm change always invalidates the existing cache (spec §9
// "Signature algorithm identity").
const signatureVersion = "globext/v1"

// Task is a domain.BuildTask that transforms sourceDir/**/*.sourceExt into
// outputDir/**/*.outputExt.
type Task struct {
	command   Command
	sourceDir string
	sourceExt string
	outputDir string
	outputExt string
	sources   []string // optional override of the default glob discovery
	cache     *fscache.Cache
}

var _ domain.BuildTask = (*Task)(nil)

// Option customizes a Task beyond Build's required parameters.
type Option func(*Task)

// WithSources overrides the default glob discovery with an explicit list of
// source-relative paths (slash-separated, relative to sourceDir).
func WithSources(sources []string) Option {
	return func(t *Task) { t.sources = sources }
}

// WithContentCache shares a fscache.Cache across every task in a build, so
// that two tasks reading overlapping source trees (spec §4.4's permitted
// outputExt overlap) do not each re-read the same files. Each task still
// hashes the contents itself.
func WithContentCache(cache *fscache.Cache) Option {
	return func(t *Task) { t.cache = cache }
}

// Build constructs a glob-to-ext task. sourceDir and outputDir are
// interpreted relative to the build's source root (the sourceDir argument
// ISOD's Execute ultimately receives).
func Build(command Command, sourceDir, sourceExt, outputDir, outputExt string, opts ...Option) *Task {
	t := &Task{
		command:   command,
		sourceDir: filepath.ToSlash(sourceDir),
		sourceExt: sourceExt,
		outputDir: filepath.ToSlash(outputDir),
		outputExt: outputExt,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns this task's display name, per spec §4.4: "<sourceDir>/**/*<sourceExt> -> <outputDir>/**/*<outputExt>".
func (t *Task) Name() string {
	return fmt.Sprintf("%s/**/*%s -> %s/**/*%s", t.sourceDir, t.sourceExt, t.outputDir, t.outputExt)
}

// Dependencies returns nil: glob-to-ext tasks are leaves that read directly
// from the build's source tree.
func (t *Task) Dependencies() []domain.BuildTask { return nil }

func (t *Task) resolvedSourceDir(buildSourceDir string) string {
	return filepath.Join(buildSourceDir, filepath.FromSlash(t.sourceDir))
}

func (t *Task) listSources(buildSourceDir string) ([]SourceFile, error) {
	root := t.resolvedSourceDir(buildSourceDir)

	if len(t.sources) == 0 {
		return discoverSources(root, t.sourceExt)
	}

	sources := make([]SourceFile, len(t.sources))
	for i, rel := range t.sources {
		sources[i] = SourceFile{
			RelPath: filepath.ToSlash(rel),
			AbsPath: filepath.Join(root, filepath.FromSlash(rel)),
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].RelPath < sources[j].RelPath })
	return sources, nil
}

// Signature digests, in a fixed order: the signature version, sourceDir,
// sourceExt, outputDir, outputExt, and every source file's relative path
// followed by its contents, in sorted order — per spec §4.4 "Signature
// computation".
func (t *Task) Signature(_ []domain.BuildTaskResult, buildSourceDir string) (string, error) {
	sources, err := t.listSources(buildSourceDir)
	if err != nil {
		return "", err
	}

	h := blake3.New()
	writeField(h, signatureVersion)
	writeField(h, t.sourceDir)
	writeField(h, t.sourceExt)
	writeField(h, t.outputDir)
	writeField(h, t.outputExt)

	for _, src := range sources {
		writeField(h, src.RelPath)
		contents, err := t.readFile(src.AbsPath)
		if err != nil {
			return "", err
		}
		h.Write(contents)
	}

	sum := h.Sum(nil)
	return hexcodec.Encode(sum)
}

// Execute invokes the user-supplied command with the discovered source set.
func (t *Task) Execute(ctx context.Context, bctx domain.BuildTaskContext) error {
	sources, err := t.listSources(bctx.SourceDir)
	if err != nil {
		return err
	}

	return t.command(ctx, CommandContext{
		SourceDir: t.resolvedSourceDir(bctx.SourceDir),
		OutputDir: bctx.OutputDir,
		SourceExt: t.sourceExt,
		OutputExt: t.outputExt,
		Sources:   sources,
	})
}

func (t *Task) readFile(path string) ([]byte, error) {
	if t.cache != nil {
		return t.cache.ReadFile(path)
	}
	return readFile(path)
}

func writeField(h *blake3.Hasher, s string) {
	h.Write([]byte(s))
	h.Write([]byte{0})
}
