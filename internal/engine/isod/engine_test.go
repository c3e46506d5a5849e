package isod_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/engine/isod"
)

// stubTask is a minimal domain.BuildTask for exercising the engine directly,
// independent of any concrete task implementation.
type stubTask struct {
	name    string
	deps    []domain.BuildTask
	sig     string
	sigErr  error
	content string
	relPath string
	execErr error
	ran     *int
}

func (t *stubTask) Name() string                     { return t.name }
func (t *stubTask) Dependencies() []domain.BuildTask { return t.deps }

func (t *stubTask) Signature(_ []domain.BuildTaskResult, _ string) (string, error) {
	if t.sigErr != nil {
		return "", t.sigErr
	}
	return t.sig, nil
}

func (t *stubTask) Execute(_ context.Context, bctx domain.BuildTaskContext) error {
	if t.ran != nil {
		*t.ran++
	}
	if t.execErr != nil {
		return t.execErr
	}
	rel := t.relPath
	if rel == "" {
		rel = t.name + ".out"
	}
	path := filepath.Join(bctx.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(t.content), 0o644)
}

func setupDirs(t *testing.T) (sourceDir, buildDir, metaDir string) {
	t.Helper()
	base := t.TempDir()
	sourceDir = filepath.Join(base, "src")
	buildDir = filepath.Join(base, "build")
	metaDir = filepath.Join(base, ".bud")
	require.NoError(t, os.MkdirAll(sourceDir, 0o755))
	return sourceDir, buildDir, metaDir
}

func TestEngine_ExecutesAndAssembles(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	ran := 0
	task := &stubTask{name: "t1", sig: "SIG1", content: "hello", ran: &ran}

	require.NoError(t, engine.Execute(context.Background(), sourceDir, buildDir, metaDir, []domain.BuildTask{task}))

	out, err := os.ReadFile(filepath.Join(buildDir, "t1.out"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
	assert.Equal(t, 1, ran)
}

func TestEngine_CacheHitSkipsExecute(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	ran := 0
	task := &stubTask{name: "t1", sig: "SIG1", content: "hello", ran: &ran}

	ctx := context.Background()
	require.NoError(t, engine.Execute(ctx, sourceDir, buildDir, metaDir, []domain.BuildTask{task}))
	require.NoError(t, engine.Execute(ctx, sourceDir, buildDir, metaDir, []domain.BuildTask{task}))

	assert.Equal(t, 1, ran)
}

func TestEngine_AssemblesUpstreamAndDownstreamOutputs(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	upstream := &stubTask{name: "up", sig: "UP", content: "up-output"}
	downstream := &stubTask{name: "down", sig: "DOWN", content: "down-output", deps: []domain.BuildTask{upstream}}

	require.NoError(t, engine.Execute(context.Background(), sourceDir, buildDir, metaDir, []domain.BuildTask{downstream}))

	_, err := os.ReadFile(filepath.Join(buildDir, "up.out"))
	require.NoError(t, err)
	_, err = os.ReadFile(filepath.Join(buildDir, "down.out"))
	require.NoError(t, err)
}

func TestEngine_SignatureCollisionFails(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	a := &stubTask{name: "a", sig: "SAME", content: "a", relPath: "a.out"}
	b := &stubTask{name: "b", sig: "SAME", content: "b", relPath: "b.out"}

	err := engine.Execute(context.Background(), sourceDir, buildDir, metaDir, []domain.BuildTask{a, b})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSignatureCollision))
}

func TestEngine_DuplicateTaskSpecFails(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	a := &stubTask{name: "dup", sig: "SAME", content: "a", relPath: "a.out"}
	b := &stubTask{name: "dup", sig: "SAME", content: "b", relPath: "b.out"}

	err := engine.Execute(context.Background(), sourceDir, buildDir, metaDir, []domain.BuildTask{a, b})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateTaskSpec))
}

func TestEngine_OutputCollisionFails(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	a := &stubTask{name: "a", sig: "SIGA", content: "a", relPath: "shared.out"}
	b := &stubTask{name: "b", sig: "SIGB", content: "b", relPath: "shared.out"}

	err := engine.Execute(context.Background(), sourceDir, buildDir, metaDir, []domain.BuildTask{a, b})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOutputCollision))
}

func TestEngine_CycleDetected(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	a := &stubTask{name: "a", sig: "SIGA"}
	b := &stubTask{name: "b", sig: "SIGB", deps: []domain.BuildTask{a}}
	a.deps = []domain.BuildTask{b} // a -> b -> a

	err := engine.Execute(context.Background(), sourceDir, buildDir, metaDir, []domain.BuildTask{a})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCycleDetected))
}

func TestEngine_TaskExecutionFailurePropagates(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	boom := errors.New("boom")
	task := &stubTask{name: "t1", sig: "SIGA", execErr: boom}

	err := engine.Execute(context.Background(), sourceDir, buildDir, metaDir, []domain.BuildTask{task})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTaskExecutionFailed))
	assert.True(t, errors.Is(err, boom))
}

func TestEngine_DiamondSharedUpstreamRunsOnce(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	ran := 0
	shared := &stubTask{name: "shared", sig: "SHARED", content: "shared", ran: &ran}
	left := &stubTask{name: "left", sig: "LEFT", content: "left", deps: []domain.BuildTask{shared}}
	right := &stubTask{name: "right", sig: "RIGHT", content: "right", deps: []domain.BuildTask{shared}}

	require.NoError(t, engine.Execute(context.Background(), sourceDir, buildDir, metaDir, []domain.BuildTask{left, right}))
	assert.Equal(t, 1, ran)
}

func TestEngine_RerunIsIdempotent(t *testing.T) {
	sourceDir, buildDir, metaDir := setupDirs(t)
	engine := isod.New()

	task := &stubTask{name: "t1", sig: "SIG1", content: "hello"}
	donePath := filepath.Join(metaDir, ".done", "SIG1", "t1.out")

	ctx := context.Background()
	require.NoError(t, engine.Execute(ctx, sourceDir, buildDir, metaDir, []domain.BuildTask{task}))

	buildContent1, err := os.ReadFile(filepath.Join(buildDir, "t1.out"))
	require.NoError(t, err)
	doneInfo1, err := os.Stat(donePath)
	require.NoError(t, err)

	require.NoError(t, engine.Execute(ctx, sourceDir, buildDir, metaDir, []domain.BuildTask{task}))

	buildContent2, err := os.ReadFile(filepath.Join(buildDir, "t1.out"))
	require.NoError(t, err)
	doneInfo2, err := os.Stat(donePath)
	require.NoError(t, err)

	assert.Equal(t, buildContent1, buildContent2)
	assert.Equal(t, doneInfo1.ModTime(), doneInfo2.ModTime())
}
