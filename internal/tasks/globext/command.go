package globext

import "context"

// SourceFile is one discovered input file, with its path relative to the
// task's sourceDir (slash-separated, OS-invariant).
type SourceFile struct {
	// RelPath is the file's path relative to sourceDir, using "/" as the
	// separator regardless of host OS.
	RelPath string
	// AbsPath is the file's absolute path on disk.
	AbsPath string
}

// CommandContext is handed to a Command: everything it needs to transform
// Sources into outputs under OutputDir.
type CommandContext struct {
	// SourceDir is the absolute path to this task's source root.
	SourceDir string
	// OutputDir is the fresh, empty directory the command must write into
	// (the task's partial directory, per domain.BuildTaskContext).
	OutputDir string
	// SourceExt is the extension OutputPath strips from each source's
	// relative path.
	SourceExt string
	// OutputExt is the extension (including the leading dot) each source
	// file's output counterpart must use.
	OutputExt string
	// Sources is every discovered source file, in deterministic order.
	Sources []SourceFile
}

// Command performs the actual per-source transformation. It is expected to
// write, for every entry in cctx.Sources, a file at
// filepath.Join(cctx.OutputDir, OutputPath(src.RelPath, cctx.SourceExt, cctx.OutputExt)).
type Command func(ctx context.Context, cctx CommandContext) error
