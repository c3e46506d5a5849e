package globext

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.bud.dev/bud/internal/core/domain"
)

// discoverSources walks root recursively and returns every file whose name
// ends with sourceExt, sorted lexicographically on the slash-separated
// relative path so that discovery order is OS-invariant and deterministic
// (spec §4.4 "Source discovery"). A missing root is treated as "no
// sources", not an error.
func discoverSources(root, sourceExt string) ([]SourceFile, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.NewIOFailureError("discovering source files", err)
	}

	var sources []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), sourceExt) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		sources = append(sources, SourceFile{
			RelPath: filepath.ToSlash(rel),
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, domain.NewIOFailureError("discovering source files", err)
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].RelPath < sources[j].RelPath
	})

	return sources, nil
}

// OutputPath replaces sourceExt with outputExt on a source's relative path,
// preserving its subdirectory structure, per spec §4.4 "Output naming". A
// Command uses this to name each output file it writes under
// CommandContext.OutputDir.
func OutputPath(rel, sourceExt, outputExt string) string {
	base := strings.TrimSuffix(rel, sourceExt)
	return base + outputExt
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewIOFailureError("reading source file", err)
	}
	return data, nil
}
