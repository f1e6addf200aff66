package manifest

import (
	"io/fs"
	"path/filepath"
)

// Enumerate walks the copy source root and returns the relative paths
// (slash-separated, relative to root) of all files belonging in the copy
// manifest, in walk order.
//
// Directories whose relative path is excluded are pruned from the walk
// entirely, so nothing beneath node_modules/, dist/ or build/ is ever
// visited. Individual unreadable directories abort the walk with an
// error; the caller decides how to report it.
//
// The manifest is computed once per invocation and consumed immediately;
// it is never persisted.
func Enumerate(root string, cfg Config) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if cfg.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if cfg.Excluded(rel) {
			return nil
		}
		if cfg.MatchesFilename(d.Name()) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}
