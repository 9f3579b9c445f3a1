package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// NearestConfig walks upward from dir toward repoRoot (inclusive of
// both ends) and returns the first directory that contains a live
// config file. Returns nil, nil if none is found — the caller treats
// an unconfigured file as having nothing to run.
//
// This intentionally does not merge configuration across levels: once a
// config file is found, its directory is the answer. Ancestor configs
// are irrelevant to this file's resolution.
func NearestConfig(dir, repoRoot string) (*File, error) {
	dir = filepath.Clean(dir)
	repoRoot = filepath.Clean(repoRoot)

	for {
		candidate := filepath.Join(dir, LiveFileName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		if dir == repoRoot {
			return nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// DiscoverAll walks the full repository tree and returns every live
// config file found, ordered lexicographically by directory so callers
// that need deterministic processing order (the Resolver, the
// Validator) don't have to sort themselves.
func DiscoverAll(repoRoot string) ([]*File, error) {
	var paths []string
	err := filepath.WalkDir(repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == LiveFileName {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", repoRoot, err)
	}
	sort.Strings(paths)

	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := Load(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// FindLegacy walks the repository tree looking for leftover files named
// LegacyFileName. Used by the deprecation gate: any match is fatal until
// the file is renamed or removed.
func FindLegacy(repoRoot string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == LegacyFileName {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", repoRoot, err)
	}
	sort.Strings(found)
	return found, nil
}
