package resolver

import "path/filepath"

// dirOf returns the absolute directory containing the repo-root-relative
// file path rel.
func dirOf(rel, repoRoot string) string {
	return filepath.Dir(filepath.Join(repoRoot, rel))
}
