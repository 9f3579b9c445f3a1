// Package resolver groups changed files by the nearest configuration
// directory that governs them. Unlike an earlier version of this tool,
// configuration is never merged across directory levels — the nearest
// config file alone determines what runs for a file beneath it.
package resolver

import (
	"fmt"
	"sort"

	"github.com/ghm-dev/ghm/internal/config"
)

// Group is one config file's share of the overall change set: the
// config itself plus the subset of changed files that resolved to it.
type Group struct {
	Config *config.File
	Files  []string
}

// GroupFilesByConfig resolves each file in files against its nearest
// config directory and groups them accordingly. Files that resolve to
// no config at all are silently dropped — nothing is configured to run
// on them. Groups are returned in lexicographic order of their config
// directory so callers get a deterministic processing order.
func GroupFilesByConfig(repoRoot string, files []string) ([]Group, error) {
	byDir := make(map[string]*Group)

	for _, rel := range files {
		dir := dirOf(rel, repoRoot)
		cfg, err := config.NearestConfig(dir, repoRoot)
		if err != nil {
			return nil, fmt.Errorf("resolve config for %s: %w", rel, err)
		}
		if cfg == nil {
			continue
		}
		g, ok := byDir[cfg.Dir]
		if !ok {
			g = &Group{Config: cfg}
			byDir[cfg.Dir] = g
		}
		g.Files = append(g.Files, rel)
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	groups := make([]Group, 0, len(dirs))
	for _, d := range dirs {
		groups = append(groups, *byDir[d])
	}
	return groups, nil
}

// ResolveForRepoRoot resolves the single nearest config governing the
// repository root itself, used when an event has no changed files to
// group by (e.g. a manual `ghm run` with no matching files) but hooks
// without `files`/`requires_files` should still be considered.
func ResolveForRepoRoot(repoRoot string) (*config.File, error) {
	return config.NearestConfig(repoRoot, repoRoot)
}
