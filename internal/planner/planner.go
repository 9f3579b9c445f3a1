// Package planner expands a selected hook or group name into an
// ordered set of execution waves: groups of hooks that run
// concurrently, waves themselves running strictly one after another.
package planner

import (
	"fmt"
	"sort"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"

	"github.com/ghm-dev/ghm/internal/config"
)

// GroupCycleError is returned when a group's includes form a cycle
// through other groups.
type GroupCycleError struct {
	Path []string
}

func (e *GroupCycleError) Error() string {
	return fmt.Sprintf("group include cycle: %v", e.Path)
}

// DependencyCycleError is returned when a wave's hooks form a cycle
// through depends_on. config.Load already rejects this at parse time,
// so this only fires if a config was constructed some other way.
type DependencyCycleError struct {
	Path []string
}

func (e *DependencyCycleError) Error() string {
	return fmt.Sprintf("hook dependency cycle: %v", e.Path)
}

// suggest returns the closest known hook/group name to want, or "" if
// nothing is close enough to be worth suggesting.
func suggest(cfg *config.File, want string) string {
	names := make([]string, 0, len(cfg.Hooks)+len(cfg.Groups))
	for n := range cfg.Hooks {
		names = append(names, n)
	}
	for n := range cfg.Groups {
		names = append(names, n)
	}
	matches := fuzzy.Find(want, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// SkipReason is one of a fixed set of tags explaining why a planned
// hook was skipped rather than run.
type SkipReason string

const (
	// SkipIncompatible applies when the hook sets requires_files=true
	// but the event can never provide a changed-file list at all.
	SkipIncompatible SkipReason = "skipped-incompatible"
	// SkipNoFiles applies when the hook sets requires_files=true, the
	// event can provide files in general, but none were available for
	// this particular run.
	SkipNoFiles SkipReason = "skipped-no-files"
	// SkipNoMatch applies when the hook has files patterns and is not
	// run_always, but no changed file matched any pattern.
	SkipNoMatch SkipReason = "skipped-no-match"
)

// PlannedHook is one hook bound into a plan, with its matched files
// already resolved so the Executor and Template Expander don't need to
// re-derive them.
type PlannedHook struct {
	Name         string
	Hook         config.Hook
	MatchedFiles []string
	Skipped      bool
	SkipReason   SkipReason
}

// Wave is a set of hooks that run concurrently.
type Wave []PlannedHook

// Plan is the ordered sequence of waves produced for one selected
// hook/group name.
type Plan struct {
	Waves []Wave
}

// Build expands name (a hook or group defined in cfg) into a Plan,
// filtering each hook's matched files against its `files` patterns and
// against the overall changed-file set. capability reports whether the
// triggering event is able to provide a changed-file list at all
// (change.CanProvideFiles); it decides between the skipped-incompatible
// and skipped-no-files skip tags.
func Build(cfg *config.File, name string, changedFiles []string, capability bool) (*Plan, error) {
	raw, err := flatten(cfg, name, nil)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Waves: make([]Wave, 0, len(raw))}
	for _, rw := range raw {
		names := rw.Names
		if !rw.ForceParallel && len(names) > 1 {
			layers, err := layerWaves(cfg, names)
			if err != nil {
				return nil, err
			}
			for _, sub := range layers {
				wave, err := buildWave(cfg, sub, changedFiles, capability)
				if err != nil {
					return nil, err
				}
				plan.Waves = append(plan.Waves, wave)
			}
			continue
		}

		wave, err := buildWave(cfg, names, changedFiles, capability)
		if err != nil {
			return nil, err
		}
		plan.Waves = append(plan.Waves, wave)
	}
	return plan, nil
}

func buildWave(cfg *config.File, names []string, changedFiles []string, capability bool) (Wave, error) {
	wave := make(Wave, 0, len(names))
	for _, hookName := range names {
		hook, ok := cfg.Hooks[hookName]
		if !ok {
			return nil, fmt.Errorf("%s: includes unknown hook or group %q", cfg.Path, hookName)
		}
		planned, err := planHook(hookName, hook, changedFiles, capability)
		if err != nil {
			return nil, err
		}
		wave = append(wave, planned)
	}
	return wave, nil
}

// layerWaves groups names into waves by Kahn's-algorithm layering: a
// wave contains every hook whose depends_on edges (restricted to the
// given set) are all satisfied by a strictly earlier wave. Within a
// layer, any modifies_repository hook is further split out into its
// own singleton wave so a mutating hook never shares a wave with
// anything else; the remaining read-only hooks in that layer share one
// concurrent wave. Ties within a layer are broken by each name's
// position in the input slice (the group's original include order)
// for determinism.
func layerWaves(cfg *config.File, names []string) ([][]string, error) {
	index := make(map[string]int, len(names))
	inSet := make(map[string]bool, len(names))
	for i, n := range names {
		index[n] = i
		inSet[n] = true
	}

	remaining := make(map[string]bool, len(names))
	for _, n := range names {
		remaining[n] = true
	}
	placed := make(map[string]bool, len(names))

	var waves [][]string
	for len(remaining) > 0 {
		var ready []string
		for n := range remaining {
			ok := true
			for _, dep := range cfg.Hooks[n].DependsOn {
				if inSet[dep] && !placed[dep] {
					ok = false
					break
				}
			}
			if ok {
				ready = append(ready, n)
			}
		}
		if len(ready) == 0 {
			// Every remaining hook is blocked on another remaining hook:
			// a cycle. config.Load already rejects this at parse time.
			var stuck []string
			for n := range remaining {
				stuck = append(stuck, n)
			}
			sort.Strings(stuck)
			return nil, &DependencyCycleError{Path: stuck}
		}
		sort.Slice(ready, func(i, j int) bool { return index[ready[i]] < index[ready[j]] })

		var readOnly []string
		for _, n := range ready {
			if cfg.Hooks[n].ModifiesRepository {
				waves = append(waves, []string{n})
			} else {
				readOnly = append(readOnly, n)
			}
			placed[n] = true
			delete(remaining, n)
		}
		if len(readOnly) > 0 {
			waves = append(waves, readOnly)
		}
	}
	return waves, nil
}

func planHook(name string, hook config.Hook, changedFiles []string, capability bool) (PlannedHook, error) {
	ph := PlannedHook{Name: name, Hook: hook}

	if len(hook.Files) == 0 {
		ph.MatchedFiles = changedFiles
		if hook.RequiresFiles && len(ph.MatchedFiles) == 0 {
			ph.Skipped = true
			if !capability {
				ph.SkipReason = SkipIncompatible
			} else {
				ph.SkipReason = SkipNoFiles
			}
		}
		return ph, nil
	}

	var globs []glob.Glob
	for _, pattern := range hook.Files {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return ph, fmt.Errorf("hook %q: invalid files pattern %q: %w", name, pattern, err)
		}
		globs = append(globs, g)
	}

	for _, f := range changedFiles {
		for _, g := range globs {
			if g.Match(f) {
				ph.MatchedFiles = append(ph.MatchedFiles, f)
				break
			}
		}
	}

	if len(ph.MatchedFiles) == 0 {
		ph.Skipped = true
		switch {
		case hook.RequiresFiles && !capability:
			ph.SkipReason = SkipIncompatible
		case hook.RequiresFiles && len(changedFiles) == 0:
			ph.SkipReason = SkipNoFiles
		default:
			ph.SkipReason = SkipNoMatch
		}
	}

	return ph, nil
}

// rawWave is one scheduling unit produced by flatten: a set of hook
// names plus whether it came from a force-parallel group (which skips
// dependency ordering and the safety split entirely).
type rawWave struct {
	Names         []string
	ForceParallel bool
}

// flatten expands name into an ordered list of rawWaves, with group
// nesting and execution strategy resolved. visited tracks the group
// names on the current expansion path to detect include cycles.
func flatten(cfg *config.File, name string, visited []string) ([]rawWave, error) {
	for _, v := range visited {
		if v == name {
			return nil, &GroupCycleError{Path: append(append([]string{}, visited...), name)}
		}
	}

	if _, ok := cfg.Hooks[name]; ok {
		return []rawWave{{Names: []string{name}}}, nil
	}

	group, ok := cfg.Groups[name]
	if !ok {
		if s := suggest(cfg, name); s != "" {
			return nil, fmt.Errorf("%s: %q is neither a hook nor a group (did you mean %q?)", cfg.Path, name, s)
		}
		return nil, fmt.Errorf("%s: %q is neither a hook nor a group", cfg.Path, name)
	}

	if group.Placeholder {
		// Contributes nothing at this level. With no cross-config
		// merging, a descendant config's own group of the same name is
		// what actually supplies hooks for files under it.
		return nil, nil
	}

	path := append(append([]string{}, visited...), name)

	switch group.Strategy {
	case config.StrategyParallel, config.StrategyForceParallel:
		var merged []string
		seen := make(map[string]bool)
		for _, inc := range group.Includes {
			waves, err := flatten(cfg, inc, path)
			if err != nil {
				return nil, err
			}
			for _, w := range waves {
				for _, h := range w.Names {
					if !seen[h] {
						seen[h] = true
						merged = append(merged, h)
					}
				}
			}
		}
		if len(merged) == 0 {
			return nil, nil
		}
		return []rawWave{{Names: merged, ForceParallel: group.Strategy == config.StrategyForceParallel}}, nil

	default: // sequential
		var waves []rawWave
		for _, inc := range group.Includes {
			sub, err := flatten(cfg, inc, path)
			if err != nil {
				return nil, err
			}
			waves = append(waves, sub...)
		}
		return waves, nil
	}
}
