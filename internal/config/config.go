// Package config loads and validates .peter-hook.toml configuration
// files: per-directory hook and group definitions discovered by walking
// up from a changed file toward the repository root.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// LiveFileName is the configuration filename this tool reads.
const LiveFileName = ".peter-hook.toml"

// LegacyFileName is the filename used before the rename to LiveFileName.
// The deprecation gate scans for leftover files under this name and
// refuses to run until they are renamed or removed.
const LegacyFileName = "hooks.toml"

// ExecutionStrategy controls how a group's included hooks are scheduled.
type ExecutionStrategy string

const (
	StrategySequential    ExecutionStrategy = "sequential"
	StrategyParallel      ExecutionStrategy = "parallel"
	StrategyForceParallel ExecutionStrategy = "force-parallel"
)

// ExecutionType controls how a hook's matched files are handed to its
// command.
type ExecutionType string

const (
	// ExecutionPerFile appends each matched file as a trailing argument.
	ExecutionPerFile ExecutionType = "per-file"
	// ExecutionInPlace runs the command once with no file arguments; the
	// command is expected to mutate the working tree itself.
	ExecutionInPlace ExecutionType = "in-place"
	// ExecutionOther runs the command once with no file arguments; the
	// command is expected to consume the CHANGED_FILES* template
	// variables rather than positional arguments.
	ExecutionOther ExecutionType = "other"
)

// Hook is a single runnable unit: a command plus the metadata the
// Resolver, Planner, and Executor need to decide when and how to run it.
type Hook struct {
	Command             []string          `toml:"command"`
	Description         string            `toml:"description"`
	ModifiesRepository  bool              `toml:"modifies_repository"`
	ExecutionType       ExecutionType     `toml:"execution_type"`
	Files               []string          `toml:"files"`
	RunAlways           bool              `toml:"run_always"`
	RequiresFiles       bool              `toml:"requires_files"`
	DependsOn           []string          `toml:"depends_on"`
	WorkingDir          string            `toml:"workdir"`
	Env                 map[string]string `toml:"env"`
	RunAtRoot           bool              `toml:"run_at_root"`
	TimeoutSecs         int               `toml:"timeout_seconds"`
}

// Group names an ordered list of hooks (or other groups) to run
// together, plus the strategy for scheduling them.
type Group struct {
	Includes    []string          `toml:"includes"`
	Strategy    ExecutionStrategy `toml:"execution_strategy"`
	Description string            `toml:"description"`
	// Placeholder groups declare an event name without contributing any
	// hooks of their own: they let a coordination-point config bind an
	// event without forcing every config to define real work for it.
	// Resolving a placeholder group directly always yields an empty plan,
	// regardless of its own Includes.
	Placeholder bool `toml:"placeholder"`
}

// File is one parsed .peter-hook.toml, annotated with the directory it
// was found in so the Resolver can compare directory depths.
type File struct {
	Dir    string
	Path   string
	Hooks  map[string]Hook
	Groups map[string]Group
}

// rawFile mirrors the TOML shape before hooks/groups (open maps of
// tables) are picked apart into typed values.
type rawFile struct {
	Hooks  map[string]any `toml:"hooks"`
	Groups map[string]any `toml:"groups"`
}

// Load reads and validates a single config file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw rawFile
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// Keys nested under [hooks.*]/[groups.*] decode into map[string]any
	// and are reported as undecoded by the library; parseHook/parseGroup
	// handle those, so only keys outside the two tables are unknown.
	var keys []string
	for _, k := range meta.Undecoded() {
		if len(k) > 1 && (k[0] == "hooks" || k[0] == "groups") {
			continue
		}
		keys = append(keys, k.String())
	}
	if len(keys) > 0 {
		return nil, fmt.Errorf("%s: unknown top-level key(s): %s", path, strings.Join(keys, ", "))
	}

	f := &File{
		Dir:    filepath.Dir(path),
		Path:   path,
		Hooks:  make(map[string]Hook),
		Groups: make(map[string]Group),
	}

	for name, v := range raw.Hooks {
		table, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: hooks.%s must be a table", path, name)
		}
		hook, err := parseHook(table)
		if err != nil {
			return nil, fmt.Errorf("%s: hooks.%s: %w", path, name, err)
		}
		f.Hooks[name] = hook
	}

	for name, v := range raw.Groups {
		table, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: groups.%s must be a table", path, name)
		}
		group, err := parseGroup(table)
		if err != nil {
			return nil, fmt.Errorf("%s: groups.%s: %w", path, name, err)
		}
		f.Groups[name] = group
	}

	if err := validateFile(f); err != nil {
		return nil, err
	}

	return f, nil
}

func parseHook(table map[string]any) (Hook, error) {
	var h Hook

	switch cmd := table["command"].(type) {
	case string:
		h.Command = []string{cmd}
	case []any:
		for _, part := range cmd {
			s, ok := part.(string)
			if !ok {
				return h, fmt.Errorf("command entries must be strings")
			}
			h.Command = append(h.Command, s)
		}
	case nil:
		return h, fmt.Errorf("command is required")
	default:
		return h, fmt.Errorf("command must be a string or array of strings")
	}
	if len(h.Command) == 0 {
		return h, fmt.Errorf("command must not be empty")
	}

	if v, ok := table["workdir"].(string); ok {
		h.WorkingDir = v
	}
	if v, ok := table["description"].(string); ok {
		h.Description = v
	}
	if v, ok := table["modifies_repository"].(bool); ok {
		h.ModifiesRepository = v
	}
	if v, ok := table["run_always"].(bool); ok {
		h.RunAlways = v
	}
	if v, ok := table["requires_files"].(bool); ok {
		h.RequiresFiles = v
	}
	if v, ok := table["run_at_root"].(bool); ok {
		h.RunAtRoot = v
	}
	if v, ok := table["timeout_seconds"].(int64); ok {
		h.TimeoutSecs = int(v)
	}

	h.ExecutionType = ExecutionPerFile
	if v, ok := table["execution_type"].(string); ok && v != "" {
		switch ExecutionType(v) {
		case ExecutionPerFile, ExecutionInPlace, ExecutionOther:
			h.ExecutionType = ExecutionType(v)
		default:
			return h, fmt.Errorf("invalid execution_type %q: must be %q, %q, or %q", v, ExecutionPerFile, ExecutionInPlace, ExecutionOther)
		}
	}

	if raw, ok := table["files"].([]any); ok {
		for _, v := range raw {
			s, ok := v.(string)
			if !ok {
				return h, fmt.Errorf("files entries must be strings")
			}
			h.Files = append(h.Files, s)
		}
	}
	if raw, ok := table["depends_on"].([]any); ok {
		for _, v := range raw {
			s, ok := v.(string)
			if !ok {
				return h, fmt.Errorf("depends_on entries must be strings")
			}
			h.DependsOn = append(h.DependsOn, s)
		}
	}
	if raw, ok := table["env"].(map[string]any); ok {
		h.Env = make(map[string]string, len(raw))
		for k, v := range raw {
			s, ok := v.(string)
			if !ok {
				return h, fmt.Errorf("env.%s must be a string", k)
			}
			h.Env[k] = s
		}
	}

	return h, nil
}

func parseGroup(table map[string]any) (Group, error) {
	var g Group

	if v, ok := table["placeholder"].(bool); ok {
		g.Placeholder = v
	}

	raw, ok := table["includes"].([]any)
	if !ok && !g.Placeholder {
		return g, fmt.Errorf("includes is required and must be a non-empty array")
	}
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return g, fmt.Errorf("includes entries must be strings")
		}
		g.Includes = append(g.Includes, s)
	}
	if !g.Placeholder && len(g.Includes) == 0 {
		return g, fmt.Errorf("includes is required and must be a non-empty array")
	}

	g.Strategy = StrategySequential
	if v, ok := table["execution_strategy"].(string); ok && v != "" {
		switch ExecutionStrategy(v) {
		case StrategySequential, StrategyParallel, StrategyForceParallel:
			g.Strategy = ExecutionStrategy(v)
		default:
			return g, fmt.Errorf("invalid execution_strategy %q: must be %q, %q, or %q", v, StrategySequential, StrategyParallel, StrategyForceParallel)
		}
	}
	if v, ok := table["description"].(string); ok {
		g.Description = v
	}

	return g, nil
}

func validateFile(f *File) error {
	for name, h := range f.Hooks {
		if h.TimeoutSecs < 0 {
			return fmt.Errorf("%s: hooks.%s: timeout_seconds must not be negative", f.Path, name)
		}
		if h.RunAlways && (len(h.Files) > 0 || h.RequiresFiles) {
			return fmt.Errorf("%s: hooks.%s: run_always cannot be combined with files or requires_files", f.Path, name)
		}
		for _, dep := range h.DependsOn {
			if _, ok := f.Hooks[dep]; !ok {
				return fmt.Errorf("%s: hooks.%s: depends_on references unknown hook %q", f.Path, name, dep)
			}
		}
	}
	for name := range f.Hooks {
		if cycle := findDependencyCycle(f, name, nil); cycle != nil {
			return fmt.Errorf("%s: hooks.%s: dependency cycle: %v", f.Path, name, cycle)
		}
	}
	for name, g := range f.Groups {
		for _, inc := range g.Includes {
			if inc == name {
				return fmt.Errorf("%s: groups.%s: includes itself", f.Path, name)
			}
		}
	}
	return nil
}

// findDependencyCycle walks the depends_on relation starting at name,
// returning the cycle path if one exists among visited ancestors.
func findDependencyCycle(f *File, name string, visited []string) []string {
	for _, v := range visited {
		if v == name {
			return append(append([]string{}, visited...), name)
		}
	}
	hook, ok := f.Hooks[name]
	if !ok {
		return nil
	}
	path := append(append([]string{}, visited...), name)
	for _, dep := range hook.DependsOn {
		if cycle := findDependencyCycle(f, dep, path); cycle != nil {
			return cycle
		}
	}
	return nil
}
