package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/change"
	"github.com/ghm-dev/ghm/internal/executor"
	"github.com/ghm-dev/ghm/internal/git"
	"github.com/ghm-dev/ghm/internal/output"
	"github.com/ghm-dev/ghm/internal/planner"
	"github.com/ghm-dev/ghm/internal/report"
	"github.com/ghm-dev/ghm/internal/resolver"
)

func newLintCmd() *cobra.Command {
	var allFiles bool

	cmd := &cobra.Command{
		Use:     "lint <hook>",
		Short:   "Run a single hook or group outside any git hook event",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Lint resolves changed files the way manual mode does — every
working-tree change, or every tracked file with --all-files — and runs
the named hook or group against them without requiring a matching
git event binding.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args[0], allFiles)
		},
	}

	cmd.Flags().BoolVar(&allFiles, "all-files", false, "Run against every tracked file instead of the working tree's changes")

	return cmd
}

func runLint(cmd *cobra.Command, name string, allFiles bool) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	var changed []string
	if allFiles {
		files, err := git.ListAllTracked(ctx, repo.Root)
		if err != nil {
			return err
		}
		changed = files
	} else {
		set, err := change.DetectForEvent(ctx, repo.Root, change.EventManual)
		if err != nil {
			return err
		}
		changed = set.Files
	}

	groups, err := resolver.GroupFilesByConfig(repo.Root, changed)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		cfg, err := resolver.ResolveForRepoRoot(repo.Root)
		if err != nil {
			return err
		}
		if cfg != nil {
			groups = []resolver.Group{{Config: cfg, Files: changed}}
		}
	}

	found := false
	failed := false
	for _, g := range groups {
		if _, ok := g.Config.Hooks[name]; !ok {
			if _, ok := g.Config.Groups[name]; !ok {
				continue
			}
		}
		found = true

		plan, err := planner.Build(g.Config, name, g.Files, change.CanProvideFiles(change.EventManual))
		if err != nil {
			return fmt.Errorf("%s: %w", g.Config.Path, err)
		}

		rep, err := executor.Run(ctx, g.Config.Dir, plan, baseTemplateVars())
		if err != nil {
			return fmt.Errorf("%s: %w", g.Config.Path, err)
		}
		report.WriteExecution(out.Writer(), rep)
		if rep.Failed() {
			failed = true
		}
	}

	if !found {
		return fmt.Errorf("%q is neither a hook nor a group in any reachable config", name)
	}
	if failed {
		return fmt.Errorf("lint failed")
	}
	return nil
}
