package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/change"
	"github.com/ghm-dev/ghm/internal/config"
	"github.com/ghm-dev/ghm/internal/executor"
	"github.com/ghm-dev/ghm/internal/git"
	"github.com/ghm-dev/ghm/internal/log"
	"github.com/ghm-dev/ghm/internal/output"
	"github.com/ghm-dev/ghm/internal/planner"
	"github.com/ghm-dev/ghm/internal/report"
	"github.com/ghm-dev/ghm/internal/resolver"
	"github.com/ghm-dev/ghm/internal/template"
	"github.com/ghm-dev/ghm/internal/validator"
)

func newRunCmd() *cobra.Command {
	var (
		allFiles bool
		files    []string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:     "run <event> [git-args...]",
		Short:   "Run the hooks bound to a git hook event",
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Run resolves the changed-file set for event the way the matching git
hook would, plans the hooks/groups named after event in every reachable
.peter-hook.toml, and executes them wave by wave.`,
		Example: `  ghm run pre-commit
  ghm run pre-push < ref-updates
  ghm run pre-commit --all-files --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvent(cmd, change.Event(args[0]), allFiles, files, dryRun)
		},
	}

	cmd.Flags().BoolVar(&allFiles, "all-files", false, "Run against every tracked file instead of the event's natural change set")
	cmd.Flags().StringSliceVar(&files, "files", nil, "Run against exactly this file list instead of detecting changes")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the resolved plan without executing any hook")

	return cmd
}

func runEvent(cmd *cobra.Command, event change.Event, allFiles bool, explicitFiles []string, dryRun bool) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	changed, err := resolveChangedFiles(cmd, event, allFiles, explicitFiles)
	if err != nil {
		return err
	}
	l.Debug("changed files resolved", "event", string(event), "count", len(changed))

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

	failed := false
	for _, g := range groups {
		name := string(event)
		if _, hasHook := g.Config.Hooks[name]; !hasHook {
			if _, hasGroup := g.Config.Groups[name]; !hasGroup {
				l.Debug("no hook or group bound to event, skipping config", "config", g.Config.Path, "event", name)
				continue
			}
		}

		if findings := validator.ValidateForEvent(g.Config, event); len(findings) > 0 {
			report.WriteFindings(out.Writer(), findings)
		}

		plan, err := planner.Build(g.Config, name, g.Files, change.CanProvideFiles(event))
		if err != nil {
			return fmt.Errorf("%s: %w", g.Config.Path, err)
		}

		if dryRun {
			printPlan(out, g.Config, plan)
			continue
		}

		vars := baseTemplateVars()
		rep, err := executor.Run(ctx, g.Config.Dir, plan, vars)
		if err != nil {
			return fmt.Errorf("%s: %w", g.Config.Path, err)
		}
		report.WriteExecution(out.Writer(), rep)
		if rep.Failed() {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("one or more hooks failed")
	}
	return nil
}

// resolveChangedFiles applies --files and --all-files before falling
// back to the event's natural change-detection rules, reading pre-push
// ref updates from stdin when event is pre-push.
func resolveChangedFiles(cmd *cobra.Command, event change.Event, allFiles bool, explicitFiles []string) ([]string, error) {
	ctx := cmd.Context()

	if len(explicitFiles) > 0 {
		return explicitFiles, nil
	}
	if allFiles {
		return git.ListAllTracked(cmd.Context(), repo.Root)
	}

	switch event {
	case change.EventPrePush:
		ref, err := change.ParsePrePushStdin(cmd.InOrStdin())
		if errors.Is(err, change.ErrNoPrePushRefs) {
			set, err := change.DetectForPushUpstream(ctx, repo.Root)
			if err != nil {
				return nil, err
			}
			return set.Files, nil
		}
		if err != nil {
			return nil, err
		}
		set, err := change.DetectForPush(ctx, repo.Root, ref)
		if err != nil {
			return nil, err
		}
		return set.Files, nil
	default:
		if !change.CanProvideFiles(event) {
			return nil, nil
		}
		set, err := change.DetectForEvent(ctx, repo.Root, event)
		if err != nil {
			return nil, err
		}
		return set.Files, nil
	}
}

func baseTemplateVars() template.Vars {
	home, _ := os.UserHomeDir()
	return template.Vars{
		RepoRoot:     repo.Root,
		ProjectName:  repo.ProjectName,
		HomeDir:      home,
		Path:         os.Getenv("PATH"),
		CommonDir:    repo.CommonDir,
		IsWorktree:   strconv.FormatBool(repo.IsWorktree),
		WorktreeName: repo.WorktreeName,
	}
}

func printPlan(out *output.Printer, cfg *config.File, plan *planner.Plan) {
	out.Printf("%s:\n", cfg.Path)
	for i, wave := range plan.Waves {
		out.Printf("  wave %d:\n", i+1)
		for _, ph := range wave {
			if ph.Skipped {
				out.Printf("    - %s (skipped: %s)\n", ph.Name, ph.SkipReason)
				continue
			}
			out.Printf("    - %s (%d file(s))\n", ph.Name, len(ph.MatchedFiles))
		}
	}
}
