package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/change"
	"github.com/ghm-dev/ghm/internal/output"
	"github.com/ghm-dev/ghm/internal/ui/prompt"
)

// hookEvents lists the git hook names ghm installs a dispatcher for.
// commit-msg is included even though it never supplies a changed-file
// list, since hooks bound to it still run — just always with an empty
// change set.
var hookEvents = []change.Event{
	change.EventPreCommit,
	change.EventPrePush,
	change.EventPostCommit,
	change.EventPostMerge,
	change.EventPostCheckout,
	change.EventCommitMsg,
}

// dispatcherMarker identifies a hook script ghm itself wrote, so
// install/uninstall can tell it apart from a hand-written script
// without relying on exact byte equality.
const dispatcherMarker = "# installed by ghm"

func dispatcherScript(event change.Event) string {
	return fmt.Sprintf("#!/bin/sh\n%s, run \"ghm uninstall\" to remove\nexec ghm run %s \"$@\"\n", dispatcherMarker, event)
}

func newInstallCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Write ghm dispatcher scripts into .git/hooks",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Install writes one small shell dispatcher per supported git hook
event into the repository's hooks directory. Each dispatcher simply
execs "ghm run <event>" with git's own arguments and stdin passed
through untouched. An existing, non-ghm script at that path is left
alone unless --force is given or the user confirms an overwrite.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing hook scripts without prompting")

	return cmd
}

func runInstall(cmd *cobra.Command, force bool) error {
	out := output.FromContext(cmd.Context())
	hooksDir := filepath.Join(repo.CommonDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", hooksDir, err)
	}

	for _, event := range hookEvents {
		path := filepath.Join(hooksDir, string(event))

		if existing, err := os.ReadFile(path); err == nil && !strings.Contains(string(existing), dispatcherMarker) && !force {
			res, err := prompt.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("overwrite existing %s hook?", event))
			if err != nil {
				return err
			}
			if res.Cancelled || !res.Confirmed {
				out.Printf("skipped %s\n", event)
				continue
			}
		}

		if err := os.WriteFile(path, []byte(dispatcherScript(event)), 0o755); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		out.Printf("installed %s\n", path)
	}

	return nil
}
