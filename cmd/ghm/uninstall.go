package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/output"
)

func newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   "Remove ghm dispatcher scripts from .git/hooks",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Uninstall removes every hook script in the repository's hooks
directory that carries ghm's dispatcher marker. Hand-written scripts,
or dispatchers installed by another tool, are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd)
		},
	}
	return cmd
}

func runUninstall(cmd *cobra.Command) error {
	out := output.FromContext(cmd.Context())
	hooksDir := filepath.Join(repo.CommonDir, "hooks")

	for _, event := range hookEvents {
		path := filepath.Join(hooksDir, string(event))

		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if !strings.Contains(string(content), dispatcherMarker) {
			out.Printf("skipped %s (not a ghm dispatcher)\n", event)
			continue
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		out.Printf("removed %s\n", path)
	}

	return nil
}
