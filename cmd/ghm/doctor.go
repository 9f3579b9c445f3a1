package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/doctor"
	"github.com/ghm-dev/ghm/internal/output"
	"github.com/ghm-dev/ghm/internal/report"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose environment and configuration issues",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Doctor checks:
- git is on PATH
- $HOME is set (required for HOME_DIR)
- a live .peter-hook.toml is reachable from the repository root
- no legacy hooks.toml files remain

This is a read-only report; there is nothing to repair since ghm holds
no persisted execution state between runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			rep := doctor.Run(cmd.Context(), repo.Root)
			report.WriteDoctor(out.Writer(), rep)
			if !rep.Healthy() {
				return fmt.Errorf("doctor found one or more issues")
			}
			return nil
		},
	}
	return cmd
}
