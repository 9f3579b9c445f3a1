package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/change"
	"github.com/ghm-dev/ghm/internal/config"
	"github.com/ghm-dev/ghm/internal/output"
	"github.com/ghm-dev/ghm/internal/report"
	"github.com/ghm-dev/ghm/internal/validator"
)

func newValidateCmd() *cobra.Command {
	var event string

	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Check every reachable config for structural and event-binding problems",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Validate walks every .peter-hook.toml reachable from the repository
root and reports unresolved includes, include cycles, and unknown
template variables. With --event, it additionally warns about hooks
that set requires_files but are bound to an event that never supplies
a changed-file list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, event)
		},
	}

	cmd.Flags().StringVar(&event, "event", "", "Also check requires_files against this git hook event")

	return cmd
}

func runValidate(cmd *cobra.Command, event string) error {
	out := output.FromContext(cmd.Context())

	configs, err := config.DiscoverAll(repo.Root)
	if err != nil {
		return err
	}

	hasError := false
	for _, cfg := range configs {
		var findings []validator.Finding
		if event != "" {
			findings = validator.ValidateForEvent(cfg, change.Event(event))
		} else {
			findings = validator.Validate(cfg)
		}

		out.Printf("%s:\n", cfg.Path)
		report.WriteFindings(out.Writer(), findings)

		for _, f := range findings {
			if f.Severity == validator.SeverityError {
				hasError = true
			}
		}
	}

	if hasError {
		return fmt.Errorf("validation found one or more errors")
	}
	return nil
}
