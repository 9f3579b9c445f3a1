package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/config"
	"github.com/ghm-dev/ghm/internal/output"
	"github.com/ghm-dev/ghm/internal/ui/static"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List hooks and groups defined across the repository",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}
	return cmd
}

func runList(cmd *cobra.Command) error {
	out := output.FromContext(cmd.Context())

	configs, err := config.DiscoverAll(repo.Root)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, cfg := range configs {
		names := make([]string, 0, len(cfg.Hooks)+len(cfg.Groups))
		for n := range cfg.Hooks {
			names = append(names, n)
		}
		for n := range cfg.Groups {
			names = append(names, n)
		}
		sort.Strings(names)

		for _, n := range names {
			if h, ok := cfg.Hooks[n]; ok {
				rows = append(rows, []string{cfg.Path, "hook", n, h.Description})
				continue
			}
			g := cfg.Groups[n]
			rows = append(rows, []string{cfg.Path, "group", n, g.Description})
		}
	}

	if len(rows) == 0 {
		out.Println("no hooks or groups found")
		return nil
	}
	out.Print(static.RenderTable([]string{"CONFIG", "KIND", "NAME", "DESCRIPTION"}, rows))
	return nil
}
