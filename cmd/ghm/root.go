package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/config"
	"github.com/ghm-dev/ghm/internal/git"
	"github.com/ghm-dev/ghm/internal/log"
	"github.com/ghm-dev/ghm/internal/output"
)

// Exit codes. ExitDeprecatedConfig is kept distinct from the generic
// failure code so CI and other tooling can tell "legacy config found"
// apart from "a hook failed".
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitDeprecatedConfig = 2
)

var (
	verbose bool
	quiet   bool

	// repo is resolved once in PersistentPreRunE and shared by every
	// subcommand that needs repository-relative paths.
	repo *git.Repository
)

// Command group IDs for organizing help output.
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// skipRepoCheck lists subcommands that must work even outside a git
// repository or ahead of the deprecation gate.
var skipRepoCheck = map[string]bool{
	"completions": true,
	"__complete":  true,
	"help":        true,
	"version":     true,
	"license":     true,
}

// deprecatedConfigError signals that one or more legacy hooks.toml files
// were found; Execute maps it to ExitDeprecatedConfig instead of the
// generic failure code.
type deprecatedConfigError struct {
	Paths []string
}

func (e *deprecatedConfigError) Error() string {
	msg := fmt.Sprintf("found %d legacy %s file(s); rename to %s before running ghm:", len(e.Paths), config.LegacyFileName, config.LiveFileName)
	for _, p := range e.Paths {
		msg += "\n  " + p
	}
	return msg
}

var rootCmd = &cobra.Command{
	Use:   "ghm",
	Short: "Git hook manager for monorepos",
	Long: `ghm discovers .peter-hook.toml configuration files, computes the
files that triggered a git hook event, resolves which hooks and groups
to run, and executes them with a safety-aware concurrency strategy.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipRepoCheck[cmd.Name()] {
			return nil
		}

		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are parsed by now, unlike when Execute built the context's
		// logger, so attach one that honors --verbose/--quiet.
		cmd.SetContext(log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet)))

		if err := git.CheckGit(); err != nil {
			return err
		}

		r, err := git.LocateRepository(cmd.Context(), "")
		if err != nil {
			return err
		}
		repo = r

		legacy, err := config.FindLegacy(repo.Root)
		if err != nil {
			return err
		}
		if len(legacy) > 0 {
			return &deprecatedConfigError{Paths: legacy}
		}

		return nil
	},
}

// Execute runs the root command, wiring up signal handling and the
// context-carried logger/printer every subcommand reads from.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stderr, verbose, quiet)
	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if _, ok := err.(*deprecatedConfigError); ok {
			os.Exit(ExitDeprecatedConfig)
		}
		os.Exit(ExitFailure)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newValidateCmd())

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLicenseCmd())
}
