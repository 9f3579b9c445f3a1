// Package doctor runs read-only environment checks: is git on PATH, is
// there a reachable live config, are there leftover legacy config files,
// is $HOME set. Unlike the cache-backed doctor it's descended from, this
// one has nothing to repair — the core holds no persisted execution
// state — so there is no --fix.
package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/ghm-dev/ghm/internal/config"
	"github.com/ghm-dev/ghm/internal/git"
)

// Run executes every check against the repository rooted at repoRoot and
// returns the full report. It never returns an error itself; individual
// check failures are recorded as Checks with SeverityError.
func Run(ctx context.Context, repoRoot string) *Report {
	report := &Report{}

	report.Checks = append(report.Checks, checkGitBinary())
	report.Checks = append(report.Checks, checkHomeDir())
	report.Checks = append(report.Checks, checkLiveConfigReachable(repoRoot))
	report.Checks = append(report.Checks, checkNoLegacyConfigs(repoRoot))

	return report
}

func checkGitBinary() Check {
	if err := git.CheckGit(); err != nil {
		return Check{Name: "git binary", Severity: SeverityError, Message: err.Error()}
	}
	return Check{Name: "git binary", Severity: SeverityOK, Message: "found on PATH"}
}

func checkHomeDir() Check {
	if os.Getenv("HOME") == "" {
		return Check{
			Name:     "$HOME",
			Severity: SeverityWarning,
			Message:  "$HOME is not set; the HOME_DIR template variable will expand to an empty string",
		}
	}
	return Check{Name: "$HOME", Severity: SeverityOK, Message: "set"}
}

func checkLiveConfigReachable(repoRoot string) Check {
	cfg, err := config.NearestConfig(repoRoot, repoRoot)
	if err != nil {
		return Check{Name: "live config", Severity: SeverityError, Message: err.Error()}
	}
	if cfg == nil {
		return Check{
			Name:     "live config",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("no %s found at the repository root", config.LiveFileName),
		}
	}
	return Check{Name: "live config", Severity: SeverityOK, Message: cfg.Path}
}

func checkNoLegacyConfigs(repoRoot string) Check {
	legacy, err := config.FindLegacy(repoRoot)
	if err != nil {
		return Check{Name: "legacy configs", Severity: SeverityError, Message: err.Error()}
	}
	if len(legacy) > 0 {
		return Check{
			Name:     "legacy configs",
			Severity: SeverityError,
			Message:  fmt.Sprintf("found %d file(s) still named %s; rename to %s", len(legacy), config.LegacyFileName, config.LiveFileName),
		}
	}
	return Check{Name: "legacy configs", Severity: SeverityOK, Message: "none found"}
}
