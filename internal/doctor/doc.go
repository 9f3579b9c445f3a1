// Package doctor provides read-only diagnostics for a hook-managed
// repository's environment.
//
// Run checks that git is reachable, that $HOME is set (required for the
// HOME_DIR template variable), that a live config is reachable from the
// repository root, and that no configuration files remain under the
// deprecated legacy filename.
//
//	report := doctor.Run(ctx, repoRoot)
//	if !report.Healthy() { ... }
package doctor
