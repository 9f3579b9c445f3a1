// Package config loads .peter-hook.toml files.
//
// # File Format
//
//	[hooks.lint]
//	command = ["golangci-lint", "run"]
//	files = ["**/*.go"]
//	requires_files = true
//	timeout_seconds = 120
//
//	[groups.pre-commit]
//	includes = ["lint", "test"]
//	execution_strategy = "parallel"
//
// # Resolution
//
// Each changed file is resolved against the nearest ancestor directory
// that contains a config file ([NearestConfig]); configuration is never
// merged across directories — the nearest config entirely determines
// what runs for files under it, matching the project's decision to drop
// the hierarchical-merge behavior an earlier version of this tool had.
//
// # Deprecation
//
// Earlier versions of this tool read a config file named "hooks.toml".
// [FindLegacy] scans for leftover files under that name so commands can
// refuse to run until they're renamed to [LiveFileName].
package config
