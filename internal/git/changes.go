package git

import (
	"context"
	"fmt"
	"strings"
)

// FileChange is one line of git's --name-status diff output, already
// resolved past renames/copies to the single path a hook should see.
type FileChange struct {
	Path string
}

// ListChangedBetween returns the files that differ between from and to
// (both git revisions; from may be EmptyTreeOID). Renames and copies
// resolve to the destination path; deletions are excluded, matching the
// "hooks only ever see files that exist at the revision being checked"
// contract.
func ListChangedBetween(ctx context.Context, repoRoot, from, to string) ([]string, error) {
	out, err := outputGit(ctx, repoRoot, "diff", "--name-status", from, to)
	if err != nil {
		return nil, fmt.Errorf("diff %s..%s: %w", from, to, err)
	}
	return parseNameStatus(string(out)), nil
}

// ListStaged returns files staged in the index (git diff --cached).
func ListStaged(ctx context.Context, repoRoot string) ([]string, error) {
	out, err := outputGit(ctx, repoRoot, "diff", "--cached", "--name-status")
	if err != nil {
		return nil, fmt.Errorf("diff --cached: %w", err)
	}
	return parseNameStatus(string(out)), nil
}

// ListWorkingDirectory returns files with unstaged modifications,
// combining the working-tree-vs-index diff with untracked files so a
// freshly `git add -N`'d or wholly new file still counts as changed.
func ListWorkingDirectory(ctx context.Context, repoRoot string) ([]string, error) {
	out, err := outputGit(ctx, repoRoot, "diff", "--name-status")
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	files := parseNameStatus(string(out))

	untrackedOut, err := outputGit(ctx, repoRoot, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("ls-files --others: %w", err)
	}
	for _, line := range strings.Split(strings.TrimRight(string(untrackedOut), "\n"), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return dedupe(files), nil
}

// parseNameStatus parses `git diff --name-status` output. Status codes:
// A (added), M (modified), D (deleted, excluded), R### (renamed),
// C### (copied). Renamed/copied lines carry two paths, tab-separated;
// only the destination (second) path is kept.
func parseNameStatus(output string) []string {
	var files []string
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		status := fields[0]
		switch {
		case strings.HasPrefix(status, "D"):
			continue
		case strings.HasPrefix(status, "R"), strings.HasPrefix(status, "C"):
			if len(fields) >= 3 {
				files = append(files, fields[2])
			}
		default:
			files = append(files, fields[1])
		}
	}
	return files
}

// ListAllTracked returns every file git currently tracks, used by lint
// mode (and --all-files) where hooks should see the whole tree rather
// than a diff.
func ListAllTracked(ctx context.Context, repoRoot string) ([]string, error) {
	out, err := outputGit(ctx, repoRoot, "ls-files")
	if err != nil {
		return nil, fmt.Errorf("ls-files: %w", err)
	}
	var files []string
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
