package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Repository describes the git repository (or worktree) a command is
// running against.
type Repository struct {
	Root         string // working tree root (git rev-parse --show-toplevel)
	CommonDir    string // shared .git directory, absolute (git rev-parse --git-common-dir)
	GitDir       string // this checkout's own git dir (git rev-parse --git-dir)
	IsWorktree   bool   // true when GitDir != CommonDir
	WorktreeName string // basename of Root, only meaningful when IsWorktree
	ProjectName  string // basename of the main working tree (CommonDir's parent when not a worktree)
}

// LocateRepository resolves repository metadata starting from startDir.
// startDir may be any directory inside the working tree (main checkout
// or linked worktree) or empty to mean the current process directory.
func LocateRepository(ctx context.Context, startDir string) (*Repository, error) {
	rootOut, err := outputGit(ctx, startDir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("not inside a git repository: %w", err)
	}
	root := strings.TrimSpace(string(rootOut))

	commonOut, err := outputGit(ctx, startDir, "rev-parse", "--git-common-dir")
	if err != nil {
		return nil, fmt.Errorf("resolve git common dir: %w", err)
	}
	commonDir := resolveGitDirPath(root, strings.TrimSpace(string(commonOut)))

	gitDirOut, err := outputGit(ctx, startDir, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("resolve git dir: %w", err)
	}
	gitDir := resolveGitDirPath(root, strings.TrimSpace(string(gitDirOut)))

	isWorktree := gitDir != commonDir

	repo := &Repository{
		Root:       root,
		CommonDir:  commonDir,
		GitDir:     gitDir,
		IsWorktree: isWorktree,
	}

	if isWorktree {
		repo.WorktreeName = filepath.Base(root)
		// CommonDir is <main-root>/.git; its parent is the main working tree.
		repo.ProjectName = filepath.Base(filepath.Dir(commonDir))
	} else {
		repo.ProjectName = filepath.Base(root)
	}

	return repo, nil
}

// resolveGitDirPath makes git's (possibly relative) --git-dir/--git-common-dir
// output absolute, resolved relative to root the way git itself does.
func resolveGitDirPath(root, raw string) string {
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(root, raw))
}

// ResolveOID resolves a ref (branch, tag, HEAD, etc) to its full object ID.
func ResolveOID(ctx context.Context, repoRoot, ref string) (string, error) {
	out, err := outputGit(ctx, repoRoot, "rev-parse", "--verify", ref)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// EmptyTreeOID is git's well-known hash for the empty tree object. It
// substitutes for the all-zero OID git sends for a new branch's "before"
// side on push, so diffing against it reports every file in the pushed
// branch as added.
const EmptyTreeOID = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// ZeroOID is the all-zero OID git uses to signal branch creation or
// deletion in pre-push stdin and update hooks.
const ZeroOID = "0000000000000000000000000000000000000000"
