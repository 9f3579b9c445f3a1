// Package git shells out to the git CLI rather than linking a Go git
// implementation, following the same "git is already on PATH and knows
// its own formats best" idiom used throughout this codebase's ancestry.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ghm-dev/ghm/internal/log"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context cancellation and logs the
// invocation when verbose logging is enabled.
func runGit(ctx context.Context, dir string, args ...string) error {
	full := gitArgs(dir, args)
	done := log.FromContext(ctx).Command(dir, "git", full...)
	start := time.Now()

	cmd := exec.CommandContext(ctx, "git", full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	done(time.Since(start))
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return err
	}
	return nil
}

// outputGit executes a git command with context cancellation, returning
// stdout with stderr surfaced in the error on failure.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	full := gitArgs(dir, args)
	done := log.FromContext(ctx).Command(dir, "git", full...)
	start := time.Now()

	cmd := exec.CommandContext(ctx, "git", full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	done(time.Since(start))
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, err
	}
	return out, nil
}
