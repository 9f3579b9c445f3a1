// Package change turns a git hook event plus its invocation context
// (stdin, argv) into the concrete set of changed files hooks should see.
package change

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ghm-dev/ghm/internal/git"
)

// Event identifies which git hook is running.
type Event string

const (
	EventPreCommit   Event = "pre-commit"
	EventPrePush     Event = "pre-push"
	EventPostCommit  Event = "post-commit"
	EventPostMerge   Event = "post-merge"
	EventPostCheckout Event = "post-checkout"
	EventCommitMsg   Event = "commit-msg"
	EventManual      Event = "manual"
)

// canProvideFiles reports whether an event can supply a concrete changed-
// file list at all. Events outside this set always run with an empty
// change set; the Validator flags any hook with requires_files=true
// bound to one of them.
var canProvideFiles = map[Event]bool{
	EventPreCommit:    true,
	EventPrePush:      true,
	EventPostCommit:   true,
	EventPostMerge:    true,
	EventPostCheckout: true,
	EventCommitMsg:    false,
	EventManual:       true,
}

// CanProvideFiles reports whether event is capable of producing a
// changed-file list.
func CanProvideFiles(event Event) bool {
	return canProvideFiles[event]
}

// Set is the resolved list of changed files for one invocation, plus the
// revision range it was computed from (used for diagnostics and for the
// Validator's explanation of an empty result).
type Set struct {
	Files []string
	From  string
	To    string
}

// PushRef is one ref update line from pre-push's stdin.
type PushRef struct {
	LocalRef   string
	LocalOID   string
	RemoteRef  string
	RemoteOID  string
}

// ErrNoPrePushRefs is returned by ParsePrePushStdin when stdin carried no
// ref update lines at all, distinguishing "empty stdin" (which falls back
// to comparing against the upstream) from a malformed line (which doesn't).
var ErrNoPrePushRefs = errors.New("pre-push stdin had no ref update lines")

var oidPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// IsValidOID reports whether s is a syntactically valid 40-character hex
// object ID.
func IsValidOID(s string) bool {
	return oidPattern.MatchString(s)
}

// ParsePrePushStdin reads the first non-empty line of pre-push's stdin
// and parses it into a PushRef. Git can send multiple ref updates on
// separate lines for a single push, but this tool only ever acts on the
// first: the spec treats a multi-ref push as multiple independent
// invocations conceptually, and consuming more than the first line risks
// silently skipping updates if a later line fails to parse.
func ParsePrePushStdin(r io.Reader) (PushRef, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return PushRef{}, fmt.Errorf("malformed pre-push stdin line %q: expected 4 fields", line)
		}
		ref := PushRef{
			LocalRef:  fields[0],
			LocalOID:  fields[1],
			RemoteRef: fields[2],
			RemoteOID: fields[3],
		}
		if !IsValidOID(ref.LocalOID) {
			return PushRef{}, fmt.Errorf("invalid local OID %q", ref.LocalOID)
		}
		if !IsValidOID(ref.RemoteOID) {
			return PushRef{}, fmt.Errorf("invalid remote OID %q", ref.RemoteOID)
		}
		return ref, nil
	}
	if err := scanner.Err(); err != nil {
		return PushRef{}, fmt.Errorf("read pre-push stdin: %w", err)
	}
	return PushRef{}, ErrNoPrePushRefs
}

// DetectForPush resolves the changed files for a pre-push ref update,
// substituting the well-known empty-tree OID when the remote side is the
// all-zero OID (a brand-new branch, diffed as if every file was added).
func DetectForPush(ctx context.Context, repoRoot string, ref PushRef) (Set, error) {
	from := ref.RemoteOID
	if from == git.ZeroOID {
		from = git.EmptyTreeOID
	}
	to := ref.LocalOID
	if to == git.ZeroOID {
		// Branch deletion: nothing to check.
		return Set{From: from, To: to}, nil
	}

	files, err := git.ListChangedBetween(ctx, repoRoot, from, to)
	if err != nil {
		return Set{}, err
	}
	return Set{Files: files, From: from, To: to}, nil
}

// DetectForPushUpstream resolves the pre-push change set by comparing HEAD
// against its upstream, the fallback the pre-push event uses when stdin
// carried no ref update lines at all. A repository with no upstream
// configured for the current branch produces an empty Set rather than an
// error, matching the event's documented "else produces None".
func DetectForPushUpstream(ctx context.Context, repoRoot string) (Set, error) {
	upstream, err := git.ResolveOID(ctx, repoRoot, "@{upstream}")
	if err != nil {
		return Set{}, nil
	}
	head, err := git.ResolveOID(ctx, repoRoot, "HEAD")
	if err != nil {
		return Set{}, err
	}
	files, err := git.ListChangedBetween(ctx, repoRoot, upstream, head)
	if err != nil {
		return Set{}, err
	}
	return Set{Files: files, From: upstream, To: head}, nil
}

// DetectForEvent resolves the changed files for the non-push events that
// have a fixed, event-specific comparison.
func DetectForEvent(ctx context.Context, repoRoot string, event Event) (Set, error) {
	switch event {
	case EventPreCommit:
		files, err := git.ListStaged(ctx, repoRoot)
		if err != nil {
			return Set{}, err
		}
		return Set{Files: files, From: "HEAD", To: "INDEX"}, nil
	case EventPostCommit:
		files, err := git.ListChangedBetween(ctx, repoRoot, "HEAD~1", "HEAD")
		if err != nil {
			return Set{}, err
		}
		return Set{Files: files, From: "HEAD~1", To: "HEAD"}, nil
	case EventPostMerge, EventPostCheckout:
		files, err := git.ListWorkingDirectory(ctx, repoRoot)
		if err != nil {
			return Set{}, err
		}
		return Set{Files: files, From: "ORIG_HEAD", To: "HEAD"}, nil
	case EventManual:
		files, err := git.ListWorkingDirectory(ctx, repoRoot)
		if err != nil {
			return Set{}, err
		}
		return Set{Files: files, From: "working-tree", To: "working-tree"}, nil
	default:
		return Set{}, fmt.Errorf("event %q cannot provide a changed-file list", event)
	}
}

// DetectCommitRange resolves changed files between two arbitrary
// revisions. No subcommand calls it.
func DetectCommitRange(ctx context.Context, repoRoot, from, to string) (Set, error) {
	files, err := git.ListChangedBetween(ctx, repoRoot, from, to)
	if err != nil {
		return Set{}, err
	}
	return Set{Files: files, From: from, To: to}, nil
}
