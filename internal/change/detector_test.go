package change

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghm-dev/ghm/internal/git"
)

// initTestRepo creates a git repo with one commit on main, returning its
// resolved (symlink-free) working tree path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	repoPath := filepath.Join(resolved, "repo")

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = ""
		if args[0] != "init" {
			cmd.Dir = repoPath
		}
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "-b", "main", repoPath)
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test User")
	run("config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "README.md")
	run("commit", "-m", "initial commit")

	return repoPath
}

func TestIsValidOID(t *testing.T) {
	cases := []struct {
		oid  string
		want bool
	}{
		{"4b825dc642cb6eb9a060e54bf8d69288fbee4904", true},
		{strings.Repeat("0", 40), true},
		{"not-an-oid", false},
		{strings.Repeat("a", 39), false},
		{strings.Repeat("g", 40), false},
	}
	for _, tc := range cases {
		if got := IsValidOID(tc.oid); got != tc.want {
			t.Errorf("IsValidOID(%q) = %v, want %v", tc.oid, got, tc.want)
		}
	}
}

func TestParsePrePushStdin_Valid(t *testing.T) {
	local := strings.Repeat("a", 40)
	remote := strings.Repeat("b", 40)
	line := "refs/heads/main " + local + " refs/heads/main " + remote + "\n"

	ref, err := ParsePrePushStdin(strings.NewReader(line))
	if err != nil {
		t.Fatalf("ParsePrePushStdin: %v", err)
	}
	if ref.LocalOID != local || ref.RemoteOID != remote {
		t.Errorf("ref = %+v", ref)
	}
}

func TestParsePrePushStdin_SkipsBlankLines(t *testing.T) {
	local := strings.Repeat("a", 40)
	remote := strings.Repeat("b", 40)
	input := "\n  \nrefs/heads/main " + local + " refs/heads/main " + remote + "\n"

	ref, err := ParsePrePushStdin(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePrePushStdin: %v", err)
	}
	if ref.LocalRef != "refs/heads/main" {
		t.Errorf("LocalRef = %q", ref.LocalRef)
	}
}

func TestParsePrePushStdin_InvalidOID(t *testing.T) {
	line := "refs/heads/main not-an-oid refs/heads/main " + strings.Repeat("b", 40)
	if _, err := ParsePrePushStdin(strings.NewReader(line)); err == nil {
		t.Fatal("expected an error for an invalid local OID")
	}
}

func TestParsePrePushStdin_MalformedLine(t *testing.T) {
	if _, err := ParsePrePushStdin(strings.NewReader("only two fields")); err == nil {
		t.Fatal("expected an error for a malformed line")
	}
}

func TestParsePrePushStdin_EmptyReturnsErrNoPrePushRefs(t *testing.T) {
	_, err := ParsePrePushStdin(strings.NewReader(""))
	if err != ErrNoPrePushRefs {
		t.Fatalf("err = %v, want ErrNoPrePushRefs", err)
	}
}

func TestDetectForPush_NewBranchDiffsAgainstEmptyTree(t *testing.T) {
	t.Parallel()
	repoPath := initTestRepo(t)
	ctx := context.Background()

	head, err := git.ResolveOID(ctx, repoPath, "HEAD")
	if err != nil {
		t.Fatalf("ResolveOID: %v", err)
	}

	set, err := DetectForPush(ctx, repoPath, PushRef{
		LocalRef:  "refs/heads/main",
		LocalOID:  head,
		RemoteRef: "refs/heads/main",
		RemoteOID: git.ZeroOID,
	})
	if err != nil {
		t.Fatalf("DetectForPush: %v", err)
	}
	if len(set.Files) != 1 || set.Files[0] != "README.md" {
		t.Errorf("DetectForPush new-branch files = %v, want [README.md]", set.Files)
	}
	if set.From != git.EmptyTreeOID {
		t.Errorf("From = %q, want the empty-tree OID", set.From)
	}
}

func TestDetectForPush_DeletionCarriesNoFiles(t *testing.T) {
	t.Parallel()
	repoPath := initTestRepo(t)
	ctx := context.Background()

	set, err := DetectForPush(ctx, repoPath, PushRef{
		LocalRef:  "refs/heads/doomed",
		LocalOID:  git.ZeroOID,
		RemoteRef: "refs/heads/doomed",
		RemoteOID: strings.Repeat("c", 40),
	})
	if err != nil {
		t.Fatalf("DetectForPush: %v", err)
	}
	if len(set.Files) != 0 {
		t.Errorf("branch deletion should carry no files, got %v", set.Files)
	}
}

func TestDetectForPushUpstream_NoUpstreamConfigured(t *testing.T) {
	t.Parallel()
	repoPath := initTestRepo(t)

	set, err := DetectForPushUpstream(context.Background(), repoPath)
	if err != nil {
		t.Fatalf("DetectForPushUpstream: %v", err)
	}
	if len(set.Files) != 0 {
		t.Errorf("expected an empty Set with no upstream configured, got %+v", set)
	}
}

func TestDetectForEvent_PreCommitUsesStaged(t *testing.T) {
	t.Parallel()
	repoPath := initTestRepo(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(repoPath, "staged.go"), []byte("package x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command("git", "add", "staged.go")
	cmd.Dir = repoPath
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	set, err := DetectForEvent(ctx, repoPath, EventPreCommit)
	if err != nil {
		t.Fatalf("DetectForEvent: %v", err)
	}
	if len(set.Files) != 1 || set.Files[0] != "staged.go" {
		t.Errorf("DetectForEvent(pre-commit) = %v, want [staged.go]", set.Files)
	}
}
