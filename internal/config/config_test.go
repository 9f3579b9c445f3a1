package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad_StringCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, LiveFileName, `
[hooks.lint]
command = "golangci-lint run"
description = "lint the module"
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	hook, ok := f.Hooks["lint"]
	if !ok {
		t.Fatal("missing hook lint")
	}
	if len(hook.Command) != 1 || hook.Command[0] != "golangci-lint run" {
		t.Errorf("Command = %v", hook.Command)
	}
}

func TestLoad_ArrayCommandAndFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, LiveFileName, `
[hooks.test]
command = ["go", "test", "./..."]
files = ["**/*.go"]
requires_files = true
timeout_seconds = 60

[groups.pre-commit]
includes = ["test"]
execution_strategy = "parallel"
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	hook := f.Hooks["test"]
	if len(hook.Command) != 3 {
		t.Errorf("Command = %v, want 3 elements", hook.Command)
	}
	if !hook.RequiresFiles {
		t.Error("RequiresFiles = false, want true")
	}
	if hook.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d, want 60", hook.TimeoutSecs)
	}

	group := f.Groups["pre-commit"]
	if group.Strategy != StrategyParallel {
		t.Errorf("Strategy = %q, want %q", group.Strategy, StrategyParallel)
	}
}

func TestLoad_Workdir(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, LiveFileName, `
[hooks.build]
command = "make build"
workdir = "{REPO_ROOT}/backend"
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := f.Hooks["build"].WorkingDir; got != "{REPO_ROOT}/backend" {
		t.Errorf("WorkingDir = %q, want the workdir key's value", got)
	}
}

func TestLoad_RejectsUnknownTopLevelKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, LiveFileName, `
[hooks.lint]
command = "echo lint"

[settings]
foo = "bar"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown top-level key")
	}
}

func TestLoad_PlaceholderGroupAllowsEmptyIncludes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, LiveFileName, `
[groups.pre-commit]
placeholder = true
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !f.Groups["pre-commit"].Placeholder {
		t.Error("Placeholder = false, want true")
	}
}

func TestLoad_RejectsMissingCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, LiveFileName, `
[hooks.broken]
description = "no command"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing command")
	}
}

func TestLoad_RejectsGroupIncludingItself(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, LiveFileName, `
[groups.cycle]
includes = ["cycle"]
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for self-including group")
	}
}

func TestNearestConfig_WalksUpward(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg", "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, LiveFileName, `
[hooks.root]
command = "echo root"
`)

	f, err := NearestConfig(sub, root)
	if err != nil {
		t.Fatalf("NearestConfig: %v", err)
	}
	if f == nil {
		t.Fatal("expected to find the root config")
	}
	if f.Dir != root {
		t.Errorf("Dir = %q, want %q", f.Dir, root)
	}
}

func TestNearestConfig_PrefersCloser(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, LiveFileName, `
[hooks.root]
command = "echo root"
`)
	writeFile(t, sub, LiveFileName, `
[hooks.pkg]
command = "echo pkg"
`)

	f, err := NearestConfig(sub, root)
	if err != nil {
		t.Fatalf("NearestConfig: %v", err)
	}
	if _, ok := f.Hooks["pkg"]; !ok {
		t.Error("expected the nearer (pkg-level) config to win, no merging with root")
	}
	if _, ok := f.Hooks["root"]; ok {
		t.Error("root-level hook leaked into nearer config: inheritance must not happen")
	}
}

func TestFindLegacy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, LegacyFileName, `[hooks.old]
command = "echo old"
`)

	found, err := FindLegacy(root)
	if err != nil {
		t.Fatalf("FindLegacy: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("len(found) = %d, want 1", len(found))
	}
}
