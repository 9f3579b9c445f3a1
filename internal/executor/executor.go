// Package executor runs a planner.Plan's waves against the real world:
// one wave at a time, the hooks within a wave concurrently, each hook's
// command template-expanded and run with its own timeout.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ghm-dev/ghm/internal/config"
	"github.com/ghm-dev/ghm/internal/log"
	"github.com/ghm-dev/ghm/internal/planner"
	"github.com/ghm-dev/ghm/internal/template"
)

// defaultTimeout applies when a hook does not set timeout_seconds.
const defaultTimeout = 5 * time.Minute

// Result is the outcome of running one planned hook.
type Result struct {
	Name     string
	Skipped  bool
	Reason   string
	Command  string
	Stdout   string
	Stderr   string
	Err      error
	TimedOut bool
	Duration time.Duration
}

// WaveResult collects every hook's Result from one wave.
type WaveResult []Result

// Report is the full outcome of running a Plan, one WaveResult per wave
// in the order the waves executed.
type Report struct {
	Waves []WaveResult
}

// Failed reports whether any hook in the report failed (a skip is not a
// failure).
func (r *Report) Failed() bool {
	for _, w := range r.Waves {
		for _, res := range w {
			if !res.Skipped && res.Err != nil {
				return true
			}
		}
	}
	return false
}

// Run executes every wave in plan, even after an earlier wave reports a
// failure: all plans run and all results are reported, per the
// run-all-report-all contract. hookDir is the config's own directory —
// the default working directory and HOOK_DIR value for every hook in
// plan, overridden per hook when run_at_root is set. base is copied per
// hook so each hook gets its own WorkingDir and ChangedFiles fields
// filled in from its PlannedHook.
func Run(ctx context.Context, hookDir string, plan *planner.Plan, base template.Vars) (*Report, error) {
	report := &Report{Waves: make([]WaveResult, 0, len(plan.Waves))}

	for _, wave := range plan.Waves {
		wr, err := runWave(ctx, hookDir, wave, base)
		if err != nil {
			return report, err
		}
		report.Waves = append(report.Waves, wr)
	}

	return report, nil
}

func runWave(ctx context.Context, hookDir string, wave planner.Wave, base template.Vars) (WaveResult, error) {
	results := make(WaveResult, len(wave))

	g, gctx := errgroup.WithContext(ctx)
	for i, ph := range wave {
		i, ph := i, ph
		g.Go(func() error {
			results[i] = runHook(gctx, hookDir, ph, base)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func runHook(ctx context.Context, hookDir string, ph planner.PlannedHook, base template.Vars) Result {
	res := Result{Name: ph.Name}

	if ph.Skipped {
		res.Skipped = true
		res.Reason = string(ph.SkipReason)
		return res
	}

	vars := base
	vars.ChangedFiles, vars.ChangedFilesList = template.BuildChangedFilesFields(ph.MatchedFiles)

	effectiveDir := hookDir
	if ph.Hook.RunAtRoot {
		effectiveDir = base.RepoRoot
	}
	vars.HookDir = effectiveDir

	var changedFilesFile string
	if len(ph.MatchedFiles) > 0 {
		f, err := template.ChangedFilesFile(os.TempDir(), ph.MatchedFiles)
		if err != nil {
			res.Err = fmt.Errorf("write changed files temp file: %w", err)
			return res
		}
		changedFilesFile = f
		defer os.Remove(changedFilesFile)
	}
	vars.ChangedFilesFile = changedFilesFile

	workDir := effectiveDir
	if ph.Hook.WorkingDir != "" {
		expandedWorkDir, err := template.Expand(ph.Hook.WorkingDir, vars)
		if err != nil {
			res.Err = fmt.Errorf("%s: workdir: %w", ph.Name, err)
			return res
		}
		workDir = join(effectiveDir, expandedWorkDir)
	}
	vars.WorkingDir = workDir

	var env map[string]string
	if len(ph.Hook.Env) > 0 {
		env = make(map[string]string, len(ph.Hook.Env))
		for k, v := range ph.Hook.Env {
			e, err := template.Expand(v, vars)
			if err != nil {
				res.Err = fmt.Errorf("%s: env.%s: %w", ph.Name, k, err)
				return res
			}
			env[k] = e
		}
	}

	expanded := make([]string, 0, len(ph.Hook.Command))
	for _, part := range ph.Hook.Command {
		e, err := template.Expand(part, vars)
		if err != nil {
			res.Err = fmt.Errorf("%s: %w", ph.Name, err)
			return res
		}
		expanded = append(expanded, e)
	}

	if ph.Hook.ExecutionType == config.ExecutionPerFile || ph.Hook.ExecutionType == "" {
		for _, f := range ph.MatchedFiles {
			expanded = append(expanded, template.ShellQuote(f))
		}
	}
	res.Command = strings.Join(expanded, " ")

	timeout := defaultTimeout
	if ph.Hook.TimeoutSecs > 0 {
		timeout = time.Duration(ph.Hook.TimeoutSecs) * time.Second
	}
	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, err := runCommand(hookCtx, workDir, expanded, env)
	res.Duration = time.Since(start)
	res.Stdout = stdout
	res.Stderr = stderr

	if hookCtx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.Err = fmt.Errorf("%s: timed out after %s", ph.Name, timeout)
		return res
	}
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", ph.Name, err)
	}
	return res
}

// runCommand runs expanded[0] with expanded[1:] as arguments through the
// shell-less exec path, capturing stdout/stderr concurrently. On context
// deadline it sends SIGKILL rather than relying on the default SIGKILL
// exec.CommandContext issues, since that default races with already
// in-flight output collection.
func runCommand(ctx context.Context, dir string, command []string, env map[string]string) (stdout, stderr string, err error) {
	done := log.FromContext(ctx).Command(dir, command[0], command[1:]...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	cmd := exec.CommandContext(ctx, "sh", "-c", strings.Join(command, " "))
	cmd.Dir = dir
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGKILL)
	}
	if len(env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	return outBuf.String(), errBuf.String(), runErr
}

func join(root, rel string) string {
	if rel == "" {
		return root
	}
	if strings.HasPrefix(rel, "/") {
		return rel
	}
	return root + "/" + rel
}
