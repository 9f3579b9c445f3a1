package executor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ghm-dev/ghm/internal/config"
	"github.com/ghm-dev/ghm/internal/planner"
	"github.com/ghm-dev/ghm/internal/template"
)

func TestRun_SingleWaveSuccess(t *testing.T) {
	plan := &planner.Plan{
		Waves: []planner.Wave{
			{
				{Name: "ok", Hook: config.Hook{Command: []string{"echo", "hi"}}},
			},
		},
	}

	report, err := Run(context.Background(), t.TempDir(), plan, template.Vars{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Failed() {
		t.Fatalf("expected success, got failure: %+v", report.Waves)
	}
	if got := strings.TrimSpace(report.Waves[0][0].Stdout); got != "hi" {
		t.Errorf("stdout = %q, want %q", got, "hi")
	}
}

func TestRun_FailureDoesNotStopLaterWaves(t *testing.T) {
	plan := &planner.Plan{
		Waves: []planner.Wave{
			{{Name: "fails", Hook: config.Hook{Command: []string{"sh", "-c", "exit 1"}}}},
			{{Name: "runs-anyway", Hook: config.Hook{Command: []string{"echo", "still runs"}}}},
		},
	}

	report, err := Run(context.Background(), t.TempDir(), plan, template.Vars{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Failed() {
		t.Fatal("expected report.Failed() to be true")
	}
	if len(report.Waves) != 2 {
		t.Fatalf("len(Waves) = %d, want 2 (later waves must still run)", len(report.Waves))
	}
	if got := strings.TrimSpace(report.Waves[1][0].Stdout); got != "still runs" {
		t.Errorf("second wave stdout = %q, want %q", got, "still runs")
	}
}

func TestRun_SkippedHookIsNotRun(t *testing.T) {
	plan := &planner.Plan{
		Waves: []planner.Wave{
			{{Name: "skip-me", Skipped: true, SkipReason: planner.SkipNoMatch}},
		},
	}

	report, err := Run(context.Background(), t.TempDir(), plan, template.Vars{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Failed() {
		t.Fatal("a skipped hook must not count as a failure")
	}
	if !report.Waves[0][0].Skipped {
		t.Error("expected result to report Skipped = true")
	}
}

func TestRun_Timeout(t *testing.T) {
	plan := &planner.Plan{
		Waves: []planner.Wave{
			{{Name: "slow", Hook: config.Hook{
				Command:     []string{"sleep", "5"},
				TimeoutSecs: 1,
			}}},
		},
	}

	start := time.Now()
	report, err := Run(context.Background(), t.TempDir(), plan, template.Vars{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if time.Since(start) > 4*time.Second {
		t.Fatal("Run did not respect the hook timeout")
	}
	if !report.Waves[0][0].TimedOut {
		t.Error("expected TimedOut = true")
	}
}
