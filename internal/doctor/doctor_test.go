package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghm-dev/ghm/internal/config"
)

func TestRun_HealthyRepo(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, config.LiveFileName), []byte(`
[hooks.lint]
command = "echo lint"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	report := Run(context.Background(), root)
	for _, c := range report.Checks {
		if c.Name == "legacy configs" || c.Name == "live config" {
			if c.Severity != SeverityOK {
				t.Errorf("check %q = %+v, want ok", c.Name, c)
			}
		}
	}
}

func TestRun_FlagsLegacyConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, config.LegacyFileName), []byte("[hooks.lint]\ncommand=\"echo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	report := Run(context.Background(), root)
	found := false
	for _, c := range report.Checks {
		if c.Name == "legacy configs" && c.Severity == SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected legacy configs check to error, got %+v", report.Checks)
	}
	if report.Healthy() {
		t.Error("report with a legacy config should not be Healthy")
	}
}

func TestRun_WarnsOnMissingLiveConfig(t *testing.T) {
	root := t.TempDir()

	report := Run(context.Background(), root)
	found := false
	for _, c := range report.Checks {
		if c.Name == "live config" && c.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning for missing live config, got %+v", report.Checks)
	}
}
