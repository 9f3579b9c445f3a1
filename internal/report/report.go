// Package report renders an executor.Report, a validator.Finding list,
// or a doctor.Report as the colorized, tabular text cmd/ghm prints to
// stdout. It is the only package outside cmd/ghm that imports
// internal/ui/* — the core packages never format for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ghm-dev/ghm/internal/doctor"
	"github.com/ghm-dev/ghm/internal/executor"
	"github.com/ghm-dev/ghm/internal/ui/static"
	"github.com/ghm-dev/ghm/internal/ui/styles"
	"github.com/ghm-dev/ghm/internal/validator"
)

// WriteExecution renders an executor.Report as one line per hook,
// grouped by wave, plus stderr for any failed hook.
func WriteExecution(w io.Writer, rep *executor.Report) {
	for i, wave := range rep.Waves {
		if len(rep.Waves) > 1 {
			fmt.Fprintf(w, "wave %d:\n", i+1)
		}
		for _, res := range wave {
			fmt.Fprintln(w, formatResultLine(res))
			if !res.Skipped && res.Err != nil && strings.TrimSpace(res.Stderr) != "" {
				for _, line := range strings.Split(strings.TrimRight(res.Stderr, "\n"), "\n") {
					fmt.Fprintf(w, "    %s\n", line)
				}
			}
		}
	}
}

func formatResultLine(res executor.Result) string {
	switch {
	case res.Skipped:
		return fmt.Sprintf("  %s %s — %s", styles.FormatStatus(styles.SymbolSkip), res.Name, res.Reason)
	case res.TimedOut:
		return fmt.Sprintf("  %s %s — %s", styles.FormatStatus(styles.SymbolFail), res.Name, res.Err)
	case res.Err != nil:
		return fmt.Sprintf("  %s %s — %s", styles.FormatStatus(styles.SymbolFail), res.Name, res.Err)
	default:
		return fmt.Sprintf("  %s %s (%s)", styles.FormatStatus(styles.SymbolPass), res.Name, res.Duration.Round(time.Millisecond))
	}
}

// WriteFindings renders validator.Finding results as a table.
func WriteFindings(w io.Writer, findings []validator.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, styles.FormatStatus(styles.SymbolPass)+" no issues found")
		return
	}

	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		name := f.Hook
		if name == "" {
			name = f.Group
		}
		sym := styles.SymbolWarning
		if f.Severity == validator.SeverityError {
			sym = styles.SymbolFail
		}
		rows = append(rows, []string{styles.FormatStatus(sym), string(f.Severity), name, f.Message})
	}
	fmt.Fprint(w, static.RenderTable([]string{"", "SEVERITY", "NAME", "MESSAGE"}, rows))
}

// WriteDoctor renders a doctor.Report as a table.
func WriteDoctor(w io.Writer, rep *doctor.Report) {
	rows := make([][]string, 0, len(rep.Checks))
	for _, c := range rep.Checks {
		sym := styles.SymbolPass
		switch c.Severity {
		case doctor.SeverityWarning:
			sym = styles.SymbolWarning
		case doctor.SeverityError:
			sym = styles.SymbolFail
		}
		rows = append(rows, []string{styles.FormatStatus(sym), c.Name, c.Message})
	}
	fmt.Fprint(w, static.RenderTable([]string{"", "CHECK", "MESSAGE"}, rows))
}
