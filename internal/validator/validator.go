// Package validator performs read-only sanity checks over a config.File
// that the TOML parser's structural validation can't express: cross-
// references between hooks and groups, and hooks whose settings can
// never be satisfied by the event they're bound to.
package validator

import (
	"fmt"
	"sort"

	"github.com/ghm-dev/ghm/internal/change"
	"github.com/ghm-dev/ghm/internal/config"
	"github.com/ghm-dev/ghm/internal/template"
)

// Severity distinguishes a hard problem from an advisory one.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one issue surfaced while validating a config file.
type Finding struct {
	Severity Severity
	Hook     string // empty if the finding applies to the whole file
	Group    string
	Message  string
}

// Validate runs every check against f and returns the findings sorted by
// severity (errors first) then by hook/group name.
func Validate(f *config.File) []Finding {
	var findings []Finding

	findings = append(findings, checkIncludesResolve(f)...)
	findings = append(findings, checkNoCycles(f)...)
	findings = append(findings, checkTemplateVariables(f)...)

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return findings[i].Severity == SeverityError
		}
		return findings[i].Hook+findings[i].Group < findings[j].Hook+findings[j].Group
	})
	return findings
}

// ValidateForEvent runs Validate plus the checks that depend on which
// git hook event a hook is expected to run under, such as a hook that
// requires files on an event that can never provide any.
func ValidateForEvent(f *config.File, event change.Event) []Finding {
	findings := Validate(f)
	findings = append(findings, checkRequiresFilesAgainstEvent(f, event)...)
	return findings
}

func checkIncludesResolve(f *config.File) []Finding {
	var findings []Finding
	for name, g := range f.Groups {
		for _, inc := range g.Includes {
			if _, ok := f.Hooks[inc]; ok {
				continue
			}
			if _, ok := f.Groups[inc]; ok {
				continue
			}
			findings = append(findings, Finding{
				Severity: SeverityError,
				Group:    name,
				Message:  fmt.Sprintf("includes %q, which is neither a hook nor a group in this file", inc),
			})
		}
	}
	return findings
}

func checkNoCycles(f *config.File) []Finding {
	var findings []Finding
	for name := range f.Groups {
		if cyclePath := findCycle(f, name, nil); cyclePath != nil {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Group:    name,
				Message:  fmt.Sprintf("include cycle: %v", cyclePath),
			})
		}
	}
	return findings
}

func findCycle(f *config.File, name string, visited []string) []string {
	for _, v := range visited {
		if v == name {
			return append(append([]string{}, visited...), name)
		}
	}
	group, ok := f.Groups[name]
	if !ok {
		return nil
	}
	path := append(append([]string{}, visited...), name)
	for _, inc := range group.Includes {
		if cycle := findCycle(f, inc, path); cycle != nil {
			return cycle
		}
	}
	return nil
}

// checkTemplateVariables flags any hook command referencing a
// placeholder outside the closed template variable set, so the mistake
// is caught at validate-time rather than at hook-run time.
func checkTemplateVariables(f *config.File) []Finding {
	known := make(map[string]bool)
	for _, n := range template.Names() {
		known[n] = true
	}

	var findings []Finding
	for name, h := range f.Hooks {
		for _, part := range h.Command {
			for _, v := range template.ReferencedVariables(part) {
				if !known[v] {
					findings = append(findings, Finding{
						Severity: SeverityError,
						Hook:     name,
						Message:  fmt.Sprintf("command references unknown variable {%s}", v),
					})
				}
			}
		}
	}
	return findings
}

// checkRequiresFilesAgainstEvent walks the group whose name corresponds to
// event and flags any included hook that sets requires_files=true, since
// such a hook can never run under an event that never provides a changed-
// file list. This can only be a warning: a config file is shared across
// events (pre-commit, a manual `ghm run`, etc.) and the same hook may
// legitimately run fine under others.
func checkRequiresFilesAgainstEvent(f *config.File, event change.Event) []Finding {
	if change.CanProvideFiles(event) {
		return nil
	}
	group, ok := f.Groups[string(event)]
	if !ok || group.Placeholder {
		return nil
	}

	owner := make(map[string]string)
	collectGroupHooks(f, string(event), group, owner, nil)

	names := make([]string, 0, len(owner))
	for name := range owner {
		names = append(names, name)
	}
	sort.Strings(names)

	var findings []Finding
	for _, name := range names {
		h, ok := f.Hooks[name]
		if !ok || !h.RequiresFiles {
			continue
		}
		groupName := owner[name]
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Hook:     name,
			Group:    groupName,
			Message:  fmt.Sprintf("hook %q (via group %q) requires_files is set but %q never provides a changed-file list; it will always be skipped", name, groupName, event),
		})
	}
	return findings
}

// collectGroupHooks walks name's includes, recording in owner the nearest
// enclosing group name for each hook reached, so a finding can name both.
// visited guards against include cycles, which checkNoCycles reports
// separately.
func collectGroupHooks(f *config.File, name string, g config.Group, owner map[string]string, visited []string) {
	for _, v := range visited {
		if v == name {
			return
		}
	}
	path := append(append([]string{}, visited...), name)
	for _, inc := range g.Includes {
		if _, ok := f.Hooks[inc]; ok {
			if _, already := owner[inc]; !already {
				owner[inc] = name
			}
			continue
		}
		if sub, ok := f.Groups[inc]; ok && !sub.Placeholder {
			collectGroupHooks(f, inc, sub, owner, path)
		}
	}
}
