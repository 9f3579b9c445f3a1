// Package template expands the fixed set of run-time variables a hook
// command may reference. Expansion is purely textual: the result is never
// interpreted as a shell fragment by this package.
package template

import (
	"fmt"
	"regexp"
)

// Vars holds the values for every variable a hook command may reference.
// Unlike the open-ended, default-supporting placeholder systems used
// elsewhere in this codebase's ancestry, this set is closed: any token
// matching the placeholder syntax that isn't one of these twelve names
// is a hard error, not a pass-through.
type Vars struct {
	HookDir           string
	RepoRoot          string
	ProjectName       string
	HomeDir           string
	Path              string
	WorkingDir        string
	ChangedFiles      string // space-joined, shell-quoted
	ChangedFilesList  string // newline-joined, unquoted
	ChangedFilesFile  string // path to a temp file holding ChangedFilesList
	CommonDir         string
	IsWorktree        string // "true" or "false"
	WorktreeName      string
}

// placeholderRegex matches {NAME} tokens. Names are upper-snake-case by
// convention but the regex accepts any run of letters/digits/underscore so
// that an unrecognized token (e.g. {branch}) is caught by lookup, not by
// the regex silently skipping it.
var placeholderRegex = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// UnknownVariableError is returned when a command references a
// placeholder outside the closed set.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown template variable %q", e.Name)
}

// Expand performs a single, non-recursive pass substituting every {NAME}
// token in command with its value from vars. Expansion does not recurse
// into substituted values, so a changed file named "{HOME_DIR}" is
// inserted literally rather than expanded again.
func Expand(command string, vars Vars) (string, error) {
	lookup := map[string]string{
		"HOOK_DIR":            vars.HookDir,
		"REPO_ROOT":           vars.RepoRoot,
		"PROJECT_NAME":        vars.ProjectName,
		"HOME_DIR":            vars.HomeDir,
		"PATH":                vars.Path,
		"WORKING_DIR":         vars.WorkingDir,
		"CHANGED_FILES":       vars.ChangedFiles,
		"CHANGED_FILES_LIST":  vars.ChangedFilesList,
		"CHANGED_FILES_FILE":  vars.ChangedFilesFile,
		"COMMON_DIR":          vars.CommonDir,
		"IS_WORKTREE":         vars.IsWorktree,
		"WORKTREE_NAME":       vars.WorktreeName,
	}

	var firstErr error
	result := placeholderRegex.ReplaceAllStringFunc(command, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := match[1 : len(match)-1]
		val, ok := lookup[name]
		if !ok {
			firstErr = &UnknownVariableError{Name: name}
			return match
		}
		return val
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Names lists every variable in the closed set, used by the Validator to
// tell known variables from unknown ones.
func Names() []string {
	return []string{
		"HOOK_DIR", "REPO_ROOT", "PROJECT_NAME", "HOME_DIR", "PATH",
		"WORKING_DIR", "CHANGED_FILES", "CHANGED_FILES_LIST",
		"CHANGED_FILES_FILE", "COMMON_DIR", "IS_WORKTREE", "WORKTREE_NAME",
	}
}

// ReferencedVariables returns the set of variable names referenced by
// command, including unknown ones, without validating them. Used by the
// Validator to flag hook commands that reference unknown variables.
func ReferencedVariables(command string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(command, -1)
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
