package template

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ShellQuote wraps s in single quotes, escaping embedded single quotes,
// so a value can be safely word-split by a shell without any word in it
// being reinterpreted (globbed, variable-expanded, etc).
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ChangedFilesFile materializes the newline-joined file list into a
// uniquely named temp file so CHANGED_FILES_FILE has something to point
// at. The caller owns the returned path and must remove it once the hook
// referencing it has finished running — concurrent hooks in the same
// wave must not share a file, hence the uuid-qualified name.
func ChangedFilesFile(dir string, files []string) (string, error) {
	name := filepath.Join(dir, "ghm-changed-files-"+uuid.NewString())
	content := strings.Join(files, "\n")
	if len(files) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		return "", err
	}
	return name, nil
}

// BuildChangedFilesFields renders CHANGED_FILES and CHANGED_FILES_LIST
// from a plain file list.
func BuildChangedFilesFields(files []string) (changedFiles, changedFilesList string) {
	quoted := make([]string, len(files))
	for i, f := range files {
		quoted[i] = ShellQuote(f)
	}
	return strings.Join(quoted, " "), strings.Join(files, "\n")
}
