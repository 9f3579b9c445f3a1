package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

// Confirm shows a yes/no prompt on out and reads the answer from in.
// The default answer is "no" if the user presses enter without typing
// anything. Cancelled is set when in is closed before an answer arrives,
// which happens whenever a hook-invoked prompt has no terminal attached.
func Confirm(in io.Reader, out io.Writer, prompt string) (ConfirmResult, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return ConfirmResult{}, err
		}
		return ConfirmResult{Cancelled: true}, nil
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return ConfirmResult{Confirmed: true}, nil
	default:
		return ConfirmResult{Confirmed: false}, nil
	}
}
