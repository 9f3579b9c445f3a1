package main

import "fmt"

// Version information, set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}

func versionString() string {
	return fmt.Sprintf("ghm %s (%s, %s)", version, commit[:min(7, len(commit))], date)
}
