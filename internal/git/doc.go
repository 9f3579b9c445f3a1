// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly
// rather than using Go git libraries. This approach is simpler, more
// reliable, and ensures compatibility with user configurations (SSH
// keys, credential helpers, aliases).
//
// # Repository Location
//
//   - [LocateRepository]: resolve working tree root, common git dir,
//     and whether the current checkout is a linked worktree
//   - [ResolveOID]: resolve a ref to a full object ID
//
// # Change Listing
//
//   - [ListChangedBetween]: diff two revisions
//   - [ListStaged]: files in the index
//   - [ListWorkingDirectory]: unstaged and untracked files
package git
