// Package prompt provides simple interactive prompts for commands that
// may need to ask a question before acting, such as `ghm install`
// overwriting an existing hook script.
//
//   - [Confirm]: Yes/No confirmation prompt
package prompt
