// Package cli provides the interactive userbook command-line client.
//
// It wires configuration, the HTTP API client and the form controller to a
// small REPL. The controller owns all state; this package only reads input,
// turns it into controller calls and renders the resulting State.
//
// Commands:
//   - list                  show all users, newest first
//   - add                   fill in a new user and save it
//   - edit <id>             load a user into the form and save changes
//   - form                  reopen the current form (after a failed save)
//   - delete <id>           delete a user after confirmation
//   - clear                 empty the form and leave edit mode
//   - exit | quit           leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
