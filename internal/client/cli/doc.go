// Package cli provides the interactive fileshare command-line client.
//
// It wires configuration and the HTTP API client into a small REPL. The
// session lives only in memory: logging out, or exiting, forgets the token.
//
// Commands:
//   - register, login, logout, whoami
//   - list, upload <path>, download <id> [dest], delete <id>
//   - share <id> <email> [message...]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
