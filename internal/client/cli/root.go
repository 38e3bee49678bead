package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.user.Username, a.user.Role)
}

// Root prints the banner and runs the REPL on the app's reader.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to fileshare CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}
