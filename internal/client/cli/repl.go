package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Download(ctx context.Context, id int64, dest string) error
	Delete(ctx context.Context, id int64) error
	Share(ctx context.Context, id int64, email, message string) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: whoami, (l)ist, upload <path>, download <id> [dest], delete <id>, share <id> <email> [message...], logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// File commands require a session; outside one the user is pointed at
// login. Errors returned by handlers are ignored here since handlers
// report their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fs %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "whoami", "l", "list", "upload", "download", "delete", "share", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			dispatchSession(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatchSession(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "whoami":
		_ = a.Whoami(ctx)

	case "l", "list":
		_ = a.List(ctx)

	case "upload":
		if len(args) != 1 {
			printlnFn("Usage: upload <path>")
			return
		}
		_ = a.Upload(ctx, args[0])

	case "download":
		if len(args) < 1 || len(args) > 2 {
			printlnFn("Usage: download <id> [dest]")
			return
		}
		id, ok := parseID(args[0])
		if !ok {
			return
		}
		dest := ""
		if len(args) == 2 {
			dest = args[1]
		}
		_ = a.Download(ctx, id, dest)

	case "delete":
		if len(args) != 1 {
			printlnFn("Usage: delete <id>")
			return
		}
		if id, ok := parseID(args[0]); ok {
			_ = a.Delete(ctx, id)
		}

	case "share":
		if len(args) < 2 {
			printlnFn("Usage: share <id> <email> [message...]")
			return
		}
		if id, ok := parseID(args[0]); ok {
			_ = a.Share(ctx, id, args[1], strings.Join(args[2:], " "))
		}

	case "logout":
		_ = a.Logout(ctx)
	}
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Invalid file id:", s)
		return 0, false
	}
	return id, true
}
