package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	gateVisible() bool
	staleUser() string
	Acknowledge(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Upload(ctx context.Context, paths []string) error
	Share(ctx context.Context, args []string) error
	ChangePassword(ctx context.Context) error
	Stats(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the fileshare CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done, or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                         - show available commands
//	  - login                        - authenticate
//	  - status | whoami              - identity and server reachability
//	  - exit | quit                  - leave the program
//
//	Logged in:
//	  - upload <path>...             - upload files as a new share
//	  - share <password|-> <minutes> - protect / extend the last share
//	  - passwd                       - change the password
//	  - stats                        - request counters
//	  - logout                       - log out
//
// While the session-expired gate is up every line other than the
// acknowledgement ("login", "ok" or an empty line) is refused, exit included.
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(prompt(statusFn()))
		line, ok := readLine(reader)
		if !ok {
			return
		}

		if a.gateVisible() {
			if isAcknowledgement(line) {
				if err := a.Acknowledge(ctx); err != nil && a.gateVisible() {
					printlnFn("Could not end the session:", err)
				}
				continue
			}
			printlnFn(gateBanner(a.staleUser()))
			printlnFn(gateHint)
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: upload <path>..., share <password|-> <minutes>, passwd, status, stats, logout, exit")
			} else {
				printlnFn("Available commands: login, status, stats, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status", "whoami":
			_ = a.Whoami(ctx)

		case "upload":
			_ = a.Upload(ctx, args)

		case "share":
			_ = a.Share(ctx, args)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func prompt(status string) string {
	if status == "" {
		return "fileshare> "
	}
	return fmt.Sprintf("fileshare (%s)> ", status)
}

// Shell runs the interactive client until the user leaves. It asks for
// credentials first when no session was restored.
func (a *App) Shell(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.interactive = true
	fmt.Fprintln(a.out, "Welcome to fileshare CLI (type 'help' for commands)")

	s := a.session.Snapshot()
	switch {
	case !s.IsAuthenticated():
		_ = a.Login(ctx)
	case s.MustChangePassword:
		fmt.Fprintf(a.out, "Welcome back, %s. You must change your password before continuing.\n", s.Username())
		_ = a.ChangePassword(ctx)
	default:
		fmt.Fprintf(a.out, "Welcome back, %s\n", s.Username())
	}

	go a.StartExpiryWatcher(ctx)

	runREPL(ctx, a, a.status, a.reader)
	return nil
}
